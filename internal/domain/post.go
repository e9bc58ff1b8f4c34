package domain

import "time"

// Post is a "slice": an image plus optional text, tied to the task the author
// completed. PostedBy and Completes are raw foreign keys as stored; the
// service layer denormalizes them into full records before responding.
type Post struct {
	PostID    int       `db:"post_id" json:"post_id"`
	FreeText  *string   `db:"free_text" json:"free_text"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	PostedBy  string    `db:"posted_by" json:"posted_by"`
	Completes int       `db:"completes" json:"completes"`
}
