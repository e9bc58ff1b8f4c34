package domain

import "time"

// Comment is one row of a post's comment tree. Parent is nil for top-level
// comments; otherwise it references another comment on the same post.
type Comment struct {
	CommentID int       `db:"comment_id" json:"comment_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	FreeText  string    `db:"free_text" json:"free_text"`
	Parent    *int      `db:"parent" json:"parent"`
	CommentBy string    `db:"comment_by" json:"comment_by"`
	CommentOn int       `db:"comment_on" json:"comment_on"`
}
