package domain

// Reaction is one emoji reaction by one user on one post. The schema allows
// the same user to react to the same post more than once; statistics are
// reported grouped by emoji only.
type Reaction struct {
	ReactionID int    `db:"reaction_id" json:"reaction_id"`
	Emoji      string `db:"emoji" json:"emoji"`
	ReactedBy  string `db:"reacted_by" json:"reacted_by"`
	ReactedTo  int    `db:"reacted_to" json:"reacted_to"`
}
