package models

// Comment is the database representation of a comment row.
type Comment struct {
	CommentID   string `db:"comment_id"`
	PostID      string `db:"post_id"`
	OwnerUserID string `db:"owner_user_id"`
	Text        string `db:"text"`
	Timestamps
}
