package domain

// Comment is a remark left on a trip post. OwnerUserID follows the same
// ownership rule as Post.
type Comment struct {
	CommentID   string `json:"commentID"`
	PostID      string `json:"post"`
	OwnerUserID string `json:"user"`
	Text        string `json:"text"`
	Timestamps
}
