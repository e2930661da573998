package dto

import (
	"time"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
)

// CreateCommentRequest carries a new comment on a post.
type CreateCommentRequest struct {
	Post string `json:"post" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest allows editing the comment text.
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

// ListCommentsParams defines query parameters for listing comments.
type ListCommentsParams struct {
	Post   string `form:"post"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	CommentID string    `json:"commentID"`
	Post      string    `json:"post"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCommentResponse converts a domain.Comment to its public representation.
func ToCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID: comment.CommentID,
		Post:      comment.PostID,
		User:      comment.OwnerUserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ToCommentResponses converts a slice of domain.Comment.
func ToCommentResponses(comments []domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = ToCommentResponse(&comments[i])
	}
	return responses
}
