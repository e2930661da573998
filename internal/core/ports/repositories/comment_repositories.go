package repositories

import (
	"context"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
)

// CommentReader defines read operations for comments.
type CommentReader interface {
	// FindCommentByID retrieves a specific comment by its ID.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// FindComments retrieves comments, optionally filtered by post.
	FindComments(ctx context.Context, postID string, limit int, offset int) ([]domain.Comment, error)
}

// CommentWriter defines write operations for comments.
type CommentWriter interface {
	// SaveComment persists a new comment.
	SaveComment(ctx context.Context, comment domain.Comment) error

	// UpdateComment updates an existing comment.
	UpdateComment(ctx context.Context, comment domain.Comment) error

	// DeleteComment removes a comment.
	DeleteComment(ctx context.Context, commentID string) error
}

// CommentRepositoryFacade combines all comment-related repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
