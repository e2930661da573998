package services

import (
	"context"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// CommentReaderSvc defines read operations for comments.
type CommentReaderSvc interface {
	// GetCommentByID retrieves a comment by ID.
	GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// ListComments retrieves comments, optionally filtered by post.
	ListComments(ctx context.Context, params dto.ListCommentsParams) ([]domain.Comment, error)
}

// CommentWriterSvc defines write operations for comments.
type CommentWriterSvc interface {
	// CreateComment creates a comment owned by ownerUserID. The referenced
	// post must exist (ErrNotFound otherwise).
	CreateComment(ctx context.Context, req dto.CreateCommentRequest, ownerUserID string) (*domain.Comment, error)

	// UpdateComment edits the caller's own comment.
	UpdateComment(ctx context.Context, commentID string, req dto.UpdateCommentRequest, requestingUserID string) (*domain.Comment, error)

	// DeleteComment removes the caller's own comment.
	DeleteComment(ctx context.Context, commentID string, requestingUserID string) error
}

// CommentSvcFacade combines all comment-related service interfaces
type CommentSvcFacade interface {
	CommentReaderSvc
	CommentWriterSvc
}
