package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portsrepo "github.com/tamarandofir/travelsync_backend/internal/core/ports/repositories"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

type commentService struct {
	commentRepo portsrepo.CommentRepositoryFacade
	postRepo    portsrepo.PostReader
}

// NewCommentService creates a new instance of commentService.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade, postRepo portsrepo.PostReader) portssvc.CommentSvcFacade {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, params dto.ListCommentsParams) ([]domain.Comment, error) {
	comments, err := s.commentRepo.FindComments(ctx, params.Post, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CreateComment creates a comment owned by the caller. The referenced post
// must exist; a missing post surfaces as ErrNotFound.
func (s *commentService) CreateComment(ctx context.Context, req dto.CreateCommentRequest, ownerUserID string) (*domain.Comment, error) {
	if _, err := s.postRepo.FindPostByID(ctx, req.Post); err != nil {
		return nil, fmt.Errorf("failed to find post for comment: %w", err)
	}

	now := time.Now()
	comment := domain.Comment{
		CommentID:   uuid.NewString(),
		PostID:      req.Post,
		OwnerUserID: ownerUserID,
		Text:        req.Text,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment edits the caller's own comment. Not-found is reported before
// the ownership verdict.
func (s *commentService) UpdateComment(ctx context.Context, commentID string, req dto.UpdateCommentRequest, requestingUserID string) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find comment for update: %w", err)
	}
	if comment.OwnerUserID != requestingUserID {
		return nil, fmt.Errorf("cannot update another user's comment: %w", apperrors.ErrForbidden)
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.UpdateComment(ctx, *comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID string, requestingUserID string) error {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to find comment for deletion: %w", err)
	}
	if comment.OwnerUserID != requestingUserID {
		return fmt.Errorf("cannot delete another user's comment: %w", apperrors.ErrForbidden)
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
