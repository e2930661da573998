package services

import (
	"context"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// PostReaderSvc defines read operations for trip posts.
type PostReaderSvc interface {
	// GetPostByID retrieves a post by ID.
	GetPostByID(ctx context.Context, postID string) (*domain.Post, error)

	// ListPosts retrieves posts, optionally filtered by owner.
	ListPosts(ctx context.Context, params dto.ListPostsParams) ([]domain.Post, error)
}

// PostWriterSvc defines write operations for trip posts. Every mutation of an
// existing post reports ErrNotFound before any ownership verdict.
type PostWriterSvc interface {
	// CreatePost creates a post owned by ownerUserID.
	CreatePost(ctx context.Context, req dto.CreatePostRequest, ownerUserID string) (*domain.Post, error)

	// UpdatePost applies a partial update to the caller's own post.
	UpdatePost(ctx context.Context, postID string, req dto.UpdatePostRequest, requestingUserID string) (*domain.Post, error)

	// DeletePost removes the caller's own post together with its photo files.
	DeletePost(ctx context.Context, postID string, requestingUserID string) error

	// AttachPhotos records already-stored photo paths on the caller's own post.
	AttachPhotos(ctx context.Context, postID string, photoPaths []string, requestingUserID string) (*domain.Post, error)
}

// PostSvcFacade combines all post-related service interfaces
type PostSvcFacade interface {
	PostReaderSvc
	PostWriterSvc
}
