package repositories

import (
	"context"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
)

// PostReader defines read operations for trip posts.
type PostReader interface {
	// FindPostByID retrieves a specific post by its ID.
	FindPostByID(ctx context.Context, postID string) (*domain.Post, error)

	// FindPosts retrieves posts, optionally filtered by owner.
	FindPosts(ctx context.Context, ownerUserID string, limit int, offset int) ([]domain.Post, error)
}

// PostWriter defines write operations for trip posts.
type PostWriter interface {
	// SavePost persists a new post.
	SavePost(ctx context.Context, post domain.Post) error

	// UpdatePost updates an existing post.
	UpdatePost(ctx context.Context, post domain.Post) error

	// DeletePost removes a post and its comments.
	DeletePost(ctx context.Context, postID string) error
}

// PostRepositoryFacade combines all post-related repository interfaces
type PostRepositoryFacade interface {
	PostReader
	PostWriter
}
