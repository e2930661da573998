package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portsrepo "github.com/tamarandofir/travelsync_backend/internal/core/ports/repositories"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

type postService struct {
	postRepo portsrepo.PostRepositoryFacade
	files    portssvc.FileStorageSvc
}

// NewPostService creates a new instance of postService.
func NewPostService(postRepo portsrepo.PostRepositoryFacade, files portssvc.FileStorageSvc) portssvc.PostSvcFacade {
	return &postService{postRepo: postRepo, files: files}
}

func (s *postService) GetPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, params dto.ListPostsParams) ([]domain.Post, error) {
	posts, err := s.postRepo.FindPosts(ctx, params.User, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) CreatePost(ctx context.Context, req dto.CreatePostRequest, ownerUserID string) (*domain.Post, error) {
	if err := validatePriceRange(req.MinPrice, req.MaxPrice); err != nil {
		return nil, err
	}

	now := time.Now()
	post := domain.Post{
		PostID:       uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Title:        req.Title,
		Description:  req.Description,
		MapLink:      req.MapLink,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		NumberOfDays: req.NumberOfDays,
		Location: domain.Location{
			City:    req.Location.City,
			Country: req.Location.Country,
		},
		Photos:     []string{},
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return &post, nil
}

// UpdatePost applies a partial update to the caller's own post. Not-found is
// reported before the ownership verdict.
func (s *postService) UpdatePost(ctx context.Context, postID string, req dto.UpdatePostRequest, requestingUserID string) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post for update: %w", err)
	}
	if post.OwnerUserID != requestingUserID {
		return nil, fmt.Errorf("cannot update another user's post: %w", apperrors.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.MapLink != nil {
		post.MapLink = *req.MapLink
	}
	if req.MinPrice != nil {
		post.MinPrice = *req.MinPrice
	}
	if req.MaxPrice != nil {
		post.MaxPrice = *req.MaxPrice
	}
	if req.NumberOfDays != nil {
		post.NumberOfDays = *req.NumberOfDays
	}
	if req.Location != nil {
		post.Location = domain.Location{City: req.Location.City, Country: req.Location.Country}
	}
	if err := validatePriceRange(post.MinPrice, post.MaxPrice); err != nil {
		return nil, err
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost removes the caller's own post and then its photo files.
func (s *postService) DeletePost(ctx context.Context, postID string, requestingUserID string) error {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to find post for deletion: %w", err)
	}
	if post.OwnerUserID != requestingUserID {
		return fmt.Errorf("cannot delete another user's post: %w", apperrors.ErrForbidden)
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.files.RemoveAll(post.Photos)
	return nil
}

// AttachPhotos records already-stored photo paths on the caller's own post.
// The handler is responsible for removing the files when this fails.
func (s *postService) AttachPhotos(ctx context.Context, postID string, photoPaths []string, requestingUserID string) (*domain.Post, error) {
	post, err := s.postRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post for photo attach: %w", err)
	}
	if post.OwnerUserID != requestingUserID {
		return nil, fmt.Errorf("cannot attach photos to another user's post: %w", apperrors.ErrForbidden)
	}

	post.Photos = append(post.Photos, photoPaths...)
	post.UpdatedAt = time.Now()

	if err := s.postRepo.UpdatePost(ctx, *post); err != nil {
		return nil, fmt.Errorf("failed to persist post photos: %w", err)
	}
	return post, nil
}

func validatePriceRange(minPrice, maxPrice decimal.Decimal) error {
	if minPrice.IsNegative() || maxPrice.IsNegative() {
		return fmt.Errorf("prices must not be negative: %w", apperrors.ErrValidation)
	}
	if minPrice.GreaterThan(maxPrice) {
		return fmt.Errorf("minPrice must not exceed maxPrice: %w", apperrors.ErrValidation)
	}
	return nil
}
