package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
)

// LocationRequest is the nested destination block of a post payload.
type LocationRequest struct {
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// CreatePostRequest carries a new trip post. The price range is additionally
// checked by a struct-level validation (min <= max) registered at startup.
type CreatePostRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	MapLink      string          `json:"mapLink" binding:"required"`
	MinPrice     decimal.Decimal `json:"minPrice"`
	MaxPrice     decimal.Decimal `json:"maxPrice"`
	NumberOfDays int             `json:"numberOfDays" binding:"required,gt=0"`
	Location     LocationRequest `json:"location" binding:"required"`
}

// UpdatePostRequest allows partial updates; nil fields are left untouched.
type UpdatePostRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	MapLink      *string          `json:"mapLink"`
	MinPrice     *decimal.Decimal `json:"minPrice"`
	MaxPrice     *decimal.Decimal `json:"maxPrice"`
	NumberOfDays *int             `json:"numberOfDays"`
	Location     *LocationRequest `json:"location"`
}

// ListPostsParams defines query parameters for listing posts.
type ListPostsParams struct {
	User   string `form:"user"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// PostResponse is the public view of a trip post.
type PostResponse struct {
	PostID       string          `json:"postID"`
	User         string          `json:"user"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	MapLink      string          `json:"mapLink"`
	MinPrice     decimal.Decimal `json:"minPrice"`
	MaxPrice     decimal.Decimal `json:"maxPrice"`
	NumberOfDays int             `json:"numberOfDays"`
	Location     domain.Location `json:"location"`
	Photos       []string        `json:"photos"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToPostResponse converts a domain.Post to its public representation.
func ToPostResponse(post *domain.Post) PostResponse {
	photos := post.Photos
	if photos == nil {
		photos = []string{}
	}
	return PostResponse{
		PostID:       post.PostID,
		User:         post.OwnerUserID,
		Title:        post.Title,
		Description:  post.Description,
		MapLink:      post.MapLink,
		MinPrice:     post.MinPrice,
		MaxPrice:     post.MaxPrice,
		NumberOfDays: post.NumberOfDays,
		Location:     post.Location,
		Photos:       photos,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// ToPostResponses converts a slice of domain.Post.
func ToPostResponses(posts []domain.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = ToPostResponse(&posts[i])
	}
	return responses
}
