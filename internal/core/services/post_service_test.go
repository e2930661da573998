package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/core/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// MockPostRepository is a mock type for the PostRepositoryFacade interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) FindPosts(ctx context.Context, ownerUserID string, limit int, offset int) ([]domain.Post, error) {
	args := m.Called(ctx, ownerUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PostServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockPostRepository
	mockFiles *MockFileStorage
	service   portssvc.PostSvcFacade
}

func (suite *PostServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPostRepository)
	suite.mockFiles = new(MockFileStorage)
	suite.service = services.NewPostService(suite.mockRepo, suite.mockFiles)
}

func validCreatePostRequest() dto.CreatePostRequest {
	return dto.CreatePostRequest{
		Title:        "Two weeks in Patagonia",
		Description:  "Glaciers and hiking",
		MapLink:      "https://maps.example.com/patagonia",
		MinPrice:     decimal.NewFromInt(800),
		MaxPrice:     decimal.NewFromInt(1500),
		NumberOfDays: 14,
		Location:     dto.LocationRequest{City: "El Chalten", Country: "Argentina"},
	}
}

// --- Create ---

func (suite *PostServiceTestSuite) TestCreatePost_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := validCreatePostRequest()

	suite.mockRepo.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.OwnerUserID == ownerID && p.Title == req.Title && len(p.Photos) == 0
	})).Return(nil).Once()

	post, err := suite.service.CreatePost(ctx, req, ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(post)
	suite.NotEmpty(post.PostID)
	suite.Equal(ownerID, post.OwnerUserID)
	suite.Equal("El Chalten", post.Location.City)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestCreatePost_InvalidPriceRange() {
	ctx := context.Background()
	req := validCreatePostRequest()
	req.MinPrice = decimal.NewFromInt(2000)
	req.MaxPrice = decimal.NewFromInt(100)

	post, err := suite.service.CreatePost(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestCreatePost_NegativePrice() {
	ctx := context.Background()
	req := validCreatePostRequest()
	req.MinPrice = decimal.NewFromInt(-5)

	post, err := suite.service.CreatePost(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Update ---

func (suite *PostServiceTestSuite) TestUpdatePost_NotFoundBeforeOwnership() {
	ctx := context.Background()
	// The caller does not own the post, but it also does not exist: the
	// not-found verdict must win so absence is not leaked via a 403.
	suite.mockRepo.On("FindPostByID", ctx, "missing-post").Return(nil, apperrors.ErrNotFound).Once()

	title := "New title"
	post, err := suite.service.UpdatePost(ctx, "missing-post", dto.UpdatePostRequest{Title: &title}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PostServiceTestSuite) TestUpdatePost_ForbiddenForNonOwner() {
	ctx := context.Background()
	existing := &domain.Post{
		PostID:      "post-1",
		OwnerUserID: uuid.NewString(),
		MinPrice:    decimal.NewFromInt(100),
		MaxPrice:    decimal.NewFromInt(200),
	}
	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()

	title := "Hijacked"
	post, err := suite.service.UpdatePost(ctx, "post-1", dto.UpdatePostRequest{Title: &title}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestUpdatePost_AppliesOnlyProvidedFields() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	existing := &domain.Post{
		PostID:      "post-1",
		OwnerUserID: ownerID,
		Title:       "Old title",
		Description: "Old description",
		MinPrice:    decimal.NewFromInt(100),
		MaxPrice:    decimal.NewFromInt(200),
	}
	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Title == "New title" && p.Description == "Old description"
	})).Return(nil).Once()

	title := "New title"
	post, err := suite.service.UpdatePost(ctx, "post-1", dto.UpdatePostRequest{Title: &title}, ownerID)

	suite.Require().NoError(err)
	suite.Equal("New title", post.Title)
	suite.Equal("Old description", post.Description)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestUpdatePost_RejectsInvalidResultingPriceRange() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	existing := &domain.Post{
		PostID:      "post-1",
		OwnerUserID: ownerID,
		MinPrice:    decimal.NewFromInt(100),
		MaxPrice:    decimal.NewFromInt(200),
	}
	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()

	// Raising only the minimum above the stored maximum must fail.
	newMin := decimal.NewFromInt(500)
	post, err := suite.service.UpdatePost(ctx, "post-1", dto.UpdatePostRequest{MinPrice: &newMin}, ownerID)

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

// --- Delete ---

func (suite *PostServiceTestSuite) TestDeletePost_RemovesPhotoFiles() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	existing := &domain.Post{
		PostID:      "post-1",
		OwnerUserID: ownerID,
		Photos:      []string{"uploads/posts/a.jpg", "uploads/posts/b.jpg"},
	}
	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()
	suite.mockRepo.On("DeletePost", ctx, "post-1").Return(nil).Once()
	suite.mockFiles.On("RemoveAll", existing.Photos).Return().Once()

	err := suite.service.DeletePost(ctx, "post-1", ownerID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockFiles.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestDeletePost_ForbiddenForNonOwner() {
	ctx := context.Background()
	existing := &domain.Post{PostID: "post-1", OwnerUserID: uuid.NewString()}
	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()

	err := suite.service.DeletePost(ctx, "post-1", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePost", mock.Anything, mock.Anything)
	suite.mockFiles.AssertNotCalled(suite.T(), "RemoveAll", mock.Anything)
}

// --- Photos ---

func (suite *PostServiceTestSuite) TestAttachPhotos_AppendsToExisting() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	existing := &domain.Post{
		PostID:      "post-1",
		OwnerUserID: ownerID,
		Photos:      []string{"uploads/posts/a.jpg"},
	}
	newPaths := []string{"uploads/posts/b.jpg", "uploads/posts/c.jpg"}

	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return len(p.Photos) == 3
	})).Return(nil).Once()

	post, err := suite.service.AttachPhotos(ctx, "post-1", newPaths, ownerID)

	suite.Require().NoError(err)
	suite.Len(post.Photos, 3)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestAttachPhotos_ForbiddenForNonOwner() {
	ctx := context.Background()
	existing := &domain.Post{PostID: "post-1", OwnerUserID: uuid.NewString()}
	suite.mockRepo.On("FindPostByID", ctx, "post-1").Return(existing, nil).Once()

	post, err := suite.service.AttachPhotos(ctx, "post-1", []string{"uploads/posts/x.jpg"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

func TestPostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostServiceTestSuite))
}
