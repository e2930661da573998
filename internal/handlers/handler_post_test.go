package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
)

// --- Mock PostService ---

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, params dto.ListPostsParams) ([]domain.Post, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, req dto.CreatePostRequest, ownerUserID string) (*domain.Post, error) {
	args := m.Called(ctx, req, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID string, req dto.UpdatePostRequest, requestingUserID string) (*domain.Post, error) {
	args := m.Called(ctx, postID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID string, requestingUserID string) error {
	args := m.Called(ctx, postID, requestingUserID)
	return args.Error(0)
}

func (m *MockPostService) AttachPhotos(ctx context.Context, postID string, photoPaths []string, requestingUserID string) (*domain.Post, error) {
	args := m.Called(ctx, postID, photoPaths, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

var _ portssvc.PostSvcFacade = (*MockPostService)(nil)

// --- Test Suite ---

type PostHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockPosts *MockPostService
	mockFiles *MockFileStorageSvc
}

func (suite *PostHandlerTestSuite) SetupTest() {
	suite.mockPosts = new(MockPostService)
	suite.mockFiles = new(MockFileStorageSvc)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Post:  suite.mockPosts,
		Files: suite.mockFiles,
	})
}

const createPostJSON = `{
	"title": "Two weeks in Patagonia",
	"description": "Glaciers and hiking",
	"mapLink": "https://maps.example.com/patagonia",
	"minPrice": "800",
	"maxPrice": "1500",
	"numberOfDays": 14,
	"location": {"city": "El Chalten", "country": "Argentina"}
}`

func (suite *PostHandlerTestSuite) TestListPosts_PublicWithoutToken() {
	posts := []domain.Post{{PostID: uuid.NewString(), OwnerUserID: uuid.NewString(), Title: "A trip"}}
	suite.mockPosts.On("ListPosts", mock.Anything, mock.MatchedBy(func(p dto.ListPostsParams) bool {
		return p.User == "" && p.Limit == 20
	})).Return(posts, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.PostResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
}

func (suite *PostHandlerTestSuite) TestListPosts_UserFilterIsPassedThrough() {
	ownerID := uuid.NewString()
	suite.mockPosts.On("ListPosts", mock.Anything, mock.MatchedBy(func(p dto.ListPostsParams) bool {
		return p.User == ownerID
	})).Return([]domain.Post{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/posts?user="+ownerID, nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPosts.AssertExpectations(suite.T())
}

func (suite *PostHandlerTestSuite) TestCreatePost_WithoutTokenIs401() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(createPostJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Unauthorized")
	suite.mockPosts.AssertNotCalled(suite.T(), "CreatePost", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostHandlerTestSuite) TestCreatePost_OwnerIsTakenFromToken() {
	callerID := uuid.NewString()
	created := &domain.Post{
		PostID:      uuid.NewString(),
		OwnerUserID: callerID,
		Title:       "Two weeks in Patagonia",
		MinPrice:    decimal.NewFromInt(800),
		MaxPrice:    decimal.NewFromInt(1500),
	}
	suite.mockPosts.On("CreatePost", mock.Anything, mock.AnythingOfType("dto.CreatePostRequest"), callerID).
		Return(created, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(createPostJSON))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), callerID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(callerID, resp.User)
	suite.mockPosts.AssertExpectations(suite.T())
}

func (suite *PostHandlerTestSuite) TestUpdatePost_MissingPostIs404() {
	callerID := uuid.NewString()
	suite.mockPosts.On("UpdatePost", mock.Anything, "missing", mock.Anything, callerID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodPut, "/api/v1/posts/missing", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), callerID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PostHandlerTestSuite) TestUpdatePost_NotOwnerIs403() {
	callerID := uuid.NewString()
	suite.mockPosts.On("UpdatePost", mock.Anything, "post-1", mock.Anything, callerID).
		Return(nil, apperrors.ErrForbidden).Once()

	req, _ := http.NewRequest(http.MethodPut, "/api/v1/posts/post-1", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), callerID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *PostHandlerTestSuite) TestDeletePost_Success() {
	callerID := uuid.NewString()
	suite.mockPosts.On("DeletePost", mock.Anything, "post-1", callerID).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/posts/post-1", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), callerID))
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPosts.AssertExpectations(suite.T())
}

// photoUploadRequest builds a multipart request with one photo file.
func (suite *PostHandlerTestSuite) photoUploadRequest(postID string, token string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("photos", "beach.jpg")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/photos", postID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (suite *PostHandlerTestSuite) TestUploadPhotos_Success() {
	callerID := uuid.NewString()
	paths := []string{"uploads/posts/post-1/beach.jpg"}
	updated := &domain.Post{PostID: "post-1", OwnerUserID: callerID, Photos: paths}

	suite.mockFiles.On("SavePostPhotos", "post-1", mock.AnythingOfType("[]*multipart.FileHeader")).
		Return(paths, nil).Once()
	suite.mockPosts.On("AttachPhotos", mock.Anything, "post-1", paths, callerID).
		Return(updated, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.photoUploadRequest("post-1", generateTestToken(suite.T(), callerID)))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(paths, resp.Photos)
	suite.mockFiles.AssertExpectations(suite.T())
}

func (suite *PostHandlerTestSuite) TestUploadPhotos_AttachFailureRemovesStoredFiles() {
	callerID := uuid.NewString()
	paths := []string{"uploads/posts/post-1/beach.jpg"}

	suite.mockFiles.On("SavePostPhotos", "post-1", mock.AnythingOfType("[]*multipart.FileHeader")).
		Return(paths, nil).Once()
	suite.mockPosts.On("AttachPhotos", mock.Anything, "post-1", paths, callerID).
		Return(nil, apperrors.ErrForbidden).Once()
	suite.mockFiles.On("RemoveAll", paths).Return().Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.photoUploadRequest("post-1", generateTestToken(suite.T(), callerID)))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockFiles.AssertExpectations(suite.T())
}

func TestPostHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostHandlerTestSuite))
}
