package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
	"github.com/tamarandofir/travelsync_backend/internal/core/domain"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/handlers"
	"github.com/tamarandofir/travelsync_backend/internal/platform/config"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed JWT for handler tests.
func generateTestToken(t *testing.T, userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "travelsync-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

// newTestRouter builds a gin engine with the full route table and the real
// auth middleware, backed by the supplied service container.
func newTestRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	handlers.RegisterRoutes(r, cfg, services)
	return r
}

// --- Mock SessionService ---

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Register(ctx context.Context, req dto.RegisterRequest, profilePicturePath string) (*dto.TokenPairResponse, error) {
	args := m.Called(ctx, req, profilePicturePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

func (m *MockSessionService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

func (m *MockSessionService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockSessionService) LoginWithGoogle(ctx context.Context, idTokenString string) (*dto.TokenPairResponse, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

func (m *MockSessionService) LoginWithGoogleProfile(ctx context.Context, info *domain.GoogleUserInfo) (*dto.TokenPairResponse, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock FileStorageSvc ---

type MockFileStorageSvc struct {
	mock.Mock
}

func (m *MockFileStorageSvc) SaveProfilePicture(userID string, file *multipart.FileHeader) (string, error) {
	args := m.Called(userID, file)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorageSvc) SavePostPhotos(postID string, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(postID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileStorageSvc) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileStorageSvc) RemoveAll(paths []string) {
	m.Called(paths)
}

var _ portssvc.FileStorageSvc = (*MockFileStorageSvc)(nil)

// --- Test Suite ---

type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockSession *MockSessionService
	mockFiles   *MockFileStorageSvc
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.mockSession = new(MockSessionService)
	suite.mockFiles = new(MockFileStorageSvc)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Session: suite.mockSession,
		Files:   suite.mockFiles,
	})
}

// registerForm builds a multipart body with the given registration fields.
func registerForm(suite *AuthHandlerTestSuite, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		suite.Require().NoError(writer.WriteField(k, v))
	}
	suite.Require().NoError(writer.Close())
	return body, writer.FormDataContentType()
}

func (suite *AuthHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// --- Register ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	pair := &dto.TokenPairResponse{Token: "access", RefreshToken: "refresh"}
	suite.mockSession.On("Register", mock.Anything, mock.MatchedBy(func(r dto.RegisterRequest) bool {
		return r.Email == "new@example.com" && r.Username == "newbie"
	}), "").Return(pair, nil).Once()

	body, contentType := registerForm(suite, map[string]string{
		"email":    "new@example.com",
		"password": "secret123",
		"username": "newbie",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TokenPairResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access", resp.Token)
	suite.Equal("refresh", resp.RefreshToken)
	suite.mockSession.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmailIs401() {
	suite.mockSession.On("Register", mock.Anything, mock.Anything, "").
		Return(nil, apperrors.ErrDuplicate).Once()

	body, contentType := registerForm(suite, map[string]string{
		"email":    "taken@example.com",
		"password": "secret123",
		"username": "dupe",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_ValidationFailureIs401() {
	// Short password fails binding; the service is never reached.
	body, contentType := registerForm(suite, map[string]string{
		"email":    "new@example.com",
		"password": "tiny",
		"username": "newbie",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSession.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything, mock.Anything)
}

// --- Login ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	pair := &dto.TokenPairResponse{Token: "access", RefreshToken: "refresh"}
	suite.mockSession.On("Login", mock.Anything, dto.LoginRequest{Email: "me@example.com", Password: "secret123"}).
		Return(pair, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"me@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSession.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingFieldsIs400() {
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"me@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSession.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentialsBodyIsUniform() {
	suite.mockSession.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrUnauthorized).Twice()

	bodies := []string{
		`{"email":"unknown@example.com","password":"whatever"}`,
		`{"email":"known@example.com","password":"wrong"}`,
	}
	var responses []string
	for _, b := range bodies {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)
		suite.Equal(http.StatusUnauthorized, w.Code)
		responses = append(responses, w.Body.String())
	}

	// Unknown email and wrong password must be indistinguishable.
	suite.Equal(responses[0], responses[1])
}

// --- Refresh ---

func (suite *AuthHandlerTestSuite) TestRefreshToken_Success() {
	pair := &dto.TokenPairResponse{Token: "new-access", RefreshToken: "new-refresh"}
	suite.mockSession.On("Refresh", mock.Anything, "old-refresh").Return(pair, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh-token", strings.NewReader(`{"refreshToken":"old-refresh"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TokenPairResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("new-refresh", resp.RefreshToken)
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_MissingIs400() {
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh-token", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSession.AssertNotCalled(suite.T(), "Refresh", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_ReusedIs401() {
	suite.mockSession.On("Refresh", mock.Anything, "consumed").
		Return(nil, apperrors.ErrUnauthorized).Once()

	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh-token", strings.NewReader(`{"refreshToken":"consumed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid refresh token", suite.errorBody(w))
}

// --- Logout ---

func (suite *AuthHandlerTestSuite) TestLogout_Success() {
	suite.mockSession.On("Logout", mock.Anything, "active-refresh").Return(nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(`{"refreshToken":"active-refresh"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Message)
}

func (suite *AuthHandlerTestSuite) TestLogout_UnknownTokenIs401() {
	suite.mockSession.On("Logout", mock.Anything, "stale").
		Return(apperrors.ErrUnauthorized).Once()

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(`{"refreshToken":"stale"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Google sign-in ---

func (suite *AuthHandlerTestSuite) TestGoogleSignIn_Success() {
	pair := &dto.TokenPairResponse{Token: "access", RefreshToken: "refresh"}
	suite.mockSession.On("LoginWithGoogle", mock.Anything, "google-id-token").Return(pair, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"idToken":"google-id-token"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSession.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
