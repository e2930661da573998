package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	sessionService portssvc.SessionSvcFacade
	fileService    portssvc.FileStorageSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(ss portssvc.SessionSvcFacade, fs portssvc.FileStorageSvc) *AuthHandler {
	return &AuthHandler{
		sessionService: ss,
		fileService:    fs,
	}
}

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(rg *gin.Engine, sessionService portssvc.SessionSvcFacade, fileService portssvc.FileStorageSvc) {
	h := NewAuthHandler(sessionService, fileService)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh-token", h.RefreshToken)
		auth.POST("/logout", h.Logout)
		auth.POST("/google", h.GoogleSignIn)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account and returns an initial token pair. Accepts multipart form data with an optional profilePicture file.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param email formData string true "Email address"
// @Param password formData string true "Password (min 6 chars)"
// @Param username formData string true "Username"
// @Param profilePicture formData file false "Profile picture"
// @Success 201 {object} dto.TokenPairResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Registration request failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Registration failed"})
		return
	}

	// The profile picture is optional; when present it is stored up front so
	// the session service can delete it again if registration fails.
	profilePicturePath := ""
	if fileHeader, err := c.FormFile("profilePicture"); err == nil && fileHeader != nil {
		path, saveErr := h.fileService.SaveProfilePicture(uuid.NewString(), fileHeader)
		if saveErr != nil {
			logger.Warn("Failed to store profile picture", slog.String("error", saveErr.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Registration failed"})
			return
		}
		profilePicturePath = path
	}

	pair, err := h.sessionService.Register(c.Request.Context(), req, profilePicturePath)
	if err != nil {
		logger.Warn("Registration failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Registration failed"})
		return
	}

	logger.Info("User registered successfully")
	c.JSON(http.StatusCreated, pair)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a fresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password required"})
		return
	}

	pair, err := h.sessionService.Login(c.Request.Context(), req)
	if err != nil {
		// Unknown email and wrong password produce the same response.
		logger.Warn("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	logger.Info("User logged in successfully")
	c.JSON(http.StatusOK, pair)
}

// RefreshToken godoc
// @Summary Refresh token pair
// @Description Exchanges a refresh token for a new token pair. Each refresh token is single use; reuse revokes every active session for the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Refresh token required"})
		return
	}

	pair, err := h.sessionService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Warn("Refresh token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	logger.Info("Token pair refreshed")
	c.JSON(http.StatusOK, pair)
}

// Logout godoc
// @Summary Logout
// @Description Invalidates the supplied refresh token. Other sessions for the same user keep working.
// @Tags auth
// @Accept json
// @Produce json
// @Param logout body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Refresh token required"})
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		logger.Warn("Logout rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	logger.Info("User logged out")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// GoogleSignIn godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token, creating the user on first sign-in, and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param google body dto.GoogleSignInRequest true "Google ID Token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ID token required"})
		return
	}

	pair, err := h.sessionService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Google sign-in failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	logger.Info("User signed in with Google")
	c.JSON(http.StatusOK, pair)
}
