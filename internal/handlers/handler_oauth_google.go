package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/middleware"
)

// oauthStateCookie carries the CSRF state between the login redirect and the
// provider callback.
const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles the browser redirect variant of Google sign-in:
// the login endpoint sends the user to Google's consent screen, the callback
// receives the authorization code and finishes the session.
type GoogleOAuthHandler struct {
	oauthService   portssvc.GoogleOAuthSvcFacade
	sessionService portssvc.SessionSvcFacade
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(os portssvc.GoogleOAuthSvcFacade, ss portssvc.SessionSvcFacade) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService:   os,
		sessionService: ss,
	}
}

// registerGoogleOAuthRoutes sets up the redirect-based Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, oauthService portssvc.GoogleOAuthSvcFacade, sessionService portssvc.SessionSvcFacade) {
	h := NewGoogleOAuthHandler(oauthService, sessionService)

	google := rg.Group("/auth/google")
	{
		google.GET("/login", h.GoogleLogin)
		google.GET("/callback", h.GoogleCallback)
	}
}

// GoogleLogin godoc
// @Summary Start Google sign-in (redirect flow)
// @Description Redirects the browser to Google's consent screen. A CSRF state value is stored in a cookie and checked again on the callback.
// @Tags auth
// @Produce json
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) GoogleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/auth/google", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// GoogleCallback godoc
// @Summary Finish Google sign-in (redirect flow)
// @Description Validates the CSRF state, exchanges the authorization code for Google tokens, fetches the user's profile and returns a token pair.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) GoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth callback state mismatch")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// The state is single use.
	c.SetCookie(oauthStateCookie, "", -1, "/auth/google", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code required"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Warn("Failed to exchange authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Warn("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	pair, err := h.sessionService.LoginWithGoogleProfile(c.Request.Context(), info)
	if err != nil {
		logger.Warn("Google sign-in failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	logger.Info("User signed in with Google via redirect flow")
	c.JSON(http.StatusOK, pair)
}
