package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
	fileService portssvc.FileStorageSvc
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, fs portssvc.FileStorageSvc) *userHandler {
	return &userHandler{
		userService: us,
		fileService: fs,
	}
}

// registerUserRoutes registers all user-related routes. Profile reads are
// public; mutations require authentication and operate on the caller's own
// account only.
func registerUserRoutes(public, authed *gin.RouterGroup, userService portssvc.UserSvcFacade, fileService portssvc.FileStorageSvc) {
	h := newUserHandler(userService, fileService)

	public.GET("/users", h.listUsers)
	public.GET("/users/:id", h.getUser)

	authed.PUT("/users/:id", h.updateUser)
	authed.DELETE("/users/:id", h.deleteUser)
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves the public profile of a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a paginated list of public user profiles
// @Tags users
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listUsers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates the caller's own profile. Accepts multipart form data with an optional replacement profilePicture file.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param id path string true "User ID to update"
// @Param username formData string false "New username"
// @Param profilePicture formData file false "New profile picture"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind form for updateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	profilePicturePath := ""
	if fileHeader, err := c.FormFile("profilePicture"); err == nil && fileHeader != nil {
		path, saveErr := h.fileService.SaveProfilePicture(userID, fileHeader)
		if saveErr != nil {
			logger.Warn("Failed to store profile picture", slog.String("error", saveErr.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to store profile picture"})
			return
		}
		profilePicturePath = path
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, profilePicturePath, requestingUserID)
	if err != nil {
		// Don't leave the freshly stored picture behind when the update fails.
		if profilePicturePath != "" {
			if rmErr := h.fileService.Remove(profilePicturePath); rmErr != nil {
				logger.Error("Failed to remove orphaned profile picture", slog.String("error", rmErr.Error()))
			}
		}
		respondServiceError(c, logger, err, "Failed to update user")
		return
	}

	logger.Info("User updated successfully", slog.String("target_user_id", userID))
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Deletes the caller's own account
// @Tags users
// @Produce json
// @Param id path string true "User ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete user")
		return
	}

	logger.Info("User deleted successfully", slog.String("target_user_id", userID))
	c.Status(http.StatusNoContent)
}
