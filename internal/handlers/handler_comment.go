package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/middleware"
)

// commentHandler handles HTTP requests related to comments.
type commentHandler struct {
	commentService portssvc.CommentSvcFacade
}

// newCommentHandler creates a new commentHandler.
func newCommentHandler(cs portssvc.CommentSvcFacade) *commentHandler {
	return &commentHandler{
		commentService: cs,
	}
}

// registerCommentRoutes registers all comment-related routes. Reads are
// public; mutations require authentication and ownership.
func registerCommentRoutes(public, authed *gin.RouterGroup, commentService portssvc.CommentSvcFacade) {
	h := newCommentHandler(commentService)

	public.GET("/comments", h.listComments)
	public.GET("/comments/:id", h.getComment)

	authed.POST("/comments", h.createComment)
	authed.PUT("/comments/:id", h.updateComment)
	authed.DELETE("/comments/:id", h.deleteComment)
}

// listComments godoc
// @Summary List comments
// @Description Retrieves comments, optionally filtered by post
// @Tags comments
// @Produce json
// @Param post query string false "Filter by post ID"
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /comments [get]
func (h *commentHandler) listComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCommentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listComments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list comments")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// getComment godoc
// @Summary Get a comment by ID
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} dto.CommentResponse
// @Failure 404 {object} ErrorResponse "Comment not found"
// @Failure 500 {object} ErrorResponse
// @Router /comments/{id} [get]
func (h *commentHandler) getComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commentID := c.Param("id")

	comment, err := h.commentService.GetCommentByID(c.Request.Context(), commentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve comment")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// createComment godoc
// @Summary Create a comment
// @Description Creates a comment on an existing post, owned by the caller
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body dto.CreateCommentRequest true "Comment details"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Post not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments [post]
func (h *commentHandler) createComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), req, ownerUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create comment")
		return
	}

	logger.Info("Comment created successfully", slog.String("comment_id", comment.CommentID))
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// updateComment godoc
// @Summary Update a comment
// @Description Edits the caller's own comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID to update"
// @Param comment body dto.UpdateCommentRequest true "Fields to update"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [put]
func (h *commentHandler) updateComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commentID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update comment")
		return
	}

	logger.Info("Comment updated successfully", slog.String("comment_id", commentID))
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// deleteComment godoc
// @Summary Delete a comment
// @Description Deletes the caller's own comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *commentHandler) deleteComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commentID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete comment")
		return
	}

	logger.Info("Comment deleted successfully", slog.String("comment_id", commentID))
	c.Status(http.StatusNoContent)
}
