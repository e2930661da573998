package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/dto"
	"github.com/tamarandofir/travelsync_backend/internal/middleware"
)

// postHandler handles HTTP requests related to trip posts.
type postHandler struct {
	postService portssvc.PostSvcFacade
	fileService portssvc.FileStorageSvc
}

// newPostHandler creates a new postHandler.
func newPostHandler(ps portssvc.PostSvcFacade, fs portssvc.FileStorageSvc) *postHandler {
	return &postHandler{
		postService: ps,
		fileService: fs,
	}
}

// registerPostRoutes registers all post-related routes. Reads are public;
// mutations require authentication and ownership.
func registerPostRoutes(public, authed *gin.RouterGroup, postService portssvc.PostSvcFacade, fileService portssvc.FileStorageSvc) {
	h := newPostHandler(postService, fileService)

	public.GET("/posts", h.listPosts)
	public.GET("/posts/:id", h.getPost)

	authed.POST("/posts", h.createPost)
	authed.PUT("/posts/:id", h.updatePost)
	authed.DELETE("/posts/:id", h.deletePost)
	authed.POST("/posts/:id/photos", h.uploadPhotos)
}

// listPosts godoc
// @Summary List trip posts
// @Description Retrieves trip posts, optionally filtered by owner
// @Tags posts
// @Produce json
// @Param user query string false "Filter by owner user ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts [get]
func (h *postHandler) listPosts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listPosts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list posts")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// getPost godoc
// @Summary Get a trip post by ID
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} ErrorResponse "Post not found"
// @Failure 500 {object} ErrorResponse
// @Router /posts/{id} [get]
func (h *postHandler) getPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postID := c.Param("id")

	post, err := h.postService.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve post")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// createPost godoc
// @Summary Create a trip post
// @Description Creates a trip post owned by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param post body dto.CreatePostRequest true "Post details"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *postHandler) createPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req, ownerUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create post")
		return
	}

	logger.Info("Post created successfully", slog.String("post_id", post.PostID))
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// updatePost godoc
// @Summary Update a trip post
// @Description Applies a partial update to the caller's own post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID to update"
// @Param post body dto.UpdatePostRequest true "Fields to update"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [put]
func (h *postHandler) updatePost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updatePost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), postID, req, requestingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update post")
		return
	}

	logger.Info("Post updated successfully", slog.String("post_id", postID))
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// deletePost godoc
// @Summary Delete a trip post
// @Description Deletes the caller's own post together with its photo files
// @Tags posts
// @Produce json
// @Param id path string true "Post ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (h *postHandler) deletePost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), postID, requestingUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete post")
		return
	}

	logger.Info("Post deleted successfully", slog.String("post_id", postID))
	c.Status(http.StatusNoContent)
}

// uploadPhotos godoc
// @Summary Upload photos for a trip post
// @Description Stores photo files and attaches them to the caller's own post. Files are deleted again if the attachment cannot be persisted.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param id path string true "Post ID"
// @Param photos formData file true "Photo files"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/photos [post]
func (h *postHandler) uploadPhotos(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form: " + err.Error()})
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one photo file required"})
		return
	}

	paths, err := h.fileService.SavePostPhotos(postID, files)
	if err != nil {
		logger.Warn("Failed to store post photos", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to store photos"})
		return
	}

	post, err := h.postService.AttachPhotos(c.Request.Context(), postID, paths, requestingUserID)
	if err != nil {
		// The files were already written; remove them so a failed attach
		// leaves no orphans on disk.
		h.fileService.RemoveAll(paths)
		respondServiceError(c, logger, err, "Failed to attach photos")
		return
	}

	logger.Info("Photos attached successfully", slog.String("post_id", postID), slog.Int("count", len(paths)))
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}
