package services

import (
	portsrepo "github.com/tamarandofir/travelsync_backend/internal/core/ports/repositories"
	portssvc "github.com/tamarandofir/travelsync_backend/internal/core/ports/services"
	"github.com/tamarandofir/travelsync_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, files portssvc.FileStorageSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Files = files
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.User = NewUserService(repos.UserRepo, files)

	// The session service sits on top of the token issuer and the user store.
	container.Session = NewSessionService(repos.UserRepo, container.Token, container.User, container.GoogleOAuth, files)

	container.Post = NewPostService(repos.PostRepo, files)
	container.Comment = NewCommentService(repos.CommentRepo, repos.PostRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.TokenSvcFacade   = (*tokenService)(nil)
	_ portssvc.SessionSvcFacade = (*sessionService)(nil)
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.PostSvcFacade    = (*postService)(nil)
	_ portssvc.CommentSvcFacade = (*commentService)(nil)
)
