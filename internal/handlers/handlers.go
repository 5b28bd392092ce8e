package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"kudos/api/internal/config"
	"kudos/api/internal/middleware"
	"kudos/api/internal/models"
	"kudos/api/internal/repository"
	"kudos/api/internal/service"
	"kudos/api/internal/session"
	"kudos/api/internal/storage"
)

// The handler set depends on narrow service contracts so tests can swap
// in stubs.
type authService interface {
	Register(ctx context.Context, input service.RegisterInput) (models.User, error)
	Login(ctx context.Context, email string, password string) (models.User, error)
}

type userService interface {
	Get(ctx context.Context, id string) (models.User, error)
	Roster(ctx context.Context, excludeID string) ([]models.User, error)
	SaveProfile(ctx context.Context, userID string, input service.SaveProfileInput) error
	Delete(ctx context.Context, userID string) error
}

type kudoService interface {
	Send(ctx context.Context, input service.SendKudoInput) error
	Feed(ctx context.Context, recipientID string, sort models.KudoSort, filter string) ([]models.KudoWithAuthor, error)
	Recent(ctx context.Context) ([]models.RecentKudo, error)
}

type avatarService interface {
	Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error)
}

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	sessions *session.Manager
	auth     authService
	users    userService
	kudos    kudoService
	avatars  avatarService
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig, sessions *session.Manager) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	kudoRepo := repository.NewKudoRepository(db)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		sessions: sessions,
		auth:     service.NewAuthService(userRepo, log),
		users:    service.NewUserService(userRepo, log),
		kudos:    service.NewKudoService(kudoRepo, cache, log),
		avatars:  service.NewAvatarService(userRepo, store, log),
		db:       db,
		cache:    cache,
	}
}

func (h HandlerSet) Register(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.Login)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.RegisterUser)
	router.POST("/logout", h.Logout)

	router.POST("/avatar", middleware.RequireUser(h.sessions), h.UploadAvatar)

	home := router.Group("/home", middleware.RequireUser(h.sessions))
	home.GET("", h.Home)
	home.GET("/profile", h.ShowProfile)
	home.POST("/profile", h.ProfileAction)
	home.GET("/kudo/:userId", h.ShowKudoForm)
	home.POST("/kudo/:userId", h.SendKudo)
}

// currentUser resolves the session's user row. A session pointing at a
// deleted user forces a logout instead of erroring.
func (h HandlerSet) currentUser(c *gin.Context) (models.User, bool) {
	userID := middleware.UserID(c)

	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.sessions.Destroy(c)
			middleware.RedirectToLogin(c, "")
			return models.User{}, false
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("load current user failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return models.User{}, false
	}
	return user, true
}
