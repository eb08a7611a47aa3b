package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/pborkovic/bunkermuseum-members/internal/auth"
	"github.com/pborkovic/bunkermuseum-members/internal/avatar"
	"github.com/pborkovic/bunkermuseum-members/internal/booking"
	"github.com/pborkovic/bunkermuseum-members/internal/config"
	"github.com/pborkovic/bunkermuseum-members/internal/logger"
	"github.com/pborkovic/bunkermuseum-members/internal/maillog"
	"github.com/pborkovic/bunkermuseum-members/internal/member"
	"github.com/pborkovic/bunkermuseum-members/internal/metrics"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config          config.Config
	Logger          *zap.Logger
	DB              *pgxpool.Pool
	ObjectStore     *minio.Client
	AuthService     *auth.Service
	MemberService   *member.Service
	BookingService  *booking.Service
	AvatarService   *avatar.Service
	AvatarResolver  avatar.URLResolver
	EmailLogService *maillog.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	if deps.Logger != nil {
		router.Use(logger.RequestLogger(deps.Logger))
	}

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/api")
	if deps.AuthService == nil {
		return router
	}

	auth.RegisterRoutes(api, deps.AuthService)

	// Avatar serving stays public so browsers can load <img> tags
	// without credentials.
	publicUpload := api.Group("/upload")

	protected := api.Group("/")
	protected.Use(auth.Middleware(deps.AuthService))

	admin := protected.Group("/admin")
	admin.Use(auth.RequireAdmin())

	auth.RegisterProtectedRoutes(protected, deps.AuthService)

	if deps.AvatarService != nil {
		protectedUpload := protected.Group("/upload")
		avatar.RegisterRoutes(publicUpload, protectedUpload, deps.AvatarService, deps.AvatarResolver)
	}
	if deps.MemberService != nil {
		member.RegisterRoutes(protected, admin, deps.MemberService)
	}
	if deps.BookingService != nil {
		booking.RegisterRoutes(protected, admin, deps.BookingService)
	}
	if deps.EmailLogService != nil {
		maillog.RegisterRoutes(admin, deps.EmailLogService)
	}

	return router
}
