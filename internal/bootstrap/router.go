package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/internal/achievements"
	"github.com/reconnect-app/reconnect-backend/internal/alumni"
	"github.com/reconnect-app/reconnect-backend/internal/auth"
	"github.com/reconnect-app/reconnect-backend/internal/blogs"
	"github.com/reconnect-app/reconnect-backend/internal/colleges"
	"github.com/reconnect-app/reconnect-backend/internal/connections"
	"github.com/reconnect-app/reconnect-backend/internal/httpapi"
	"github.com/reconnect-app/reconnect-backend/internal/httpapi/middleware"
	"github.com/reconnect-app/reconnect-backend/internal/logger"
	"github.com/reconnect-app/reconnect-backend/internal/messages"
	"github.com/reconnect-app/reconnect-backend/internal/store"
	"github.com/reconnect-app/reconnect-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Log            *zap.Logger
	Store          store.Store
	AuthClient     *fbauth.Client
	Identity       auth.IdentityProvider
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.Store, dep.Log)
	authService := auth.NewService(dep.Identity, userRepo, dep.Log)

	api := r.Group("/api/v1")
	auth.RegisterPublic(api.Group("/auth"), authService)

	protected := api.Group("")
	protected.Use(auth.Middleware(dep.AuthClient))

	auth.RegisterProtected(protected.Group("/auth"), authService)
	users.Register(protected.Group("/users"), userRepo)
	colleges.Register(protected.Group("/colleges"), colleges.NewRepo(dep.Store, dep.Log))
	alumni.Register(protected.Group("/alumni"), alumni.NewRepo(dep.Store, dep.Log))
	blogs.Register(protected.Group("/blogs"), blogs.NewRepo(dep.Store, dep.Log))
	achievements.Register(protected.Group("/achievements"), achievements.NewRepo(dep.Store, dep.Log))
	connections.Register(protected.Group("/connections"), connections.NewRepo(dep.Store, dep.Log))
	messages.Register(protected.Group("/messages"), messages.NewRepo(dep.Store, dep.Log))

	return r
}
