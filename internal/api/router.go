package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/auth"
	"github.com/calebgil/tandem/internal/handlers"
	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/realtime"
	"github.com/calebgil/tandem/internal/services"
)

// Dependencies carries everything the router needs wired in.
type Dependencies struct {
	DB  *gorm.DB
	JWT *auth.JWTService
	Hub *realtime.Hub

	Users         *services.UserService
	Pairs         *services.PairService
	Devices       *services.DeviceService
	Notifications *services.NotificationService
	Preferences   *services.PreferenceService
	Customization *services.CustomizationService
	Todos         *services.TodoService
	Moods         *services.MoodService
	Favorites     *services.FavoriteService
	Notifier      *services.Notifier

	AllowedOrigins []string
}

// NewRouter builds the Gin engine, wires middleware, and registers all routes.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if deps.Notifier == nil {
		return nil, fmt.Errorf("notifier must be provided")
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.GET("/health", handlers.NewHealthHandler(deps.DB).Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Users, deps.JWT)
	public := r.Group("/api/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(deps.JWT))

	registerProfileRoutes(api, handlers.NewProfileHandler(deps.Users, deps.Notifier))
	registerPairingRoutes(api, handlers.NewPairingHandler(deps.Pairs, deps.Users, deps.Notifier))
	registerDeviceRoutes(api, handlers.NewDeviceHandler(deps.Devices))
	registerNotificationRoutes(api, handlers.NewNotificationHandler(deps.Notifications, deps.Hub))
	registerPreferenceRoutes(api, handlers.NewPreferenceHandler(deps.Preferences))
	registerCustomizationRoutes(api, handlers.NewCustomizationHandler(deps.Customization))
	registerTodoRoutes(api, handlers.NewTodoHandler(deps.Todos, deps.Notifier))
	registerMoodRoutes(api, handlers.NewMoodHandler(deps.Moods, deps.Pairs, deps.Users, deps.Notifier))
	registerFavoriteRoutes(api, handlers.NewFavoriteHandler(deps.Favorites, deps.Notifier))
	registerStickerRoutes(api, handlers.NewStickerHandler(deps.Notifier))

	return r, nil
}
