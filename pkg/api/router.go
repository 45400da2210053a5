package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/handlers"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	store      *store.Store
	dispatcher *command.Dispatcher
	events     *history.Log
	db         *db.DB
}

// NewRouter creates a new API router
func NewRouter(s *store.Store, dispatcher *command.Dispatcher, events *history.Log, database *db.DB) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		store:      s,
		dispatcher: dispatcher,
		events:     events,
		db:         database,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.store)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Devices
		devicesHandler := handlers.NewDevicesHandler(r.store)
		devices := v1.Group("/devices")
		{
			devices.GET("", devicesHandler.ListDevices)
			devices.GET("/:id", devicesHandler.GetDevice)
			devices.POST("/refresh", devicesHandler.RefreshDevices)
		}

		// Device control
		controlHandler := handlers.NewControlHandler(r.store)
		v1.POST("/lights/:id/toggle", controlHandler.ToggleLight)
		v1.POST("/thermostats/:id/temperature", controlHandler.SetThermostat)
		v1.POST("/locks/:id/toggle", controlHandler.ToggleLock)

		// Natural-language commands
		commandHandler := handlers.NewCommandHandler(r.dispatcher)
		commands := v1.Group("/commands")
		{
			commands.POST("", commandHandler.Dispatch)
			commands.GET("/recent", commandHandler.Recent)
		}

		// Device history
		eventsHandler := handlers.NewEventsHandler(r.events, r.store)
		events := v1.Group("/events")
		{
			events.GET("", eventsHandler.ListEvents)
			events.GET("/stream", eventsHandler.Stream)
		}

		// Settings
		settingsHandler := handlers.NewSettingsHandler(r.db)
		v1.GET("/settings", settingsHandler.GetSettings)
		v1.PUT("/settings", settingsHandler.UpdateSettings)
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
