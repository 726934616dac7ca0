package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunethdesoyza/lyst-backend/internal/auth"
	"github.com/sunethdesoyza/lyst-backend/internal/config"
	"github.com/sunethdesoyza/lyst-backend/internal/handlers"
	"github.com/sunethdesoyza/lyst-backend/internal/metrics"
	"github.com/sunethdesoyza/lyst-backend/internal/service"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
	"github.com/sunethdesoyza/lyst-backend/internal/websocket"
)

func SetupRouter(st store.Store, cfg *config.Config, hub *websocket.Hub) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(metrics.Middleware())

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT)

	// Initialize services
	listService := service.NewListService(st)
	forgottenService := service.NewForgottenService(st)
	categoryService := service.NewCategoryService(st)
	sharingService := service.NewSharingService(st, cfg.Sharing.FrontendURL, cfg.Sharing.InvitationTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, jwtManager)
	userHandler := handlers.NewUserHandler(st)
	listHandler := handlers.NewListHandler(listService, hub)
	forgottenHandler := handlers.NewForgottenHandler(forgottenService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	sharingHandler := handlers.NewSharingHandler(sharingService, hub)
	wsHandler := handlers.NewWebSocketHandler(hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Invitation preview is public so recipients can see what they
		// were invited to before signing in.
		api.GET("/sharing/invitation/:token", sharingHandler.GetInvitation)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(jwtManager))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.GetCurrentUser)
		}

		// List routes
		lists := protected.Group("/lists")
		{
			lists.GET("", listHandler.GetLists)
			lists.POST("", listHandler.CreateList)

			// Forgotten item recovery
			lists.GET("/forgotten-items", forgottenHandler.GetForgottenItems)
			lists.POST("/forgotten-items/dismiss", forgottenHandler.DismissForgottenItems)
			lists.POST("/forgotten-items/reactivate", forgottenHandler.ReactivateItems)
			lists.POST("/forgotten-items/move-to-new", forgottenHandler.MoveToNewList)

			lists.GET("/:id", listHandler.GetList)
			lists.PUT("/:id", listHandler.UpdateList)
			lists.DELETE("/:id", listHandler.DeleteList)

			// Item routes
			lists.POST("/:id/items", listHandler.AddItem)
			lists.PUT("/:id/items/:itemId", listHandler.UpdateItem)
			lists.DELETE("/:id/items/:itemId", listHandler.DeleteItem)
		}

		// Category routes
		categories := protected.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.POST("/defaults", categoryHandler.SeedDefaultCategories)
			categories.POST("/update-counts", categoryHandler.UpdateListCounts)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Sharing routes
		sharing := protected.Group("/sharing")
		{
			sharing.POST("/share", sharingHandler.ShareList)
			sharing.POST("/accept", sharingHandler.AcceptShare)
			sharing.GET("/received", sharingHandler.GetSharedLists)
			sharing.GET("/sent", sharingHandler.GetMySharedLists)
			sharing.DELETE("/:shareId", sharingHandler.RevokeShare)
		}

		protected.GET("/ws", wsHandler.HandleWebSocket)
	}

	return router
}
