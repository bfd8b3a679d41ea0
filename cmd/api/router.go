package main

import (
	"net/http"

	"biteclub-backend/internal/shared"
	"biteclub-backend/internal/shared/middleware"
	"biteclub-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		// Students
		students := v1.Group("/students")
		{
			students.POST("/signup", c.StudentHandler.Signup)
			students.POST("/login", c.StudentHandler.Login)
			students.POST("/refresh", c.StudentHandler.Refresh)

			students.GET("/me", auth, middleware.RequireRole(shared.RoleStudent), c.StudentHandler.GetProfile)
			students.GET("", auth, middleware.RequireRole(shared.RoleAdmin), c.StudentHandler.List)
			students.DELETE("/:id", auth, c.StudentHandler.Deactivate)
		}

		// Restaurants
		restaurants := v1.Group("/restaurants")
		{
			restaurants.POST("/signup", c.RestaurantHandler.Signup)
			restaurants.POST("/login", c.RestaurantHandler.Login)

			restaurants.GET("", auth, c.RestaurantHandler.List)
			restaurants.GET("/:id", auth, c.RestaurantHandler.GetByID)
			restaurants.GET("/:id/menu", auth, c.MenuHandler.GetMenu)

			owner := restaurants.Group("/me", auth, middleware.RequireRole(shared.RoleRestaurant))
			{
				owner.GET("", c.RestaurantHandler.GetProfile)
				owner.PATCH("", c.RestaurantHandler.UpdateProfile)
				owner.PUT("/promotion", c.RestaurantHandler.UpdatePromotion)
				owner.PUT("/call-dispatch", c.RestaurantHandler.UpdateCallDispatch)
				owner.GET("/orders", c.OrderHandler.ListIncoming)
			}

			restaurants.DELETE("/:id", auth, c.RestaurantHandler.Deactivate)
		}

		// Menu management (restaurant side)
		menu := v1.Group("/menu", auth, middleware.RequireRole(shared.RoleRestaurant))
		{
			menu.POST("/items", c.MenuHandler.CreateItem)
			menu.PUT("/items/:id", c.MenuHandler.UpdateItem)
			menu.PATCH("/items/:id/availability", c.MenuHandler.SetAvailability)
			menu.DELETE("/items/:id", c.MenuHandler.DeleteItem)
		}

		// Credits
		credits := v1.Group("/credits", auth)
		{
			credits.POST("/topup", middleware.RequireRole(shared.RoleStudent), c.CreditHandler.Topup)
			credits.POST("/adjust", middleware.RequireRole(shared.RoleAdmin), c.CreditHandler.AdminAdjust)
			credits.GET("/balance", middleware.RequireRole(shared.RoleStudent), c.CreditHandler.GetBalance)
			credits.GET("/transactions", middleware.RequireRole(shared.RoleStudent), c.CreditHandler.History)
		}

		// Promotions
		v1.POST("/promotions/quote", auth, middleware.RequireRole(shared.RoleStudent), c.PromotionHandler.Quote)

		// Orders
		orders := v1.Group("/orders", auth)
		{
			orders.POST("/checkout", middleware.RequireRole(shared.RoleStudent), c.OrderHandler.Checkout)
			orders.GET("", middleware.RequireRole(shared.RoleStudent), c.OrderHandler.ListMine)
			orders.GET("/:id", c.OrderHandler.GetOrder)
			orders.GET("/:id/history", c.OrderHandler.GetStatusHistory)

			orders.POST("/:id/accept", middleware.RequireRole(shared.RoleRestaurant), c.OrderHandler.Accept)
			orders.POST("/:id/reject", middleware.RequireRole(shared.RoleRestaurant), c.OrderHandler.Reject)
			orders.POST("/:id/advance", middleware.RequireRole(shared.RoleRestaurant), c.OrderHandler.Advance)
			orders.POST("/:id/closeout", middleware.RequireRole(shared.RoleRestaurant), c.OrderHandler.Closeout)
			orders.POST("/:id/cancel", middleware.RequireRole(shared.RoleStudent), c.OrderHandler.Cancel)
		}
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":      "ok",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"database":    dbStatus,
			"cache":       cacheStatus,
		})
	}
}
