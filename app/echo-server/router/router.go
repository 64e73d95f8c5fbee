package router

import (
	"brewAdvisor/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/profile", handler.GetProfile, authRequired)
	users.PUT("/budget", handler.UpdateBudget, authRequired)
}

func SetupBeverageRoutes(api *echo.Group, handler *rest.BeverageHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	beverages := api.Group("/beverages")

	beverages.GET("", handler.GetAllBeverages, authRequired)
	beverages.GET("/:id", handler.GetBeverageByID, authRequired)
	beverages.POST("", handler.CreateBeverage, authRequired, adminOnly)
	beverages.PUT("/:id", handler.UpdateBeverage, authRequired, adminOnly)
	beverages.DELETE("/:id", handler.DeleteBeverage, authRequired, adminOnly)
}

func SetupPurchaseRoutes(api *echo.Group, handler *rest.PurchaseHandler, authRequired echo.MiddlewareFunc) {
	purchases := api.Group("/purchases", authRequired)

	purchases.POST("", handler.RecordPurchase)
	purchases.GET("/history", handler.GetHistory)
	purchases.GET("/weekly-spending", handler.GetWeeklySpending)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
}
