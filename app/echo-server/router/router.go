package router

import (
	"skillCompare/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Me, authRequired)
}

func SetupCourseRoutes(api *echo.Group, handler *rest.CourseHandler, optionalAuth, searchLimiter echo.MiddlewareFunc) {
	courses := api.Group("/courses")

	courses.GET("", handler.Browse)
	courses.GET("/search", handler.Search, searchLimiter)
	courses.GET("/featured", handler.Featured)
	courses.POST("/by-ids", handler.ByIDs)
	courses.GET("/:slug", handler.GetBySlug, optionalAuth)
}

func SetupCompareRoutes(api *echo.Group, handler *rest.CompareHandler, visitor, optionalAuth echo.MiddlewareFunc) {
	compare := api.Group("/compare", visitor)

	compare.GET("", handler.GetState)
	compare.DELETE("", handler.Clear)
	compare.POST("/courses", handler.AddCourse)
	compare.DELETE("/courses/:id", handler.RemoveCourse)
	compare.PUT("/visibility", handler.SetVisibility)
	compare.GET("/matrix", handler.Matrix, optionalAuth)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/featured", handler.FeaturedCategories)
	categories.GET("/:id", handler.GetCategoryByID)
}

func SetupPlatformRoutes(api *echo.Group, handler *rest.PlatformHandler) {
	platforms := api.Group("/platforms")

	platforms.GET("", handler.GetAllPlatforms)
	platforms.GET("/:id", handler.GetPlatformByID)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews")

	reviews.GET("", handler.ListByCourse)
	reviews.POST("", handler.Submit, authRequired)
}

func SetupWishlistRoutes(api *echo.Group, handler *rest.WishlistHandler, authRequired echo.MiddlewareFunc) {
	wishlist := api.Group("/wishlist", authRequired)

	wishlist.GET("", handler.List)
	wishlist.GET("/:id", handler.Status)
	wishlist.POST("/:id/toggle", handler.Toggle)
}

func SetupDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/dashboard", handler.User, authRequired)
}

// AdminHandlers groups the handlers mounted under /admin.
type AdminHandlers struct {
	Course    *rest.CourseHandler
	Category  *rest.CategoryHandler
	Platform  *rest.PlatformHandler
	Review    *rest.ReviewHandler
	Dashboard *rest.DashboardHandler
}

func SetupAdminRoutes(api *echo.Group, h AdminHandlers, authRequired, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/overview", h.Dashboard.Admin)

	admin.GET("/courses", h.Course.ListAdmin)
	admin.GET("/courses/:id", h.Course.GetByID)
	admin.POST("/courses", h.Course.CreateCourse)
	admin.PUT("/courses/:id", h.Course.UpdateCourse)
	admin.DELETE("/courses/:id", h.Course.DeleteCourse)

	admin.POST("/categories", h.Category.CreateCategory)
	admin.PUT("/categories/:id", h.Category.UpdateCategory)
	admin.DELETE("/categories/:id", h.Category.DeleteCategory)

	admin.POST("/platforms", h.Platform.CreatePlatform)
	admin.PUT("/platforms/:id", h.Platform.UpdatePlatform)
	admin.DELETE("/platforms/:id", h.Platform.DeletePlatform)

	admin.GET("/reviews", h.Review.ListAll)
	admin.DELETE("/reviews/:id", h.Review.Delete)
}
