package users

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to the user profile
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", GetUserProfile)
		user.PUT("/profile", UpdateUserProfile)
	}
}
