package main

import (
	"log"

	"api/config"
	"api/database"
	"api/middleware"
	v1 "api/routes/v1"

	_ "api/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title School Events API
// @version 1.0
// @description API for school event registration, roster management and solution submission
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.LoadEnv()
	database.InitDB()
	config.InitRedis()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Feed the runtime gauges in the background
	go middleware.UpdateSystemMetrics()

	v1.Register(r)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := r.Run(":" + config.APIPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
