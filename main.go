package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jecakings/garment-api/config"
	"github.com/jecakings/garment-api/controllers"
	"github.com/jecakings/garment-api/logger"
	"github.com/jecakings/garment-api/middleware"
	"github.com/jecakings/garment-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Pick the storage strategy: MySQL when reachable, embedded store for
	// demo/offline operation.
	if err := config.ConnectDatabase(cfg, zlog); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	services.InitOrderService(zlog)

	// The blob store is optional; without a bucket the API serves reference
	// images from local disk instead.
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			zlog.Fatal("failed to initialize S3", zap.Error(err))
		}
		services.InitImageService(s3Service)
	} else {
		zlog.Warn("AWS_S3_BUCKET not set, image uploads disabled")
	}

	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.GET("/orders", controllers.ListOrders)
			authed.POST("/orders", controllers.CreateOrder)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.PUT("/orders/:id", controllers.UpdateOrder)
			authed.DELETE("/orders/:id", controllers.DeleteOrder)
			authed.GET("/orders/:id/history", controllers.ListOrderHistory)

			authed.GET("/staff", controllers.ListStaff)
			authed.GET("/payments", controllers.ListPayments)
			authed.GET("/appointments", controllers.ListAppointments)

			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PUT("/users/me", controllers.UpdateMyProfile)

			authed.POST("/uploads", controllers.UploadImage)
		}
	}

	zlog.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("store", string(config.GetStoreKind())))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Garment API is running",
	})
}

// databaseStatus reports which storage strategy was selected at startup and
// whether it is reachable
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database not initialized",
			},
		})
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"store":   config.GetStoreKind(),
	})
}
