package main

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/clothique/ecommerce-backend/internal/config"
	"github.com/clothique/ecommerce-backend/internal/handlers"
	"github.com/clothique/ecommerce-backend/utils"
)

func main() {
	config.LoadEnv()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	db, client, err := connectDB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logrus.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}()

	if config.GetEnv("GIN_MODE", "debug") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.GetEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	mailer := utils.NewSMTPMailer()
	handlers.SetupRoutes(router, db, mailer)

	port := config.GetEnv("PORT", "8080")
	logrus.WithField("port", port).Info("Starting server")
	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}

func connectDB() (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, err
	}

	dbName := config.GetEnv("MONGODB_DATABASE", "clothique")
	logrus.WithField("database", dbName).Info("Connected to MongoDB")
	return client.Database(dbName), client, nil
}
