package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/izhanjunaid/mongo-backend/config"
	"github.com/izhanjunaid/mongo-backend/internal/controller"
	"github.com/izhanjunaid/mongo-backend/internal/infrastructure/database/mongodb"
	"github.com/izhanjunaid/mongo-backend/internal/infrastructure/message-queue/kafka"
	"github.com/izhanjunaid/mongo-backend/internal/infrastructure/tracing"
	"github.com/izhanjunaid/mongo-backend/internal/repository"
	"github.com/izhanjunaid/mongo-backend/internal/service"
	"github.com/izhanjunaid/mongo-backend/internal/storage"
	pkgdto "github.com/izhanjunaid/mongo-backend/pkg/dto"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	if config.TracingConfig.CollectorHost != "" {
		tracerProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
		if err != nil {
			log.Error().Err(err).Msg("tracing disabled")
		} else {
			defer tracerProvider.Shutdown(context.Background())
		}
	}

	// The image store is constructed before the connection exists; requests
	// arriving before Bind completes get a store-unavailable error instead
	// of hanging.
	blobStore := storage.CreateGridFSBlobStore()

	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", config.MongoDBConfig.DBHost, config.MongoDBConfig.DBPort), config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}

	defer db.Client().Disconnect(context.Background())

	if err := blobStore.Bind(db); err != nil {
		panic(err)
	}

	kafkaProducer := kafka.CreateKafkaProducer(config)

	e := echo.New()
	g := e.Group("/api/v1")

	IsLoggedIn := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(config.JWTSecret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			errorResponse := map[string]interface{}{
				"status":  "error",
				"message": "Invalid or expired JWT",
				"errors":  nil,
			}
			return c.JSON(http.StatusUnauthorized, errorResponse)
		},
	})

	mongoDBRepo := repository.CreateNewMongoDBRepository(db)
	svc := service.CreateProductService(mongoDBRepo, blobStore, *config, kafkaProducer)
	controller.CreateProductController(g, svc, IsLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, http.StatusOK, "pong", nil)
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
