package main

import (
	"os"

	"github.com/Amdaxx/podcast/application/services"
	"github.com/Amdaxx/podcast/config"
	"github.com/Amdaxx/podcast/infrastructure/adapters"
	"github.com/Amdaxx/podcast/infrastructure/gin_interface/controllers"
	"github.com/Amdaxx/podcast/middleware"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on the environment")
	}

	ttsConfig, err := config.GetTTSConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get tts config")
	}

	dalleConfig, err := config.GetDaLLeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dalle config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	postgresConfig, err := config.GetPostgresConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get postgres config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		log.Error().Interface("panic", p).Msg("Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	db, err := sqlx.Connect("postgres", postgresConfig.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	audioGenerator := adapters.NewTTSAudioGenerator(contentFetcher, ttsConfig, zeroLogger)
	imageGenerator := adapters.NewDalleImageGenerator(contentFetcher, dalleConfig, zeroLogger)

	mediaStore := adapters.NewS3MediaStore(s3Client, s3Config, zeroLogger)
	draftCache := adapters.NewDynamoDraftCache(zeroLogger, dynamoClient, dynamoConfig)
	podcastRepository := adapters.NewPostgresPodcastRepository(db, zeroLogger)

	draftWorkflow := services.NewDraftWorkflow(zeroLogger, workerPool, audioGenerator, imageGenerator,
		mediaStore, podcastRepository, draftCache)
	podcastQueries := services.NewPodcastQueries(zeroLogger, podcastRepository)

	draftController := controllers.NewDraftController(zeroLogger, workerPool, draftWorkflow)
	podcastController := controllers.NewPodcastController(zeroLogger, podcastQueries)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	rateLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	router.Use(authHandler.AuthMiddleware())
	router.Use(rateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	draftController.RegisterRoutes(router)
	podcastController.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
