package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CeKulit/cekulit-backend/config"
	"github.com/CeKulit/cekulit-backend/delivery"
	"github.com/CeKulit/cekulit-backend/middleware"
	"github.com/CeKulit/cekulit-backend/repository"
	"github.com/CeKulit/cekulit-backend/service"
	"github.com/CeKulit/cekulit-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	// JWT secret validation
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET not found in env")
	}
	if len(jwtSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be at least 32 characters. Generate one with: openssl rand -base64 32")
	}

	assetBaseURL := getEnv("ASSET_BASE_URL", "https://storage.googleapis.com/bucket-project21")
	defaultAvatarURL := assetBaseURL + "/edit-profile/avatar.png"

	// Boot Mongo
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer bootCancel()

	mongoClient, err := config.BootMongo(bootCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Avatar blob store
	avatarStore, err := repository.NewAvatarStore(bootCtx, repository.AvatarS3Config{
		Region:        getEnv("S3_REGION", "ap-southeast-1"),
		Bucket:        getEnv("S3_BUCKET", "bucket-project21"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		SecretKey:     os.Getenv("S3_SECRET_KEY"),
		Endpoint:      os.Getenv("S3_ENDPOINT"),
		PublicBaseURL: assetBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init avatar store")
	}

	// Rate limiting is optional: without Redis the auth routes run
	// unthrottled.
	var authLimiter middleware.RateLimiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := config.InitRedisDB(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		authLimiter = middleware.NewRedisRateLimiter(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, auth rate limiting disabled")
	}

	// Init repositories
	accountRepo := repository.NewAccountRepository(config.GetUserCollection(mongoClient))

	// Init services
	mailer := utils.NewSMTPMailerFromEnv()
	authService := service.NewAuthService(accountRepo, avatarStore, mailer, jwtSecret, defaultAvatarURL)

	skincareService, err := service.NewSkincareService(assetBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load skincare catalog")
	}
	productService := service.NewProductService(os.Getenv("PRODUCT_LISTING_URL"))

	// Init Gin
	app := gin.Default()
	config.InitMiddleware(app)

	delivery.NewAuthHandler(app, authService, authLimiter)
	delivery.NewProfileHandler(app, authService)
	delivery.NewSkincareHandler(app, skincareService)
	delivery.NewProductHandler(app, productService)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	srvAddr := ":" + port

	srv := &http.Server{
		Addr:           srvAddr,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Info().Msgf("Server running at http://localhost%s", srvAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from database")
	}

	log.Info().Msg("Server exited gracefully")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
