package main

import (
  "fmt"
  "time"
  "github.com/joho/godotenv"
  "github.com/mlisboa17/leiabem-backend/internal/cache"
  "github.com/mlisboa17/leiabem-backend/internal/db"
  "github.com/mlisboa17/leiabem-backend/internal/handlers"
  "github.com/mlisboa17/leiabem-backend/internal/logger"
  "github.com/mlisboa17/leiabem-backend/internal/middleware"
  "github.com/mlisboa17/leiabem-backend/internal/repos"
  "github.com/mlisboa17/leiabem-backend/internal/server"
  "github.com/mlisboa17/leiabem-backend/internal/services"
  "github.com/mlisboa17/leiabem-backend/internal/utils"
)

func main() {
  if err := godotenv.Load(); err != nil {
    fmt.Println("No .env file found, relying on environment")
  }

  logMode := utils.GetEnv("LOG_MODE", "development", nil)
  log, err := logger.New(logMode)
  if err != nil {
    panic(fmt.Sprintf("Failed to initialize logger: %v", err))
  }
  defer log.Sync()

  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
  if jwtSecretKey == "" {
    log.Fatal("JWT_SECRET_KEY is required")
  }
  accessTTL := time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second
  refreshTTL := time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second
  port := utils.GetEnv("PORT", "8080", log)
  allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

  pg, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Failed to initialize postgres", "error", err)
  }
  if err := pg.AutoMigrateAll(); err != nil {
    log.Fatal("Failed to migrate postgres tables", "error", err)
  }
  gormDB := pg.DB()

  redisService, err := cache.NewRedisService(log)
  if err != nil {
    log.Warn("Redis unavailable, leaderboard caching disabled", "error", err)
    redisService = nil
  }

  userRepo := repos.NewUserRepo(gormDB, log)
  userTokenRepo := repos.NewUserTokenRepo(gormDB, log)
  authorRepo := repos.NewAuthorRepo(gormDB, log)
  publisherRepo := repos.NewPublisherRepo(gormDB, log)
  bookRepo := repos.NewBookRepo(gormDB, log)
  progressRepo := repos.NewProgressRepo(gormDB, log)
  ratingRepo := repos.NewRatingRepo(gormDB, log)
  eventRepo := repos.NewReadingEventRepo(gormDB, log)

  leaderboardService := services.NewLeaderboardService(gormDB, log, progressRepo, userRepo, redisService)
  progressService := services.NewProgressService(gormDB, log, progressRepo, bookRepo, eventRepo, leaderboardService)
  ratingService := services.NewRatingService(gormDB, log, ratingRepo, bookRepo, progressRepo, eventRepo, leaderboardService)
  celebrationService := services.NewCelebrationService(gormDB, log, progressRepo, eventRepo, leaderboardService)
  authService := services.NewAuthService(gormDB, log, userRepo, userTokenRepo, jwtSecretKey, accessTTL, refreshTTL)
  userService := services.NewUserService(gormDB, log, userRepo, progressRepo, ratingRepo)
  catalogService := services.NewCatalogService(gormDB, log, bookRepo, authorRepo, publisherRepo)

  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  bookHandler := handlers.NewBookHandler(catalogService, ratingService)
  catalogHandler := handlers.NewCatalogHandler(catalogService)
  progressHandler := handlers.NewProgressHandler(progressService, celebrationService)
  ratingHandler := handlers.NewRatingHandler(ratingService)
  leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  router := server.NewRouter(server.RouterConfig{
    AllowOrigins:       allowOrigins,
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    UserHandler:        userHandler,
    BookHandler:        bookHandler,
    CatalogHandler:     catalogHandler,
    ProgressHandler:    progressHandler,
    RatingHandler:      ratingHandler,
    LeaderboardHandler: leaderboardHandler,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
