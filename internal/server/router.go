package server

import (
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/mlisboa17/leiabem-backend/internal/handlers"
  "github.com/mlisboa17/leiabem-backend/internal/middleware"
)

type RouterConfig struct {
  AllowOrigins        string
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  UserHandler         *handlers.UserHandler
  BookHandler         *handlers.BookHandler
  CatalogHandler      *handlers.CatalogHandler
  ProgressHandler     *handlers.ProgressHandler
  RatingHandler       *handlers.RatingHandler
  LeaderboardHandler  *handlers.LeaderboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  origins := []string{"http://localhost:3000", "http://localhost:5173"}
  if cfg.AllowOrigins != "" {
    origins = strings.Split(cfg.AllowOrigins, ",")
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // Public
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
    api.GET("/books", cfg.BookHandler.List)
    api.GET("/books/:id", cfg.BookHandler.Get)
  }

  // Protected
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  {
    protected.POST("/refresh", cfg.AuthHandler.Refresh)
    protected.POST("/logout", cfg.AuthHandler.Logout)

    protected.GET("/user", cfg.UserHandler.GetMe)
    protected.GET("/profile", cfg.UserHandler.Profile)

    protected.POST("/books/:id/library", cfg.ProgressHandler.AddToLibrary)
    protected.GET("/library", cfg.ProgressHandler.ListLibrary)
    protected.PATCH("/progress/:id/page", cfg.ProgressHandler.UpdatePage)
    protected.POST("/progress/:id/sessions", cfg.ProgressHandler.RegisterSession)
    protected.PATCH("/progress/:id/status", cfg.ProgressHandler.UpdateStatus)

    protected.PUT("/books/:id/rating", cfg.RatingHandler.Upsert)
    protected.DELETE("/books/:id/rating", cfg.RatingHandler.Delete)

    protected.GET("/leaderboard", cfg.LeaderboardHandler.Standings)
  }

  // Staff catalog administration
  staff := protected.Group("/")
  staff.Use(cfg.AuthMiddleware.RequireStaff())
  {
    staff.POST("/books", cfg.BookHandler.Create)
    staff.PUT("/books/:id", cfg.BookHandler.Update)
    staff.DELETE("/books/:id", cfg.BookHandler.Delete)

    staff.GET("/authors", cfg.CatalogHandler.ListAuthors)
    staff.POST("/authors", cfg.CatalogHandler.CreateAuthor)
    staff.PUT("/authors/:id", cfg.CatalogHandler.UpdateAuthor)
    staff.DELETE("/authors/:id", cfg.CatalogHandler.DeleteAuthor)

    staff.GET("/publishers", cfg.CatalogHandler.ListPublishers)
    staff.POST("/publishers", cfg.CatalogHandler.CreatePublisher)
    staff.PUT("/publishers/:id", cfg.CatalogHandler.UpdatePublisher)
    staff.DELETE("/publishers/:id", cfg.CatalogHandler.DeletePublisher)
  }

  return router
}
