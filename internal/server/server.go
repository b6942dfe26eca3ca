package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/config"
	"github.com/finansgold/backend/internal/database"
	"github.com/finansgold/backend/internal/handlers"
	"github.com/finansgold/backend/internal/logger"
	"github.com/finansgold/backend/internal/middleware"
	"github.com/finansgold/backend/internal/quote"
	"github.com/finansgold/backend/internal/service"
	"github.com/finansgold/backend/internal/session"
)

type Server struct {
	cfg      *config.Config
	db       database.Service
	sessions *session.Manager
	handler  *handlers.Handler
	log      zerolog.Logger
}

// NewServer wires the services and handlers on top of the given collaborators
func NewServer(cfg *config.Config, db database.Service, sessions *session.Manager, quotes *quote.Gateway, log zerolog.Logger) *Server {
	gormDB := db.GetDB()

	svc := handlers.Services{
		Auth:    service.NewAuthService(gormDB, sessions, log),
		Content: service.NewContentService(gormDB, log),
		Ratings: service.NewRatingService(gormDB, log),
		Profile: service.NewProfileService(gormDB, sessions, log),
		Market:  service.NewMarketService(quotes, log),
	}
	cookie := handlers.CookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: sessions.Lifetime(),
		Secure: cfg.IsProduction(),
	}

	return &Server{
		cfg:      cfg,
		db:       db,
		sessions: sessions,
		handler:  handlers.NewHandler(svc, cookie, log),
		log:      log.With().Str("component", "server").Logger(),
	}
}

// HTTPServer wraps the router in an http.Server listening on the configured port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := s.cfg.Server.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// credentialed requests need the origin echoed back rather than "*"
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()

	r.Use(logger.Gin(s.log))
	r.Use(middleware.Recovery(s.log))
	r.Use(cors.New(s.corsConfig()))
	r.Use(middleware.Preflight())
	r.Use(middleware.LoadSession(s.sessions, s.cfg.Session.CookieName, s.log))

	h := s.handler

	api := r.Group("/api")
	{
		api.GET("/health", s.health)

		// Market routes (public)
		api.GET("/economic-calendar", h.Market.GetEconomicCalendar)
		api.GET("/market-data", h.Market.GetMarketData)
		api.GET("/prices", h.Market.GetPrices)
		api.GET("/candlestick/:symbol", h.Market.GetCandles)

		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
		api.GET("/check-session", h.Auth.CheckSession)
		api.POST("/logout", h.Auth.Logout)

		// Public reads
		api.GET("/feed", h.Post.GetFeed)
		api.GET("/post-comments/:id", h.Comment.GetPostComments)
		api.GET("/asset-comments/:symbol", h.Comment.GetAssetComments)
		api.GET("/profile/:username", h.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/post", h.Post.CreatePost)
			protected.PUT("/post/:id", h.Post.UpdatePost)
			protected.DELETE("/post/:id", h.Post.DeletePost)
			protected.POST("/rate-post", h.Post.RatePost)

			protected.POST("/post-comment", h.Comment.CreatePostComment)
			protected.DELETE("/post-comment/:id", h.Comment.DeletePostComment)
			protected.POST("/rate-post-comment", h.Comment.RatePostComment)

			protected.POST("/asset-comment", h.Comment.CreateAssetComment)
			protected.DELETE("/asset-comment/:id", h.Comment.DeleteAssetComment)
			protected.POST("/rate-asset-comment", h.Comment.RateAssetComment)

			protected.POST("/profile/update", h.User.UpdateUserProfile)
		}
	}

	r.NoRoute(s.spa)

	return r
}

func (s *Server) health(c *gin.Context) {
	state := "disconnected"
	if s.db.Health(c.Request.Context())["status"] == "up" {
		state = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  state,
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000000"),
	})
}

// spa serves files from the web root and falls back to the application shell
func (s *Server) spa(c *gin.Context) {
	root := s.cfg.Server.WebRoot
	name := filepath.Join(root, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))

	if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
		c.File(name)
		return
	}

	index := filepath.Join(root, "index.html")
	if info, err := os.Stat(index); err == nil && info.Mode().IsRegular() {
		c.File(index)
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
}
