package server

import (
	"net/http"

	"moderation-backend/internal/config"
	"moderation-backend/internal/handler"
	"moderation-backend/internal/middleware"
	"moderation-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router            *gin.Engine
	cfg               *config.Config
	moderationService service.ModerationService
	log               *logrus.Logger
	logger            *zap.Logger
}

func NewServer(cfg *config.Config, moderationService service.ModerationService, log *logrus.Logger, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:            router,
		cfg:               cfg,
		moderationService: moderationService,
		log:               log,
		logger:            logger,
	}

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	moderationHandler := handler.NewModerationHandler(s.moderationService, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Moderation routes
	moderationGroup := s.router.Group("/api/moderation")
	if s.cfg.Auth.Enabled {
		moderationGroup.Use(middleware.AuthMiddleware([]byte(s.cfg.Auth.JWTSecret), s.logger))
	}
	{
		moderationGroup.POST("/check", moderationHandler.CheckContent)
		moderationGroup.GET("/history", moderationHandler.GetHistory)
		moderationGroup.GET("/stats", moderationHandler.GetStats)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
