package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"intentserver/internal/config"
	"intentserver/server/handlers"
	"intentserver/server/middleware"
	"intentserver/server/services"
)

// Server HTTP сервер сервиса классификации намерений
type Server struct {
	config    *config.Config
	mlService *services.MLService

	mlHandler        *handlers.MLHandler
	assistantHandler *handlers.AssistantHandler

	httpServer     *http.Server
	httpHandler    http.Handler
	handlerOnce    sync.Once
	handlerInitErr error
}

// NewServer создает сервер поверх конфигурации и сервиса классификации
func NewServer(cfg *config.Config, mlService *services.MLService) *Server {
	return &Server{
		config:    cfg,
		mlService: mlService,
	}
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("HTTP сервер запускается", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", addr, err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь обработки активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("HTTP сервер останавливается")
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP реализует http.Handler для тестов и вспомогательных утилит
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server handler init failed", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}

func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		handler, err := s.buildHTTPHandler()
		if err != nil {
			s.handlerInitErr = err
			return
		}
		s.httpHandler = handler
	})

	if s.handlerInitErr != nil {
		return nil, s.handlerInitErr
	}
	if s.httpHandler == nil {
		return nil, fmt.Errorf("httpHandler is nil")
	}
	return s.httpHandler, nil
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	s.initHandlers()

	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(s.config.RateLimitRPS, s.config.RateBurst))
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())

	handlers.RegisterSwaggerRoutes(router)
	s.registerGinHandlers(router)

	return router, nil
}

func (s *Server) initHandlers() {
	if s.mlHandler == nil {
		s.mlHandler = handlers.NewMLHandler(s.mlService)
	}
	if s.assistantHandler == nil {
		s.assistantHandler = handlers.NewAssistantHandler(s.mlService)
	}
}

// registerGinHandlers регистрирует маршруты API
func (s *Server) registerGinHandlers(router *gin.Engine) {
	// Живость процесса, не зависит от состояния модели
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	if s.mlHandler != nil {
		ml := api.Group("/ml")
		ml.POST("/predict", s.mlHandler.HandlePredictGin)
		ml.POST("/predict/batch", s.mlHandler.HandlePredictBatchGin)
		ml.GET("/info", s.mlHandler.HandleModelInfoGin)
		ml.GET("/intents", s.mlHandler.HandleIntentsGin)
		ml.GET("/health", s.mlHandler.HandleHealthGin)
	}

	if s.assistantHandler != nil {
		assistant := api.Group("/assistant")
		assistant.POST("/analyze", s.assistantHandler.HandleAnalyzeGin)
		assistant.POST("/complete", s.assistantHandler.HandleCompleteGin)
	}
}
