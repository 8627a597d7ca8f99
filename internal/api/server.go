package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healthprice-aggregator/internal/aggregator"
	"github.com/healthprice-aggregator/internal/domain"
)

// Server is the HTTP front end over the aggregator.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	agg        *aggregator.Aggregator
	logger     *logrus.Logger
}

// NewServer wires the routes and middleware onto a gin engine.
func NewServer(cfg *domain.ServerConfig, agg *aggregator.Aggregator, logger *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		loggingMiddleware(logger),
		corsMiddleware(),
	)

	s := &Server{
		router: router,
		agg:    agg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/providers", s.handleProviders)
		api.GET("/providers/:npi", s.handleProviderByNPI)
		api.GET("/prices", s.handlePrices)
		api.GET("/drugs", s.handleDrugs)
		api.GET("/emergency", s.handleEmergency)
		api.GET("/clinical-trials", s.handleClinicalTrials)
		api.GET("/medical-tourism", s.handleMedicalTourism)
		api.GET("/telemedicine", s.handleTelemedicine)
		api.GET("/insurance", s.handleInsurance)
		api.GET("/wearables", s.handleWearableDevices)
		api.POST("/wearables", s.handleWearableSync)
	}
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"cache_entries": s.agg.CacheSize(),
	})
}
