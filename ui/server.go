package ui

import (
	"github.com/gin-gonic/gin"

	"inferkit/app"
	"inferkit/internal"
	"inferkit/internal/config"
	"inferkit/ports"
)

// Server is the web front for the inference engine: JSON endpoints for each
// calculator routine plus rendered reports over recorded analyses.
type Server struct {
	router   *gin.Engine
	analysis *app.AnalysisService
	batch    *app.BatchService
	reader   ports.LedgerReaderPort
	defaults config.DefaultsConfig
	logger   *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, analysis *app.AnalysisService, batch *app.BatchService, reader ports.LedgerReaderPort) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	s := &Server{
		router:   gin.Default(),
		analysis: analysis,
		batch:    batch,
		reader:   reader,
		defaults: cfg.Defaults,
		logger:   internal.NewDefaultLogger(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/interval", s.handleInterval)
		api.POST("/hypothesis", s.handleHypothesis)
		api.POST("/samplesize", s.handleSampleSize)
		api.POST("/regression", s.handleRegression)
		api.POST("/predict", s.handlePredict)
		api.POST("/describe", s.handleDescribe)
		api.POST("/sweep", s.handleSweep)
		api.GET("/report/:id", s.handleReport)
	}
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the configured port
func (s *Server) Run(port string) error {
	s.logger.Info("[Server] Listening on :%s", port)
	return s.router.Run(":" + port)
}
