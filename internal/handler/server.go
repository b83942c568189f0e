package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"asetgraph/internal/gql"
	"asetgraph/internal/hub"
	"asetgraph/internal/metrics"
	"asetgraph/internal/service"
)

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port        int
	Debug       bool
	CORSOrigins []string
}

// DefaultServerConfig returns the settings used when none are given
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{Port: 4000}
}

// Validate rejects ports outside the TCP range
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Server exposes the GraphQL endpoint, the event stream and operational routes
type Server struct {
	server  *http.Server
	router  *gin.Engine
	schema  *graphql.Schema
	ds      *service.DataSources
	archive *service.ArchiveService
	hub     *hub.Hub
	config  *ServerConfig
	logger  *zap.SugaredLogger
}

// NewServer builds the router. DataSources are created once by the caller and
// attached to every request context.
func NewServer(ds *service.DataSources, events *hub.Hub, config *ServerConfig, logger *zap.SugaredLogger) (*Server, error) {
	if ds == nil {
		return nil, errors.New("datasources are required")
	}
	if config == nil {
		config = DefaultServerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	schema, err := gql.NewSchema()
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	s := &Server{
		schema:  schema,
		ds:      ds,
		hub:     events,
		archive: service.NewArchiveService(ds),
		config:  config,
		logger:  logger,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(s.recoveryMiddleware())
	router.Use(s.loggingMiddleware())
	if len(s.config.CORSOrigins) > 0 {
		router.Use(s.corsMiddleware())
	}

	api := router.Group("/", s.dataSourcesMiddleware())
	api.POST("/graphql", s.graphqlHandler)
	api.GET("/graphql", s.graphqlHandler)

	api.GET("/api/export/:format", s.exportHandler)
	api.POST("/api/import/:format", s.importHandler)

	if s.hub != nil {
		router.GET("/events", gin.WrapH(s.hub))
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", s.healthHandler)

	return router
}

// Start listens until Stop is called
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.config.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: /events streams indefinitely
		IdleTimeout: 60 * time.Second,
	}

	s.logger.Infow("Starting GraphQL server",
		"port", s.config.Port,
		"debug", s.config.Debug,
		"cors_origins", s.config.CORSOrigins,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Errorw("GraphQL server failed", "error", err)
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Stopping GraphQL server")
	return s.server.Shutdown(ctx)
}

// ============================================================================
// Handlers
// ============================================================================

type graphqlRequest struct {
	Query         string         `json:"query" form:"query"`
	OperationName string         `json:"operationName" form:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func (s *Server) graphqlHandler(c *gin.Context) {
	var req graphqlRequest
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if vars := c.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				metrics.RecordGraphQLRequest(metrics.OutcomeError)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variables", "details": err.Error()})
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordGraphQLRequest(metrics.OutcomeError)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if req.Query == "" {
		metrics.RecordGraphQLRequest(metrics.OutcomeError)
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	resp := s.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		metrics.RecordGraphQLRequest(metrics.OutcomeFailure)
		s.logger.Debugw("GraphQL request returned errors", "operation", req.OperationName, "errors", resp.Errors)
	} else {
		metrics.RecordGraphQLRequest(metrics.OutcomeSuccess)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthHandler(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if s.hub != nil {
		status["sse_clients"] = s.hub.ClientCount()
	}
	c.JSON(http.StatusOK, status)
}

// ============================================================================
// Middleware
// ============================================================================

func (s *Server) dataSourcesMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithDataSources(c.Request.Context(), s.ds))
		c.Next()
	}
}

func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		s.logger.Errorw("Panic while handling request", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Warnw("Request failed", fields...)
		} else if s.config.Debug {
			s.logger.Infow("Request", fields...)
		}
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, allowed := range s.config.CORSOrigins {
			if allowed == "*" || allowed == origin {
				c.Header("Access-Control-Allow-Origin", allowed)
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
				break
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
