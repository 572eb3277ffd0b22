package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"presence-analyzer/app"
	"presence-analyzer/domain/presence"
	"presence-analyzer/ports"
)

//go:embed templates/* static/* help.md
var embeddedFiles embed.FS

// PresenceQueries is the part of the presence service the dashboard reads
type PresenceQueries interface {
	Users(ctx context.Context) ([]app.UserSummary, error)
	UsersWithAvatars(ctx context.Context) ([]presence.User, error)
	MeanTimeWeekday(ctx context.Context, userID int) ([]app.WeekdayValue, error)
	PresenceWeekday(ctx context.Context, userID int) ([]app.WeekdayValue, error)
	PresenceStartEnd(ctx context.Context, userID int) (app.StartEndByWeekday, error)
	StandardDeviation(ctx context.Context, userID int) (app.DeviationByWeekday, error)
}

// Server is the dashboard web server: JSON API, report pages and static files
type Server struct {
	router    *gin.Engine
	service   PresenceQueries
	templates *template.Template
	help      template.HTML
	metrics   *HTTPMetrics
	logger    ports.Logger
}

// NewServer parses the embedded templates and registers all routes.
// metrics may be nil.
func NewServer(service PresenceQueries, metrics *HTTPMetrics, logger ports.Logger) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	help, err := renderHelp()
	if err != nil {
		return nil, fmt.Errorf("failed to render help page: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		service:   service,
		templates: templates,
		help:      help,
		metrics:   metrics,
		logger:    logger,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	return s, nil
}

// setupMiddleware configures Gin middleware and static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
	s.router.Use(RequestLogger(s.logger))
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware())
	}

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/help", s.handleHelp)

	v1 := s.router.Group("/api/v1")
	v1.GET("/users", s.handleUsers)
	v1.GET("/mean_time_weekday/:id", s.handleMeanTimeWeekday)
	v1.GET("/presence_weekday/:id", s.handlePresenceWeekday)
	v1.GET("/presence_start_end/:id", s.handlePresenceStartEnd)
	v1.GET("/standard_deviation/:id", s.handleStandardDeviation)

	v2 := s.router.Group("/api/v2")
	v2.GET("/users", s.handleUsersV2)

	// report pages share the root namespace with the routes above
	s.router.NoRoute(s.handlePage)
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}
