// Package server serves the survey form and renders recommendations.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/advisor"
	"github.com/spigell/subject-advisor/internal/ai"
	"github.com/spigell/subject-advisor/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	defaultAITimeout  = 20 * time.Second
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Recorder persists submissions.
type Recorder interface {
	Append(ctx context.Context, sub store.Submission) (int64, error)
}

// Config controls the HTTP server.
type Config struct {
	Host      string
	Port      int
	Release   bool
	AITimeout time.Duration
}

// Deps are the collaborators of the handlers. Recorder and Narrator are optional.
type Deps struct {
	Advisor  *advisor.Advisor
	Recorder Recorder
	Narrator ai.Narrator
	Logger   *zap.Logger
}

// Server is the survey web application.
type Server struct {
	cfg      Config
	engine   *gin.Engine
	advisor  *advisor.Advisor
	recorder Recorder
	narrator ai.Narrator
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// New builds the server and its routes.
func New(cfg Config, deps Deps) (*Server, error) {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = defaultAITimeout
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	adv := deps.Advisor
	if adv == nil {
		adv = advisor.New(logger)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		advisor:  adv,
		recorder: deps.Recorder,
		narrator: deps.Narrator,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}

	engine := gin.New()
	engine.Use(requestLogger(logger), gin.Recovery())
	engine.SetHTMLTemplate(tmpl)
	s.engine = engine
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/", s.index)
	s.engine.GET("/survey", s.surveyForm)
	s.engine.POST("/result", s.result)
	s.engine.POST("/api/analyze", s.apiAnalyze)
	s.engine.GET("/healthz", s.healthz)
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
