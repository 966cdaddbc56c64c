// Package server provides the HTTP API for normalizing resumes and rendering
// previews and documents.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/server/middleware"
	"github.com/jonathan/resume-formatter/internal/server/ratelimit"
	"github.com/jonathan/resume-formatter/internal/stream"
	"github.com/jonathan/resume-formatter/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MaxBodyBytes bounds every request body
const MaxBodyBytes = 10 << 20

// PDFRenderer prints a record to PDF
type PDFRenderer interface {
	RenderPDF(ctx context.Context, record types.ResumeRecord) ([]byte, error)
}

// Extractor uploads a resume file to the extraction service and returns its terminal event
type Extractor interface {
	Process(ctx context.Context, fileName string, content []byte) (*stream.Event, error)
}

// Options wires the server's collaborators. Nil collaborators disable the
// endpoints that need them.
type Options struct {
	Port      int
	Store     ResumeStore
	PDF       PDFRenderer
	Extractor Extractor
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       ResumeStore
	generator   *export.Generator
	pdf         PDFRenderer
	extractor   Extractor
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	validate    *validator.Validate
	documents   singleflight.Group
	closers     []func()
}

// New creates a server from already-built collaborators
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:       opts.Store,
		generator:   export.NewGenerator(logger),
		pdf:         opts.PDF,
		extractor:   opts.Extractor,
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),
		logger:      logger,
		validate:    validator.New(),
	}
	if opts.JWT != nil {
		s.jwtService = NewJWTService(opts.JWT)
	}

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(s.routes())))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // extraction uploads can take minutes
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// FromConfig connects the configured collaborators and builds a server.
// The database, PDF printing, extraction proxy and auth are each enabled
// only when their settings are present.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	opts := Options{
		Port:      cfg.Port,
		PDF:       export.NewPDFRenderer(cfg.ChromePath, logger),
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logger,
	}

	var closers []func()
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		opts.Store = database
		closers = append(closers, database.Close)
	}

	if cfg.ExtractionURL != "" {
		opts.Extractor = stream.NewClient(cfg.ExtractionURL, logger)
	}

	if cfg.AuthEnabled() {
		jwtConfig, err := cfg.JWT()
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		opts.JWT = jwtConfig
	}

	s := New(opts)
	s.closers = closers
	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// JWT returns the token service, or nil when auth is disabled
func (s *Server) JWT() *JWTService {
	return s.jwtService
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Stateless rendering
	mux.HandleFunc("POST /api/normalize", s.handleNormalize)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("POST /api/pdf", s.handlePDF)
	mux.HandleFunc("POST /api/document", s.handleDocument)
	mux.HandleFunc("POST /api/stream-normalize", s.handleStreamNormalize)
	mux.HandleFunc("POST /api/process", s.handleProcess)

	// Stored resumes
	mux.Handle("POST /api/resumes", s.protected(s.handleCreateResume))
	mux.Handle("GET /api/resumes", s.protected(s.handleListResumes))
	mux.Handle("GET /api/resumes/{id}", s.protected(s.handleGetResume))
	mux.Handle("PUT /api/resumes/{id}", s.protected(s.handleUpdateResume))
	mux.Handle("DELETE /api/resumes/{id}", s.protected(s.handleDeleteResume))
	mux.Handle("GET /api/resumes/{id}/document", s.protected(s.handleResumeDocument))
	mux.Handle("GET /api/resumes/{id}/preview", s.protected(s.handleResumePreview))

	return mux
}

// protected applies bearer auth when a JWT secret is configured
func (s *Server) protected(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return h
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// Start listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and any connections opened by FromConfig
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Flush keeps event streams working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Duration("retry_after", info.RetryAfter),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and a client-safe message
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	s.errorResponse(w, status, publicMessage(err))
}
