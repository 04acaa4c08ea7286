package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lestrrat-go/jwx/v3/jwk"

	_ "github.com/adspaceng/ratecard-wallet/docs"
	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/metrics"
	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
	"github.com/adspaceng/ratecard-wallet/internal/server/handlers"
	"github.com/adspaceng/ratecard-wallet/internal/server/middleware"
	"github.com/adspaceng/ratecard-wallet/internal/version"
)

type Server struct {
	config    *config.ServerEnvironment
	logger    *slog.Logger
	router    *chi.Mux
	generator handlers.PassGenerator
	metrics   *metrics.Metrics
	jwkSet    jwk.Set
}

// NewServer creates the server and registers the middleware and routes.
//
// signingKeyPassword is only used to publish the signer public key on /.well-known/jwks.json.
// Passes are signed by the generator, which loads the signing material on every request.
func NewServer(
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
	generator handlers.PassGenerator,
	m *metrics.Metrics,
	signingKeyPassword string,
) *Server {
	server := &Server{
		config:    cfg,
		logger:    logger,
		router:    chi.NewRouter(),
		generator: generator,
		metrics:   m,
	}

	server.initSignerKeys(signingKeyPassword)
	server.setupMiddleware()
	server.registerRoutes()

	return server
}

// initSignerKeys loads the signing identity and publishes its public key.
//
// A missing or unreadable identity is not fatal: the service starts with an empty JWK set
// and pass generation reports the failure on each request.
func (s *Server) initSignerKeys(password string) {
	identity, err := pkpass.LoadSigningIdentity(s.config.SigningKeyPath, password)
	if err != nil {
		s.logger.Warn("signing identity could not be loaded, pass generation will fail until it is fixed",
			slog.String("path", s.config.SigningKeyPath),
			slog.String("error", err.Error()))
		s.jwkSet = jwk.NewSet()
		return
	}

	if err := pkpass.ValidateSignerCertificate(identity.Certificate, s.config.PassTypeIdentifier, time.Now()); err != nil {
		s.logger.Warn("signer certificate is not usable for this pass type",
			slog.String("pass_type_identifier", s.config.PassTypeIdentifier),
			slog.String("error", err.Error()))
	}

	set, err := pkpass.SignerJWKSet(identity.Certificate)
	if err != nil {
		s.logger.Warn("failed to create signer JWK set",
			slog.String("error", err.Error()))
		s.jwkSet = jwk.NewSet()
		return
	}

	s.jwkSet = set
	s.logger.Info("signing identity loaded",
		slog.String("subject", identity.Certificate.Subject.CommonName),
		slog.Time("not_after", identity.Certificate.NotAfter))
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.FatalErrorRecoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxRequestSize))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	s.router.Use(chimiddleware.Timeout(s.config.RequestTimeout))
}

func (s *Server) registerRoutes() {
	v := version.Get()

	generatePassHandler := handlers.NewGeneratePassHandler(s.generator, s.config.ExposeErrorTrace)

	s.router.Post("/generate-pass", generatePassHandler.HandleGeneratePass)

	s.router.Get("/health", handlers.HandleHealth)
	s.router.Get("/version", handlers.HandleVersion(v.Version, v.BuildDate, v.GitCommit))
	s.router.Get("/.well-known/jwks.json", handlers.HandleJWKS(s.jwkSet))
	s.router.Get("/swagger/doc.json", handlers.HandleAPIDocs)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
}

// ServeHTTP lets the server be used directly as an http.Handler (e.g. with httptest)
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
