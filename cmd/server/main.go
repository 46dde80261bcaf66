package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/rs/zerolog"

	"github.com/fiich/fiich-api/internal/config"
	"github.com/fiich/fiich-api/internal/handlers"
	"github.com/fiich/fiich-api/internal/middleware"
	"github.com/fiich/fiich-api/internal/migration"
	"github.com/fiich/fiich-api/internal/notification"
	"github.com/fiich/fiich-api/internal/repository"
	"github.com/fiich/fiich-api/internal/routes"
	"github.com/fiich/fiich-api/internal/storage"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config    *config.Config
	db        *sql.DB
	logger    zerolog.Logger
	mailer    notification.InviteMailer
	blobStore storage.BlobStore
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL)

	// Mailer for invitations.
	mailer, err := notification.NewSMTPInviteMailer(cfg.Email)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure invite mailer")
	}

	// Blob store for company documents.
	blobStore, err := storage.NewS3BlobStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure blob storage")
	}

	// Create the application instance.
	app := &application{
		config:    cfg,
		db:        db,
		logger:    logger,
		mailer:    mailer,
		blobStore: blobStore,
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{cfg.CORSOrigin}),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) http.Handler {
	// Repositories
	companyRepo := repository.NewCompanyRepository(app.db)
	inviteRepo := repository.NewInviteRepository(app.db)
	shareRepo := repository.NewShareRepository(app.db)
	documentRepo := repository.NewDocumentRepository(app.db)

	// Handlers
	authHandler := handlers.NewAuthHandler(app.db, app.config, logger)
	companyHandler := handlers.NewCompanyHandler(companyRepo, documentRepo, logger)
	inviteHandler := handlers.NewInviteHandler(inviteRepo, companyRepo, app.mailer, logger)
	shareHandler := handlers.NewShareHandler(shareRepo, companyRepo, logger)
	documentHandler := handlers.NewDocumentHandler(companyRepo, documentRepo, app.blobStore, logger)

	return routes.NewRouter(authHandler, companyHandler, inviteHandler, shareHandler, documentHandler)
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
