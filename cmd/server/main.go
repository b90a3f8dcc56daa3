// Command server runs the ticket code-suggestion backend: a JSON API over
// the flat-file user and ticket stores, the prompt/response cache, and the
// remote code-generation service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/backend"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/config"
	httpapi "github.com/VishnaviKothuri/DTDC-frontend/internal/http"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/observability"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/store"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/sysutil"
)

// version is stamped by the linker; APP_VERSION overrides it at runtime.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	version = sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting ticket suggestion backend")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// A corrupt user table is fatal at startup: serving logins against an
	// empty table would silently lock everyone out.
	users := store.NewUserStore(cfg.UsersPath)
	if _, err := users.Load(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.UsersPath).Msg("user store unreadable")
	}

	// A corrupt ticket table is degraded mode, not fatal.
	tickets := store.NewTicketStore(cfg.StoriesPath)
	if _, err := tickets.Load(); err != nil {
		log.Warn().Err(err).Str("path", cfg.StoriesPath).Msg("ticket store unreadable, searches will miss")
	}

	deps := httpapi.Deps{
		Users:    users,
		Tickets:  tickets,
		Cache:    store.NewPromptCache(cfg.CachePath),
		Backend:  backend.NewClient(cfg.Backend),
		Sessions: session.NewManager(cfg.SessionTTL),
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	log.Info().Msg("server exited")
}
