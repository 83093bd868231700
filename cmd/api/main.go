package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/shriajj/roster-backend-go/internal/config"
	"github.com/shriajj/roster-backend-go/internal/domain/directory"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	appHTTP "github.com/shriajj/roster-backend-go/internal/handler/http"
	"github.com/shriajj/roster-backend-go/internal/pkg/cache"
	"github.com/shriajj/roster-backend-go/internal/pkg/database"
	"github.com/shriajj/roster-backend-go/internal/pkg/jwt"
	"github.com/shriajj/roster-backend-go/internal/pkg/sse"
	"github.com/shriajj/roster-backend-go/internal/repository/postgresql"
	authService "github.com/shriajj/roster-backend-go/internal/service/auth"
	directoryService "github.com/shriajj/roster-backend-go/internal/service/directory"
	exportService "github.com/shriajj/roster-backend-go/internal/service/export"
	rosterService "github.com/shriajj/roster-backend-go/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "roster-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	fileCache, err := cache.NewFileCache(cfg.App.CacheFile, logger)
	if err != nil {
		logger.Error("failed to open local cache", "path", cfg.App.CacheFile, "error", err)
		return
	}

	// A missing database is not fatal: the service runs on the local cache
	// until the remote store comes back.
	var db *database.DB
	if db, err = database.NewPostgreSQLDB(cfg.DatabaseURL()); err != nil {
		logger.Warn("database unavailable, running on local cache only", "error", err)
		db = nil
	}

	broadcaster := rosterService.NewBroadcaster()

	var rosterRepo roster.Repository
	var directoryRepo directory.Repository
	var listener *database.ChangeListener
	if db != nil {
		rosterRepo = postgresql.NewRosterRepository(db)
		directoryRepo = postgresql.NewDirectoryRepository(db)
		listener = database.NewChangeListener(db, []string{
			rosterService.ChannelRosterChanges,
			rosterService.ChannelEmployeeChanges,
		}, logger)
	}

	dirService := directoryService.NewDirectoryService(directoryRepo, fileCache, broadcaster, cfg.Roster.LocationID, logger)
	dirService.LoadSets(context.Background())

	store := rosterService.NewRosterStore(rosterRepo, dirService, fileCache, listener, broadcaster, cfg.Roster.LocationID, logger)
	if db != nil {
		if err := store.Initialize(context.Background()); err != nil {
			logger.Warn("remote store offline, running on local cache only", "error", err)
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authenticator := authService.NewAuthenticator(cfg.Roster.Users, jwtService, logger)
	exporter := exportService.NewService(store, dirService)

	// Every change, local or remote-origin, fans out to connected clients.
	hub := sse.NewHub()
	store.OnChange(func(change roster.Change) {
		hub.Publish(sse.Event{Event: string(change.Kind), Data: change})
	})

	handlers := appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(jwtService, authenticator),
		Roster:    appHTTP.NewRosterHandler(store),
		Directory: appHTTP.NewDirectoryHandler(dirService),
		Export:    appHTTP.NewExportHandler(exporter),
		Meta:      appHTTP.NewMetaHandler(cfg, store),
		Events:    appHTTP.NewEventsHandler(hub, jwtService),
	}
	router := appHTTP.NewRouter(logger, jwtService, handlers, cfg.App.StaticDir)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", "addr", port, "database", store.Connected())
	if err := http.ListenAndServe(port, router); err != nil {
		logger.Error("server error", "error", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
