package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/config"
	"github.com/Dosada05/beach-tournament/db"
	"github.com/Dosada05/beach-tournament/handlers"
	"github.com/Dosada05/beach-tournament/repositories"
	api "github.com/Dosada05/beach-tournament/routes"
	"github.com/Dosada05/beach-tournament/services"
	"github.com/Dosada05/beach-tournament/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
)

const (
	dbConnectTimeout    = 5 * time.Second
	redisConnectTimeout = 3 * time.Second
	shutdownTimeout     = 15 * time.Second
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("store", cfg.StoreBackend))

	ctx := context.Background()

	repo, closeStore, err := openSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open snapshot store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("snapshot store ready", slog.String("store", repo.Name()))

	var leaderboard repositories.LeaderboardRepository
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = repositories.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redisConnectTimeout)
		if err != nil {
			logger.Warn("ranking cache disabled", slog.Any("error", err))
		} else {
			leaderboard = repositories.NewRedisLeaderboardRepository(redisClient)
			logger.Info("ranking cache connected", slog.String("addr", cfg.RedisAddr))
		}
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis client", slog.Any("error", err))
			}
		}
	}()

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	session := services.NewSession(repo, leaderboard, wsHub, rng, logger)
	if err := session.WarmLeaderboard(ctx); err != nil {
		logger.Warn("failed to warm ranking cache", slog.Any("error", err))
	}

	authService := services.NewAuthService(services.AuthConfig{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       []byte(cfg.JWTSecretKey),
		TTL:          cfg.JWTTTL,
	})
	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, organizer login is disabled")
	}

	backupCtx, stopBackups := context.WithCancel(ctx)
	defer stopBackups()
	if cfg.BackupInterval > 0 {
		go runBackups(backupCtx, session, cfg.BackupDir, cfg.BackupInterval, logger)
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Health:     handlers.NewHealthHandler(session),
		Auth:       handlers.NewAuthHandler(authService),
		Tournament: handlers.NewTournamentHandler(session),
		Athlete:    handlers.NewAthleteHandler(session),
		Team:       handlers.NewTeamHandler(session),
		Ranking:    handlers.NewRankingHandler(session),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins),
	}, []byte(cfg.JWTSecretKey), cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// openSnapshotStore builds the repository selected by STORE_BACKEND. The returned
// close func releases database handles and is always non-nil.
func openSnapshotStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.SnapshotRepository, func(), error) {
	var dbConn *sql.DB
	closeFn := func() {
		if dbConn == nil {
			return
		}
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}

	openPostgres := func() (repositories.SnapshotRepository, error) {
		conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, err
		}
		dbConn = conn
		if err := db.EnsureSchema(ctx, conn); err != nil {
			return nil, err
		}
		return repositories.NewPostgresSnapshotRepository(conn), nil
	}

	openR2 := func() (repositories.SnapshotRepository, error) {
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return repositories.NewObjectSnapshotRepository(store, cfg.R2.SnapshotKey), nil
	}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		repo, err := openPostgres()
		return repo, closeFn, err
	case config.BackendR2:
		repo, err := openR2()
		return repo, closeFn, err
	case config.BackendMirror:
		primary := repositories.NewFileSnapshotRepository(cfg.SnapshotPath)
		var mirrors []repositories.SnapshotRepository
		if cfg.DatabaseURL != "" {
			repo, err := openPostgres()
			if err != nil {
				return nil, closeFn, err
			}
			mirrors = append(mirrors, repo)
		}
		if cfg.R2.Enabled() {
			repo, err := openR2()
			if err != nil {
				return nil, closeFn, err
			}
			mirrors = append(mirrors, repo)
		}
		if len(mirrors) == 0 {
			logger.Warn("mirror store has no mirrors configured, using the file only")
		}
		return repositories.NewMirrorSnapshotRepository(primary, logger, mirrors...), closeFn, nil
	default:
		return repositories.NewFileSnapshotRepository(cfg.SnapshotPath), closeFn, nil
	}
}

func runBackups(ctx context.Context, session *services.Session, dir string, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("snapshot backup scheduler started", slog.Duration("interval", interval), slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			path := filepath.Join(dir, "snapshot-"+now.UTC().Format("20060102-150405")+".json")
			if err := session.Backup(ctx, repositories.NewFileSnapshotRepository(path)); err != nil {
				logger.Error("snapshot backup failed", slog.Any("error", err))
				continue
			}
			logger.Info("snapshot backed up", slog.String("path", path))
		}
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
