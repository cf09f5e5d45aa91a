package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assembl/internal/config"
	"assembl/internal/handler"
	"assembl/internal/repository/postgres"
	"assembl/internal/service"
	"assembl/internal/session"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Assembl Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("state_backend", cfg.Session.Backend),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Conversation state
	sessions, closeSessions, err := newSessionStore(cfg.Session)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	// Initialize repositories
	groupRepo := postgres.NewGroupRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	photoRepo := postgres.NewPhotoRepo(db)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Unhandled bot error", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Initialize services
	authService := service.NewAuthService(groupRepo, bot, logger)
	catalogService := service.NewCatalogService(categoryRepo, photoRepo)
	photoService := service.NewPhotoService(photoRepo, logger)
	maintenanceService := service.NewMaintenanceService(groupRepo, bot, logger)

	// Initialize handler
	h := handler.NewHandler(bot, authService, catalogService, photoService, sessions, handler.Options{
		BotURL:     cfg.BotURL,
		ChannelURL: cfg.ChannelURL,
	}, logger)
	h.RegisterHandlers()
	if err := h.RegisterCommands(); err != nil {
		logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	logger.Info("Handlers registered")

	// Start maintenance job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runMaintenanceJob(ctx, maintenanceService, bot.Me, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// newSessionStore opens the configured session backend. The returned func
// releases it.
func newSessionStore(cfg config.SessionConfig) (session.Store, func(), error) {
	if cfg.Backend != config.BackendRedis {
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
	}

	return session.NewRedisStore(client, cfg.RedisPrefix), func() { client.Close() }, nil
}

// runMaintenanceJob drops groups the bot no longer belongs to
func runMaintenanceJob(ctx context.Context, maintenance *service.MaintenanceService, me *tele.User, logger *zap.Logger) {
	// Run once at startup
	if err := maintenance.PruneGroups(me); err != nil {
		logger.Error("Failed to run initial group pruning", zap.Error(err))
	}

	// Then run every 24 hours
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Maintenance job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled group pruning")
			if err := maintenance.PruneGroups(me); err != nil {
				logger.Error("Failed to run scheduled group pruning", zap.Error(err))
			}
		}
	}
}
