package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/alarmbridge/alarmbridge/internal/config"
	"github.com/alarmbridge/alarmbridge/internal/divera"
	"github.com/alarmbridge/alarmbridge/internal/httpserver"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/logger"
	"github.com/alarmbridge/alarmbridge/internal/redis"
	"github.com/alarmbridge/alarmbridge/internal/scheduler"
	redisstore "github.com/alarmbridge/alarmbridge/internal/store/redis"
	"github.com/alarmbridge/alarmbridge/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	coordinators map[string]*scheduler.Coordinator
	order        []string
}

func New() *App {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loggerClient.Errorf("Unknown timezone %q: %v", cfg.Timezone, err)
		os.Exit(1)
	}

	// Optional Redis warm cache - fail fast when enabled but unavailable
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisEnabled {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		store = redisstore.NewStore(redisClient, cfg.SnapshotTTL)
		loggerClient.Info("Redis snapshot cache initialized")
	} else {
		loggerClient.Info("Redis disabled, snapshots kept in memory only")
	}

	// One shared HTTP client; pooling lives here, each request is scoped
	// to its own account-context.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	coordinators := make(map[string]*scheduler.Coordinator, len(cfg.Accounts))
	order := make([]string, 0, len(cfg.Accounts))
	for _, acc := range cfg.Accounts {
		client := divera.NewClient(divera.Options{
			HTTPClient: httpClient,
			Logger:     loggerClient,
			BaseURL:    cfg.BaseURL,
			AccessKey:  cfg.AccessKey,
			UCRID:      acc.UCR,
		})
		coord := scheduler.NewCoordinator(
			client,
			storeOrNil(store),
			loggerClient,
			loc,
			cfg.ScanInterval,
			acc.Name,
		)
		key := acc.UCR
		if key == "" {
			key = acc.Name
		}
		coordinators[key] = coord
		order = append(order, key)
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Coordinators: coordinators,
		Order:        order,
		Store:        store,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		coordinators: coordinators,
		order:        order,
	}
}

// startCoordinators launches every first refresh concurrently so one
// unreachable context does not delay the others, and waits for all of them
// to reach a terminal outcome; any single failure fails setup, there is no
// stale data to fall back to yet. The group joins only the synchronous
// first refreshes - the polling loops inherit ctx, which outlives startup.
func startCoordinators(ctx context.Context, order []string, coordinators map[string]*scheduler.Coordinator) error {
	var g errgroup.Group
	for _, key := range order {
		coord := coordinators[key]
		g.Go(func() error {
			return coord.Start(ctx)
		})
	}
	return g.Wait()
}

// storeOrNil keeps a nil *Store from becoming a non-nil interface value.
func storeOrNil(store *redisstore.Store) scheduler.SnapshotStore {
	if store == nil {
		return nil
	}
	return store
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting alarmbridge v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("alarmbridge %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := startCoordinators(ctx, a.order, a.coordinators); err != nil {
		for _, key := range a.order {
			a.coordinators[key].Stop()
		}
		return fmt.Errorf("failed to start coordinators: %w", err)
	}
	a.logger.Info("all coordinators started",
		logger.Int("contexts", len(a.order)),
		logger.Duration("interval", a.cfg.ScanInterval))

	a.warnUnauthorized()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	for _, key := range a.order {
		a.coordinators[key].Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown failed", logger.Error(err))
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis client", logger.Error(err))
		}
	}

	a.logger.Info("✅ alarmbridge stopped")
	_ = a.logger.Sync()
	return nil
}

// warnUnauthorized logs every context whose membership group is not
// permitted to use the integration. The contexts keep polling; only the
// write path refuses them.
func (a *App) warnUnauthorized() {
	for _, key := range a.order {
		coord := a.coordinators[key]
		acc := coord.Accessor()
		if acc == nil || acc.UsergroupAllowed() {
			continue
		}
		a.logger.Warn("account-context not authorized for status changes",
			logger.String("account", coord.Name()))
	}
}
