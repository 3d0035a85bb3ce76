package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/inventory-backend/internal/adapter/alertwebhook"
	"github.com/heartmarshall/inventory-backend/internal/adapter/kafkarelay"
	"github.com/heartmarshall/inventory-backend/internal/adapter/postgres"
	itemrepo "github.com/heartmarshall/inventory-backend/internal/adapter/postgres/item"
	"github.com/heartmarshall/inventory-backend/internal/adapter/postgres/ledger"
	userrepo "github.com/heartmarshall/inventory-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/inventory-backend/internal/adapter/redisstore"
	"github.com/heartmarshall/inventory-backend/internal/auth"
	"github.com/heartmarshall/inventory-backend/internal/config"
	"github.com/heartmarshall/inventory-backend/internal/notify"
	authsvc "github.com/heartmarshall/inventory-backend/internal/service/auth"
	itemsvc "github.com/heartmarshall/inventory-backend/internal/service/item"
	"github.com/heartmarshall/inventory-backend/internal/service/stock"
	usersvc "github.com/heartmarshall/inventory-backend/internal/service/user"
	"github.com/heartmarshall/inventory-backend/internal/transport/middleware"
	"github.com/heartmarshall/inventory-backend/internal/transport/rest"
	"github.com/heartmarshall/inventory-backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL (and the optional Redis, Kafka and alert webhook), builds the
// services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	shutdownTracing, err := setupTracing(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	registry := notify.NewRegistry(cfg.Notify.MaxSubscribers)
	bus := notify.NewBus(registry, logger,
		notify.WithSendTimeout(cfg.Notify.SendTimeout),
		notify.WithConcurrency(cfg.Notify.SendConcurrency),
	)

	if err := registerRelays(cfg, registry, logger); err != nil {
		bus.Close()
		return err
	}

	var stockOpts []stock.Option
	if cfg.Redis.Enabled() {
		client, err := redisstore.Connect(ctx, cfg.Redis)
		if err != nil {
			bus.Close()
			return err
		}
		defer client.Close()
		stockOpts = append(stockOpts, stock.WithIdempotency(
			redisstore.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)))
		logger.Info("idempotency keys enabled", slog.String("redis", cfg.Redis.Addr))
	}

	handler, stopLimiter := buildHandler(cfg, pool, registry, bus, logger, stockOpts)
	defer stopLimiter()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Shutdown does not track hijacked WebSocket connections; the bus
		// closes those, after in-flight requests have published their events.
		err := srv.Shutdown(sctx)
		bus.Close()
		return err
	})

	return g.Wait()
}

// registerRelays adds the optional Kafka and webhook subscribers.
func registerRelays(cfg *config.Config, registry *notify.Registry, logger *slog.Logger) error {
	if cfg.Kafka.Enabled() {
		relay := kafkarelay.New(kafkarelay.NewWriter(cfg.Kafka), logger, 0)
		if err := registry.Register(relay); err != nil {
			_ = relay.Close()
			return fmt.Errorf("register kafka relay: %w", err)
		}
		logger.Info("kafka relay enabled", slog.String("topic", cfg.Kafka.Topic))
	}

	if cfg.Alert.Enabled() {
		notifier := alertwebhook.New(cfg.Alert, logger)
		if err := registry.Register(notifier); err != nil {
			_ = notifier.Close()
			return fmt.Errorf("register alert webhook: %w", err)
		}
		logger.Info("low-stock webhook enabled")
	}
	return nil
}

// buildHandler wires repositories, services and transport into one handler.
// The returned func stops the rate limiter's cleanup goroutine, if one was started.
func buildHandler(
	cfg *config.Config,
	pool *pgxpool.Pool,
	registry *notify.Registry,
	bus *notify.Bus,
	logger *slog.Logger,
	stockOpts []stock.Option,
) (http.Handler, func()) {
	txm := postgres.NewTxManager(pool)
	items := itemrepo.New(pool)
	entries := ledger.New(pool)
	users := userrepo.New(pool)

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, jwtMgr, cfg.Auth)
	userService := usersvc.NewService(logger, users, txm, cfg.Auth.BcryptCost)
	stockService := stock.NewService(logger, items, entries, txm, bus, stockOpts...)
	itemService := itemsvc.NewService(logger, items, stockService, txm, bus)

	mux := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, bus, BuildVersion()),
		Auth:         rest.NewAuthHandler(authService, logger),
		Users:        rest.NewUserHandler(userService, logger),
		Items:        rest.NewItemHandler(itemService, logger),
		Transactions: rest.NewTransactionHandler(stockService, logger),
		WS:           ws.NewHandler(registry, cfg.Notify, cfg.CORS, logger),
	})

	var limit middleware.Middleware
	stop := func() {}
	if cfg.Server.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		limit = limiter.Limit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
		stop = limiter.Stop
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
		middleware.Auth(authService),
	)(mux)

	return otelhttp.NewHandler(handler, "inventory-http"), stop
}
