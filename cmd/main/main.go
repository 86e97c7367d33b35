package main

import (
	"alterra-bot/pkg"
	"alterra-bot/pkg/db"
	"alterra-bot/pkg/handlers"
	"alterra-bot/pkg/liveness"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/handler"
	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
)

func main() {
	cfg, err := pkg.ConfigFromEnv()
	if err != nil {
		setupLogger(slog.LevelInfo)
		fatal("alterra: invalid configuration", err)
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:           cfg.SentryDSN,
		EnableTracing: false,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if cfg.Production() { // only report events in prod
				return event
			}
			return nil
		},
	})
	if err != nil {
		panic(err)
	}
	defer sentry.Flush(2 * time.Second)

	setupLogger(cfg.LogLevel)
	slog.Info("starting the bot...", slog.String("disgo.version", disgo.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		if errors.Is(err, db.ErrCorruptState) {
			fatal("alterra: refusing to start with a corrupt guild state file", err, slog.String("storage.path", cfg.StoragePath))
		}
		fatal("alterra: error while opening the guild store", err)
	}
	defer closeStore()

	eg, ctx := errgroup.WithContext(ctx)
	server := liveness.NewServer(cfg.HTTPAddr)
	eg.Go(func() error {
		slog.Info("alterra: liveness endpoint listening", slog.String("http.addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("liveness endpoint: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	b := &pkg.Bot{
		Store: store,
	}
	h := handlers.NewHandler(b)

	var syncOnce sync.Once
	client, err := disgo.New(cfg.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithEventListeners(h, &events.ListenerAdapter{
			OnReady: func(ev *events.Ready) {
				slog.Info("alterra: connected to the gateway", slog.String("user.name", ev.User.Username))
				syncOnce.Do(func() {
					go func() {
						_ = handlers.SyncCommands(ctx, func() error {
							return handler.SyncCommands(ev.Client(), handlers.Commands, nil)
						})
					}()
				})
			},
		}))
	if err != nil {
		fatal("alterra: error while building the client", err)
	}

	defer client.Close(context.TODO())

	if err := client.OpenGateway(ctx); err != nil {
		fatal("alterra: error while connecting to the gateway", err)
	}

	slog.Info("alterra bot is now running.")
	if err := eg.Wait(); err != nil {
		slog.Error("alterra: shutting down after a failure", tint.Err(err))
		return
	}
	slog.Info("alterra: shutting down")
}

func setupLogger(level slog.Level) {
	logger := slog.New(slogmulti.Fanout(
		tint.NewHandler(os.Stdout, &tint.Options{
			Level: level,
		}),
		sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelWarn, slog.LevelError},
		}.NewSentryHandler(context.Background())))
	slog.SetDefault(logger)
}

func openStore(ctx context.Context, cfg *pkg.Config) (db.GuildStore, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := db.NewDB(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("error while migrating the database: %w", err)
		}
		slog.Info("alterra: using postgres guild store")
		return store, pool.Close, nil
	}
	store, err := db.OpenFile(cfg.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("alterra: using file guild store", slog.String("storage.path", cfg.StoragePath), slog.Int("guilds.count", len(store.Guilds())))
	return store, func() {}, nil
}

func fatal(msg string, err error, attrs ...any) {
	slog.Error(msg, append(attrs, tint.Err(err))...)
	sentry.Flush(2 * time.Second)
	os.Exit(1)
}
