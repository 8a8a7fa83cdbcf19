package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate/internal/cache"
	"github.com/GlebRadaev/affiliate/internal/config"
	"github.com/GlebRadaev/affiliate/internal/handlers"
	"github.com/GlebRadaev/affiliate/internal/notify"
	"github.com/GlebRadaev/affiliate/internal/paystack"
	"github.com/GlebRadaev/affiliate/internal/pg"
	"github.com/GlebRadaev/affiliate/internal/reconcile"
	"github.com/GlebRadaev/affiliate/internal/repo"
	"github.com/GlebRadaev/affiliate/internal/service"
	"github.com/GlebRadaev/affiliate/internal/service/webhookservice"
	"github.com/GlebRadaev/affiliate/pkg/auth"
	"github.com/GlebRadaev/affiliate/pkg/clients"
	"github.com/GlebRadaev/affiliate/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	ext  *reconcile.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	if cfg.PaystackSecret == "" {
		zap.L().Warn("PAYSTACK_SECRET_KEY is empty, provider calls and webhooks will be rejected")
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)

	gateway := paystack.New(cfg.PaystackAddress, cfg.PaystackSecret, clients.NewHTTPClient(cfg.ProviderTimeout), cfg.ProviderTimeout)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	a.srv = service.New(a.repo, service.Deps{
		TxManager: txManager,
		Paystack:  gateway,
		Notifier:  a.newNotifier(),
		Cache:     a.newEventCache(ctx),
		JWT:       jwtService,
	}, cfg)
	a.api = handlers.New(a.srv, jwtService, cfg.PaystackSecret)
	a.ext = reconcile.New(a.repo.WithdrawalRepo, gateway, a.srv.TransferOutcomes, reconcile.Config{
		Interval: cfg.ReconcileInterval,
		After:    cfg.ReconcileAfter,
	})

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startReconciler(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// newNotifier falls back to a no-op when the bot is not configured or unreachable.
func (a *Application) newNotifier() notify.Notifier {
	if a.cfg.TelegramToken == "" {
		zap.L().Info("telegram notifications disabled")
		return notify.Noop{}
	}
	bot, err := tgbotapi.NewBotAPI(a.cfg.TelegramToken)
	if err != nil {
		zap.L().Warn("telegram bot unavailable, notifications disabled", zap.Error(err))
		return notify.Noop{}
	}
	zap.L().Info("telegram notifications enabled", zap.String("bot", bot.Self.UserName))
	return notify.NewTelegram(bot, a.repo.UserRepo)
}

func (a *Application) newEventCache(ctx context.Context) webhookservice.EventCache {
	if a.cfg.RedisAddr == "" {
		return cache.Noop{}
	}
	client, err := cache.NewRedisClient(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	if err != nil {
		zap.L().Warn("redis unavailable, webhook dedup relies on the ledger only", zap.Error(err))
		return cache.Noop{}
	}
	return cache.NewEventCache(client, a.cfg.EventCacheTTL)
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startReconciler(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.ext.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
