package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ykvlv/birthday-bot/internal/config"
	"github.com/ykvlv/birthday-bot/internal/congrats"
	"github.com/ykvlv/birthday-bot/internal/delivery"
	"github.com/ykvlv/birthday-bot/internal/domain"
	"github.com/ykvlv/birthday-bot/internal/holidays"
	"github.com/ykvlv/birthday-bot/internal/scheduler"
	"github.com/ykvlv/birthday-bot/internal/store"
	"github.com/ykvlv/birthday-bot/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting birthday-bot",
		zap.String("bot", a.bot.Self.UserName),
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("default_time", domain.FormatClock(a.cfg.DefaultHour, a.cfg.DefaultMinute)),
	)

	repo, err := store.Open(ctx, a.cfg.DatabaseURL, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	defer func() { _ = a.repo.Close() }()
	a.log.Info("store ready", zap.Bool("postgres", a.cfg.DatabaseURL != ""))

	gen, err := congrats.New(a.cfg.Generator, a.log)
	if err != nil {
		a.log.Error("text generator init failed", zap.Error(err))
		return err
	}
	hol := holidays.NewClient(a.cfg.Holidays.Base, a.cfg.Holidays.Timeout, a.log)

	a.router = telegram.NewRouter(a.bot, a.log, a.repo, hol, a.cfg.DefaultHour, a.cfg.DefaultMinute)
	if err := a.router.SetCommands(); err != nil {
		a.log.Warn("set bot commands failed", zap.Error(err))
	}

	svc := delivery.New(hol, a.repo, gen, a.router, a.log)
	sched := scheduler.New(a.repo, svc, a.log, a.cfg.TickSpec, a.cfg.DefaultHour, a.cfg.DefaultMinute)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	var wg sync.WaitGroup
	schedErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sched.Run(ctx); err != nil {
			schedErr <- err
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.shutdown(&wg)
			return nil

		case err := <-schedErr:
			a.log.Error("scheduler failed", zap.Error(err))
			stop()
			a.shutdown(&wg)
			return err

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

// shutdown stops polling and the HTTP server and waits for the scheduler.
func (a *App) shutdown(wg *sync.WaitGroup) {
	a.bot.StopReceivingUpdates()

	// Create a short-lived shutdown context and cancel it immediately after use.
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}

	wg.Wait()
}
