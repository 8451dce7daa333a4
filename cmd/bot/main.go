package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NepseSentinel/internal/config"
	"NepseSentinel/internal/feed"
	"NepseSentinel/internal/logger"
	"NepseSentinel/internal/metrics"
	"NepseSentinel/internal/news"
	"NepseSentinel/internal/notifier"
	"NepseSentinel/internal/scheduler"
	"NepseSentinel/internal/sentiment"
	"NepseSentinel/internal/server"
	"NepseSentinel/internal/store"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log := logger.New("info", false)

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("NepseSentinel starting")

	// Trading calendar
	days, err := config.Weekdays(cfg.Session.Days)
	if err != nil {
		log.Fatal().Err(err).Msg("session days")
	}
	calendar, err := scheduler.NewCalendar(days, cfg.Session.Open, cfg.Session.Close, cfg.Session.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("session calendar")
	}

	// Subscriber registry
	var registry store.Registry
	if cfg.Store.SQLitePath != "" {
		sr, err := store.NewSQLiteRegistry(cfg.Store.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite registry failed, using in-memory registry")
			registry = store.NewMemoryRegistry()
		} else {
			registry = sr
			defer sr.Close()
		}
	} else {
		registry = store.NewMemoryRegistry()
	}

	// Feed, news and delivery
	nepse := feed.NewNepseClient(cfg.Feed.BaseURL, cfg.Feed.Timeout, log)
	log.Info().Str("source", nepse.Name()).Str("base_url", cfg.Feed.BaseURL).Msg("feed configured")
	newsClient := news.NewClient(cfg.News.URL, cfg.News.Selector, cfg.News.Timeout)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, log)
	sink := &notifier.Broadcaster{Notifier: tn, Registry: registry, Log: log}

	// Metrics
	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.New(ctx, scheduler.Deps{
		Source:   nepse,
		History:  nepse,
		Fallback: &feed.MockSource{},
		News:     newsClient,
		Rules:    news.DefaultTaxonomy(),
		Scorer:   sentiment.NewVADER(),
		Sink:     sink,
		Registry: registry,
		Calendar: calendar,
		Metrics:  m,
		Logger:   log,
	}, scheduler.Options{
		MaxSymbols:         cfg.Feed.MaxSymbols,
		MaxRetries:         cfg.Feed.Retries,
		RetryDelay:         cfg.Feed.RetryDelay,
		PollIntervalOpen:   cfg.Scheduler.PollIntervalOpen,
		PollIntervalClosed: cfg.Scheduler.PollIntervalClosed,
	})
	if err := sched.RegisterDigest(cfg.Scheduler.DigestCron); err != nil {
		log.Fatal().Err(err).Msg("register digest cron")
	}
	sched.StartCron()
	defer sched.StopCron()

	// Telegram command polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	// Optional ops server
	var ops *server.Server
	if cfg.Server.Addr != "" {
		ops = server.New(cfg.Server.Addr, sched, promReg, log)
		go func() {
			if err := ops.Start(); err != nil {
				log.Error().Err(err).Msg("ops server")
			}
		}()
	}

	if cfg.Scheduler.AutoStart {
		sched.Start()
	}

	log.Info().Msg("NepseSentinel is running, press Ctrl+C to stop")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	sched.Stop()
	cancel()
	if ops != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ops.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("ops server shutdown")
		}
		shutdownCancel()
	}
	log.Info().Msg("NepseSentinel stopped")
}
