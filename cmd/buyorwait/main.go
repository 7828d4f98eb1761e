package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/config"
	"BuyOrWait/internal/logger"
	"BuyOrWait/internal/notifier"
	"BuyOrWait/internal/scheduler"
	"BuyOrWait/internal/server"
	"BuyOrWait/internal/version"
)

func main() {
	state := flag.String("state", "", "state to report on, then exit")
	commodity := flag.String("commodity", "", "commodity to report on, then exit")
	ask := flag.String("ask", "", "question to answer for -state/-commodity")
	importTo := flag.String("import-sqlite", "", "copy the configured data source into this SQLite file, then exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("config validation: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Log.Fatalf("init logger: %v", err)
	}
	logger.Log.Infof("BuyOrWait %s starting...", version.String())

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Init data source
	fetcher, closeFetcher, err := collector.NewFetcher(ctx, cfg.Data)
	if err != nil {
		logger.Log.Fatalf("init data source: %v", err)
	}
	defer closeFetcher()
	logger.Log.Infof("data source: %s", fetcher.Name())

	if *importTo != "" {
		if err := importSQLite(ctx, fetcher, *importTo); err != nil {
			logger.Log.Fatalf("import: %v", err)
		}
		return
	}

	// Load the table once; it is read-only from here on
	table, err := collector.Load(ctx, fetcher)
	if err != nil {
		logger.Log.Fatalf("load price table: %v", err)
	}

	if *state != "" || *commodity != "" {
		code := runOnce(os.Stdout, table, cfg.Currency, *state, *commodity, *ask)
		closeFetcher()
		os.Exit(code)
	}

	serve(ctx, cfg, table)
	logger.Log.Info("BuyOrWait stopped")
}

func serve(ctx context.Context, cfg *config.Config, table *collector.Table) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	running := false

	// HTTP dashboard API
	var srv *server.Server
	if cfg.HTTP.Addr != "" {
		srv = server.New(cfg.HTTP.Addr, table, cfg.Currency)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				logger.Log.Errorf("http server: %v", err)
				cancel()
			}
		}()
		running = true
	}

	// Telegram bot and digest
	if cfg.Telegram.BotToken != "" {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, cfg.Telegram.MessagesPerSecond)
		sched := scheduler.NewScheduler(ctx, table, tn, cfg.Telegram.ChatID, cfg.Currency, cfg.Schedule.Watchlist)
		if err := sched.RegisterAll(cfg.Schedule.DigestCron); err != nil {
			logger.Log.Fatalf("register cron tasks: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Log.Info("telegram polling started")

		if os.Getenv("RUN_ON_START") == "true" {
			logger.Log.Info("RUN_ON_START enabled, sending digest now")
			go sched.RunDigestNow()
		}
		running = true
	}

	if !running {
		logger.Log.Warn("neither http.addr nor telegram.bot_token is set, nothing to serve")
		return
	}

	logger.Log.Info("BuyOrWait is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.Log.Info("shutdown signal received, stopping...")

	if srv != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("http shutdown: %v", err)
		}
	}
}
