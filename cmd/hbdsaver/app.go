package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"HBDSaver/internal/config"
	"HBDSaver/internal/hive"
	"HBDSaver/internal/logging"
	"HBDSaver/internal/model"
	"HBDSaver/internal/notifier"
	"HBDSaver/internal/recorder"
	"HBDSaver/internal/reward"
	"HBDSaver/internal/savings"
	"HBDSaver/internal/scheduler"
)

// app holds the wired components of one process.
type app struct {
	cfg      *config.Config
	sink     *logging.Sink
	runner   *scheduler.Runner
	telegram *notifier.TelegramNotifier
	recorder recorder.Recorder
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		// The file could not be read, so log.dir is unknown.
		sink := logging.NewSink(defaultLogDir())
		log.SetOutput(sink)
		log.Printf("[FATAL] load config: %v", err)
		sink.Close()
		var ce *model.ConfigurationError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, &model.ConfigurationError{Msg: err.Error()}
	}
	if dryRun {
		cfg.DryRun = true
	}

	sink := logging.NewSink(cfg.Log.Dir)
	log.SetOutput(sink)

	if err := cfg.Validate(); err != nil {
		log.Printf("[FATAL] config validation: %v", err)
		sink.Close()
		return nil, err
	}
	if _, err := hive.DecodeWIF(cfg.SigningKey); err != nil {
		log.Printf("[FATAL] signing key: %v", err)
		sink.Close()
		return nil, &model.ConfigurationError{Field: "signing_key", Msg: err.Error()}
	}
	policy, err := cfg.Policy()
	if err != nil {
		sink.Close()
		return nil, err
	}

	client := hive.NewClient(cfg.Node.URL, cfg.Proxy, cfg.Node.RequestsPerSecond)
	limits := cfg.Limits()
	checker := reward.NewChecker(client, cfg.Account, limits)
	locator := reward.NewLocator(client, checker, limits)
	dispatcher := savings.NewDispatcher(client, cfg.SigningKey, cfg.DryRun)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	a := &app{cfg: cfg, sink: sink, recorder: rec}
	var n scheduler.Notifier
	if cfg.Telegram.BotToken != "" {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = a.telegram
	}
	a.runner = scheduler.NewRunner(cfg.Account, locator, policy, dispatcher, rec, n)

	log.Printf("[INFO] node %s, mode %s, dry run %v", cfg.Node.URL, policy.Mode, cfg.DryRun)
	return a, nil
}

func defaultLogDir() string {
	if v := os.Getenv("LOG_DIR"); v != "" {
		return v
	}
	return "log"
}

func (a *app) close() {
	if err := a.recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
	a.sink.Close()
}

func runOnce(ctx context.Context) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	log.Println("[INFO] HBDSaver starting...")
	if _, err := a.runner.RunOnce(ctx); err != nil {
		log.Printf("[FATAL] run failed: %v", err)
		return err
	}
	log.Println("[INFO] HBDSaver finished")
	return nil
}

func runDaemon(ctx context.Context) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, a.runner)
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		log.Printf("[FATAL] register cron task: %v", err)
		return &model.ConfigurationError{Field: "schedule.cron", Msg: err.Error()}
	}
	sched.Start()
	defer sched.Stop()

	if a.telegram != nil {
		go a.telegram.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, running now")
		go sched.RunNow()
	}

	log.Printf("[INFO] HBDSaver is running on %q. Press Ctrl+C to stop.", a.cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	cancel()
	return nil
}
