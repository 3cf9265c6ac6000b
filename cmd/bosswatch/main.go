package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bosswatch/bosswatch/internal/activation"
	"github.com/bosswatch/bosswatch/internal/config"
	"github.com/bosswatch/bosswatch/internal/logging"
	"github.com/bosswatch/bosswatch/internal/model"
	"github.com/bosswatch/bosswatch/internal/notify"
	"github.com/bosswatch/bosswatch/internal/poller"
	"github.com/bosswatch/bosswatch/internal/source"
	"github.com/bosswatch/bosswatch/internal/storage"
	"github.com/bosswatch/bosswatch/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bosswatch failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.OpenFile(cfg.LogFile); err != nil {
		return err
	}
	defer logging.Close()
	if cfg.Debug {
		logging.SetLevel(logging.LevelDebug)
	}

	events, err := source.LoadFile(cfg.DataFile)
	if err != nil {
		return err
	}
	logging.Info("event catalog loaded", "events", len(events), "file", cfg.DataFile)

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	applied, err := storage.MigrateUp(repo.DB())
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logging.Info("database ready", "migrations", strings.Join(applied, ","))

	ctx := context.Background()
	if err := syncCatalog(ctx, repo, events); err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	store, err := loadActivation(ctx, repo, cfg, events)
	if err != nil {
		return fmt.Errorf("load activation: %w", err)
	}

	var sink poller.Notifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		sink = update.ExecDesktopNotifier{}
	}

	engine := poller.NewEngine(poller.Config{
		Interval:   cfg.TickInterval(),
		Window:     cfg.Window(),
		Retention:  cfg.Retention(),
		DailyReset: cfg.DailyReset,
	}, events, store, notify.NewLedger(), sink)
	engine.Start(false)
	defer engine.Stop()

	saver := func(set activation.Set) error {
		return repo.SaveActivation(ctx, set.Events, set.Thresholds)
	}
	program := tea.NewProgram(update.NewModel(engine, store, events, cfg.Thresholds, saver))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logging.Info("shutting down")
	return nil
}

func syncCatalog(ctx context.Context, repo *storage.SQLiteRepository, events []model.Event) error {
	now := time.Now()
	rows := make([]storage.Event, 0, len(events))
	rules := make([]storage.SpawnRule, 0)
	for _, ev := range events {
		rows = append(rows, storage.Event{ID: ev.ID, Name: ev.Name, CreatedAt: now})
		for i, r := range ev.Rules {
			rules = append(rules, storage.SpawnRule{
				EventID:  ev.ID,
				Position: i,
				Day:      int(r.Day),
				Hour:     r.Hour,
				Minute:   r.Minute,
			})
		}
	}
	return repo.SyncEvents(ctx, rows, rules)
}

// loadActivation restores the persisted activation set; with nothing stored
// the defaults apply: every boss tracked, no thresholds enabled.
func loadActivation(ctx context.Context, repo *storage.SQLiteRepository, cfg *config.Config, events []model.Event) (*activation.Store, error) {
	savedEvents, savedThresholds, err := repo.LoadActivation(ctx)
	if err != nil {
		return nil, err
	}

	set := activation.NewSet()
	for _, ev := range events {
		enabled, ok := savedEvents[ev.ID]
		if !ok {
			enabled = true
		}
		set.Events[ev.ID] = enabled
	}
	for _, minutes := range cfg.Thresholds {
		set.Thresholds[minutes] = savedThresholds[minutes]
	}
	return activation.NewStore(set), nil
}
