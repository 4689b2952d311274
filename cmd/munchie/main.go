package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/nhle/munchie/internal/account"
	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/app"
	"github.com/nhle/munchie/internal/logging"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/notify"
	"github.com/nhle/munchie/internal/recipes"
	"github.com/nhle/munchie/internal/session"
	"github.com/nhle/munchie/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("munchie", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", model.DefaultConfigPath(), "path to the YAML config file")
	baseURL := flags.String("base-url", "", "Munchie backend URL (overrides api.base_url)")
	noSound := flags.Bool("no-sound", false, "disable the award sound cue")
	writeConfig := flags.Bool("write-config", false, "write the effective config to --config and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *noSound {
		cfg.Sound.Enabled = false
	}
	if *writeConfig {
		return model.SaveConfig(*configPath, cfg)
	}

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	journal, err := openJournal(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer journal.Close()

	if n, err := journal.PruneAcks(context.Background(), time.Now().Add(-app.JournalRetention)); err != nil {
		log.WithError(err).Warn("pruning acknowledgement journal")
	} else if n > 0 {
		log.WithField("removed", n).Info("pruned acknowledgement journal")
	}

	vault, err := session.OpenKeyring(model.ConfigDir())
	if err != nil {
		return err
	}
	sess, err := session.Load(vault, session.WithLogger(log))
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(time.Duration(cfg.API.TimeoutSec)*time.Second),
		api.WithMaxRetries(cfg.API.MaxRetries),
		api.WithRateLimit(cfg.API.RatePerSec),
		api.WithLogger(log),
	)

	dispatcher := notify.NewDispatcher(client, notify.NewCue(soundPlayer(cfg.Sound), log),
		notify.WithDelays(cfg.Notifications.BaseDelay(), cfg.Notifications.StepDelay()),
		notify.WithJournal(journal),
		notify.WithDispatcherLogger(log),
	)
	defer dispatcher.Close()

	notifier := notify.NewNotifier(notify.NewStore(client, log), dispatcher, sess, log)

	log.WithFields(logrus.Fields{
		"base_url":  client.BaseURL(),
		"logged_in": sess.LoggedIn(),
	}).Info("munchie starting")

	root := app.New(app.Deps{
		Accounts:      account.NewService(client, sess, notifier, log),
		Session:       sess,
		Notifications: notifier,
		Catalog:       recipes.NewCatalog(client, recipes.DefaultTTL, log),
		Backend:       client,
		Journal:       journal,
		StepDelay:     cfg.Notifications.StepDelay(),
		ToastDuration: cfg.Notifications.ToastDuration(),
		Config:        *cfg,
		ProbeBackend:  probeBackend(log),
		SaveConfig: func(c *model.AppConfig) error {
			return model.SaveConfig(*configPath, c)
		},
		Log: log,
	})

	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// probeBackend checks a candidate server from the settings screen. It uses
// a throwaway client so the running one keeps its base URL.
func probeBackend(log logrus.FieldLogger) func(ctx context.Context, baseURL string) error {
	return func(ctx context.Context, baseURL string) error {
		_, err := api.NewClient(baseURL, api.WithMaxRetries(0), api.WithLogger(log)).ListAwards(ctx)
		return err
	}
}

// openJournal opens the acknowledgement journal, creating its directory.
func openJournal(path string) (*store.SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return store.NewSQLiteStore(path)
}

// soundPlayer rings the terminal bell on stderr, which shares the tty with
// the UI without touching its frame.
func soundPlayer(cfg model.SoundConfig) notify.Player {
	if !cfg.Enabled {
		return notify.NopPlayer{}
	}
	return notify.NewBellPlayer(os.Stderr, time.Duration(cfg.ClipMs)*time.Millisecond)
}
