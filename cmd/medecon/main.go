package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medecon/internal/scheduler"
	"github.com/sandeepkv93/medecon/internal/storage"
	"github.com/sandeepkv93/medecon/internal/update"
	"github.com/sandeepkv93/medecon/internal/watcher"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "medecon: create data dir: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "medecon: open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		fmt.Fprintf(os.Stderr, "medecon: migrate store: %v\n", err)
		os.Exit(1)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		desktop := update.ExecDesktopNotifier{}
		if desktop.Available() {
			notifier = desktop
		} else {
			log.Printf("medecon: desktop notifier unavailable, reminders stay in-app")
			cfg.DesktopNotifications = false
		}
	}

	m := update.NewModelWithRuntime(store, engine, notifier, cfg)

	if cfg.WatchStore {
		w, err := watcher.New(cfg.DBPath)
		if err != nil {
			log.Printf("medecon: store watcher disabled: %v", err)
		} else {
			w.Start()
			defer w.Stop()
			m.Reloads = w.Events
		}
	}

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "medecon failed: %v\n", err)
		os.Exit(1)
	}
}
