package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chatdash/internal/api"
	"chatdash/internal/config"
	"chatdash/internal/models"
	"chatdash/internal/poller"
	"chatdash/internal/state"
	"chatdash/internal/ui"
)

func main() {
	cfg := config.Load()

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	client := api.New(cfg.APIBaseURL, cfg.AIBaseURL, cfg.RequestTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bootstrap reads may fail when the server is down; the dashboard
	// starts on defaults and the pollers catch up once it returns.
	bootCtx, bootCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	settings, err := client.Settings(bootCtx)
	if err != nil {
		logger.Warn("settings bootstrap failed, using defaults", "err", err)
		settings = models.DefaultSettings()
	}
	store := state.New(settings)
	if id, err := client.MyUserID(bootCtx); err != nil {
		logger.Warn("user id bootstrap failed", "err", err)
	} else {
		store.SetMyUserID(id)
	}
	bootCancel()

	model := ui.New(store, client, cfg, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	p := poller.New(client, store, func(event any) { program.Send(event) }, cfg, logger)
	go p.Run(ctx)

	if _, err := program.Run(); err != nil {
		logger.Error("ui loop failed", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file; stdout belongs to the TUI.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
