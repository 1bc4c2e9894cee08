package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/adanyl0v/taskboard/internal/client"
	"github.com/adanyl0v/taskboard/internal/config"
	"github.com/adanyl0v/taskboard/internal/tasklist"
	"github.com/adanyl0v/taskboard/internal/tui"
)

// RunTUI reads the client env and runs the terminal client until the
// user quits or the process is interrupted.
func RunTUI() error {
	cfg, err := config.ReadClientEnv()
	if err != nil {
		return fmt.Errorf("read env: %w", err)
	}

	logger, closer, err := NewClientLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info().
		Str("api_url", cfg.APIURL).
		Int("page_size", cfg.PageSize).
		Msg("starting tui")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIURL, cfg.RequestTimeout)
	engine := tasklist.NewEngine(api, cfg.PageSize, tasklist.WithLogger(logger))

	if err := tui.Run(ctx, engine, api, tui.WithLogger(logger)); err != nil {
		logger.Error().Err(err).Msg("tui stopped")
		return err
	}
	logger.Info().Msg("tui stopped")
	return nil
}
