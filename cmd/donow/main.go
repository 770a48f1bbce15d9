package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/donow-app/donow/adapter/cli"
	"github.com/donow-app/donow/adapter/cli/donow"
	"github.com/donow-app/donow/adapter/cli/event"
	"github.com/donow-app/donow/adapter/cli/item"
	"github.com/donow-app/donow/adapter/cli/priority"
	"github.com/donow-app/donow/adapter/cli/timelog"
	"github.com/donow-app/donow/internal/app"
	"github.com/donow-app/donow/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	var container *app.Container
	if cfg.IsLocalMode() {
		logger.Info("starting in local mode with SQLite", "database", cfg.SQLitePath)
		container, err = app.NewLocalContainer(ctx, cfg, logger)
	} else {
		container, err = app.NewContainer(ctx, cfg, logger)
	}

	var cliApp *cli.App
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running without a backend", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp = cli.NewApp(
			container.NewItemHandler,
			container.FinishItemHandler,
			container.FieldHandler,
			container.ParentItemHandler,
			container.CoverItemHandler,
			container.DependencyHandler,
			container.EventHandler,
			container.RecordTimeSpentHandler,
			container.DeclarePriorityHandler,
			container.GetItemHandler,
			container.ListItemsHandler,
			container.GetDoNowListHandler,
		)
		cliApp.SetCurrentUserID(container.CurrentUserID)
	}

	cli.SetApp(cliApp)

	cli.AddCommand(item.Cmd)
	cli.AddCommand(event.Cmd)
	cli.AddCommand(timelog.Cmd)
	cli.AddCommand(priority.Cmd)
	cli.AddCommand(donow.Cmd)

	cli.Execute()
}
