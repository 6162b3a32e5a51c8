package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"daywise/internal/app"
	"daywise/internal/config"
	"daywise/internal/logging"
	"daywise/internal/types"
)

type UICommand struct {
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	open       repositoryOpener
	runUI      func(ctx context.Context, opts app.Options) error
	logPath    func() (string, error)
}

func NewUICommand(stderr io.Writer, loadConfig func() (config.Config, error), open repositoryOpener, runUI func(ctx context.Context, opts app.Options) error) *UICommand {
	return &UICommand{
		stderr:     stderr,
		loadConfig: loadConfig,
		open:       open,
		runUI:      runUI,
		logPath:    config.LogPath,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sortFlag := fs.String("sort", "", "initial sort: recency|priority (defaults to config)")
	plain := fs.Bool("plain", false, "show note content without markdown rendering")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	rawSort := *sortFlag
	if rawSort == "" {
		rawSort = cfg.DefaultSort()
	}
	sortOption, err := types.ParseSortOption(rawSort)
	if err != nil {
		return err
	}

	// stdout belongs to the terminal UI, so logs go to a file.
	logger := logging.Nop()
	if path, err := c.logPath(); err == nil {
		fileLogger, closer, err := logging.NewFile(path, logging.ParseLevel(cfg.LogLevel()), logging.ParseFormat(cfg.LogFormat()))
		if err == nil {
			defer closer.Close()
			logger = fileLogger
		}
	}

	repo, err := c.open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository failed", logging.F("err", err))
		}
	}()
	logger.Info("ui starting", logging.F("backend", repo.Backend()), logging.F("sort", sortOption))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.runUI(ctx, app.Options{
		Store:        repo.Notes(),
		Logger:       logger,
		RefreshDelay: cfg.RefreshDelay(),
		LoadDelay:    cfg.LoadDelay(),
		DefaultSort:  sortOption,
		Markdown:     cfg.MarkdownEnabled() && !*plain,
	})
}
