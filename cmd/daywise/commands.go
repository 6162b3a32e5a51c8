package main

import (
	"context"
	"io"
	"os"

	"daywise/internal/app"
	"daywise/internal/config"
	"daywise/internal/store"
)

type commandRunner interface {
	Run(args []string) error
}

type repositoryOpener func(cfg config.Config) (store.Repository, error)

type commandWiring struct {
	stdout         io.Writer
	stderr         io.Writer
	loadConfig     func() (config.Config, error)
	openRepository repositoryOpener
	runUI          func(ctx context.Context, opts app.Options) error
	version        string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:         stdout,
		stderr:         stderr,
		loadConfig:     config.Load,
		openRepository: openConfiguredRepository,
		runUI:          app.Run,
		version:        buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":      NewUICommand(wiring.stderr, wiring.loadConfig, wiring.openRepository, wiring.runUI),
		"list":    NewListCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.openRepository),
		"add":     NewAddCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.openRepository),
		"show":    NewShowCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.openRepository),
		"delete":  NewDeleteCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.openRepository),
		"config":  NewConfigCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
		"version": NewVersionCommand(wiring.stdout, wiring.version),
	}
}

func openConfiguredRepository(cfg config.Config) (store.Repository, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	return store.Open(store.RepositoryOptions{
		Backend: cfg.StorageBackend(),
		Path:    path,
	})
}
