package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"daywise/internal/config"
	"daywise/internal/store"
)

type ShowCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	open       repositoryOpener
}

func NewShowCommand(stdout, stderr io.Writer, loadConfig func() (config.Config, error), open repositoryOpener) *ShowCommand {
	return &ShowCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		open:       open,
	}
}

func (c *ShowCommand) Run(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", outputFormatText, "output format: text|json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("show requires exactly one note id")
	}
	id := fs.Arg(0)
	resolvedFormat, err := resolveOutputFormat(*format)
	if err != nil {
		return err
	}

	session, err := openNoteSession(c.stderr, c.loadConfig, c.open)
	if err != nil {
		return err
	}
	defer session.Close()

	note, ok, err := session.repo.Notes().GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrNoteNotFound, id)
	}
	if resolvedFormat == outputFormatJSON {
		return writeJSON(c.stdout, toNoteOutput(note))
	}
	printNote(c.stdout, note)
	return nil
}
