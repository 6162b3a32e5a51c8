package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"daywise/internal/config"
	"daywise/internal/notes"
)

type DeleteCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	open       repositoryOpener
}

func NewDeleteCommand(stdout, stderr io.Writer, loadConfig func() (config.Config, error), open repositoryOpener) *DeleteCommand {
	return &DeleteCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		open:       open,
	}
}

func (c *DeleteCommand) Run(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("delete requires exactly one note id")
	}
	id := fs.Arg(0)

	session, err := openNoteSession(c.stderr, c.loadConfig, c.open)
	if err != nil {
		return err
	}
	defer session.Close()

	editor := notes.NewEditorManager(session.repo.Notes(), session.managerOptions()...)
	defer editor.Close()
	if err := editor.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "deleted %s\n", id)
	return nil
}
