package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"daywise/internal/config"
	"daywise/internal/notes"
	"daywise/internal/types"
)

type AddCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	open       repositoryOpener
	options    []notes.Option
}

func NewAddCommand(stdout, stderr io.Writer, loadConfig func() (config.Config, error), open repositoryOpener, options ...notes.Option) *AddCommand {
	return &AddCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		open:       open,
		options:    options,
	}
}

func (c *AddCommand) Run(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	priorityFlag := fs.String("priority", types.DefaultPriority.String(), "priority: high|medium|normal|low")
	if err := fs.Parse(args); err != nil {
		return err
	}
	priority, err := types.ParsePriority(*priorityFlag)
	if err != nil {
		return err
	}

	session, err := openNoteSession(c.stderr, c.loadConfig, c.open)
	if err != nil {
		return err
	}
	defer session.Close()

	editor := notes.NewEditorManager(session.repo.Notes(), append(session.managerOptions(), c.options...)...)
	defer editor.Close()
	editor.ChangeTitle(*title)
	editor.ChangeContent(*content)
	editor.SelectPriority(priority)
	if !editor.CanSave() {
		return errors.New("title and content are required")
	}
	note, err := editor.Save(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, note.ID)
	return nil
}
