package main

import (
	"context"
	"flag"
	"io"

	"daywise/internal/config"
	"daywise/internal/notes"
	"daywise/internal/types"
)

type ListCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	open       repositoryOpener
}

func NewListCommand(stdout, stderr io.Writer, loadConfig func() (config.Config, error), open repositoryOpener) *ListCommand {
	return &ListCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		open:       open,
	}
}

func (c *ListCommand) Run(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	sortFlag := fs.String("sort", "recency", "sort order: recency|priority")
	format := fs.String("format", outputFormatText, "output format: text|json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sortOption, err := types.ParseSortOption(*sortFlag)
	if err != nil {
		return err
	}
	resolvedFormat, err := resolveOutputFormat(*format)
	if err != nil {
		return err
	}

	session, err := openNoteSession(c.stderr, c.loadConfig, c.open)
	if err != nil {
		return err
	}
	defer session.Close()

	manager := notes.NewHomeManager(session.repo.Notes(), append(session.managerOptions(), notes.WithSort(sortOption))...)
	defer manager.Close()
	if err := manager.LoadNotes(context.Background()); err != nil {
		return err
	}
	list := manager.Snapshot().Notes

	if resolvedFormat == outputFormatJSON {
		out := make([]noteOutput, 0, len(list))
		for _, note := range list {
			out = append(out, toNoteOutput(note))
		}
		return writeJSON(c.stdout, out)
	}
	printNotes(c.stdout, list)
	return nil
}
