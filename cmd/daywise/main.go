package main

import (
	"fmt"
	"os"
)

const usageText = `daywise keeps short prioritized notes.

Usage:
  daywise <command> [flags]

Commands:
  ui       run terminal UI
  list     list notes
  add      create a note
  show     print one note
  delete   delete a note
  config   print configuration (effective or defaults)
  version  print build version
  help     show help

Flags:
  -h, --help   show help

Examples:
  daywise ui
  daywise list --sort priority --format json
  daywise add --title Groceries --content "milk, eggs" --priority high
  daywise config --default --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
