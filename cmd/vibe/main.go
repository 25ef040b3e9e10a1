package main

import (
	"fmt"
	"os"
)

const usageText = `vibe is a terminal chat transcript viewer with a virtualized message list.

Usage:
  vibe <command> [flags]

Commands:
  chat     open the chat UI
  config   print configuration (effective or defaults)
  version  print build version
  help     show help

Flags:
  -h, --help   show help

Chat flags:
  --file path     load a markdown transcript (messages separated by ---)
  --demo n        start with n generated messages
  --config path   read configuration from path instead of ~/.vibe/config.toml

Examples:
  vibe chat --demo 5000
  vibe chat --file notes/transcript.md
  vibe config --default --format toml
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
