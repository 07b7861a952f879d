// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line flags and usage text for quizrun.
//
// CLI: Comprehensive help and examples
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Options holds the parsed process arguments.
type Options struct {
	// ConfigPath overrides config file discovery
	ConfigPath string
	// Driver overrides storage.driver
	Driver string
	// DSN overrides storage.dsn
	DSN string
	// NoColor disables colored output
	NoColor bool
	// NoSeed skips the starter quizzes
	NoSeed bool
	// InitConfig writes the default config file and exits
	InitConfig bool

	Help    bool
	Version bool

	// FirstCommand is run before the first prompt, if not empty
	FirstCommand string
}

const usageText = `quizrun - interactive quiz shell

Create, review and drill your own question/answer pairs.

Usage:
  quizrun [flags] [command [args...]]

A command given on the command line runs before the first prompt;
"quizrun q" runs nothing and exits.

Flags:
  --config PATH     Config file (default ~/.quizrun/config.toml)
  --driver NAME     Quiz store: sqlite, postgres, json or memory
  --db DSN          Database DSN or store file path
  --no-color        Disable colored output
  --no-seed         Do not add the starter quizzes to an empty store
  --init-config     Write the default config file and exit
  -h, --help        Show this help
  -v, --version     Show version information

Commands (at the quiz > prompt):
  h|help            Show the commands
  list              List the quizzes
  show <id>         Show a quiz with its answer
  add               Add a quiz
  delete <id>       Delete a quiz
  edit <id>         Edit a quiz
  test <id>         Test yourself on one quiz
  p|play            Answer every quiz in random order
  export <format> [--blank] [path]
                    Write every quiz to a markdown or json file;
                    --blank leaves the answers out of a markdown sheet
  credits           Show the credits
  q|quit            Quit

Environment:
  QUIZRUN_HOME       Config directory (default ~/.quizrun)
  QUIZRUN_DB_DRIVER  Overrides storage.driver
  QUIZRUN_DB_DSN     Overrides storage.dsn
  QUIZRUN_PROMPT     Overrides ui.prompt
  QUIZRUN_LOG_FILE   Event log file
  NO_COLOR           Disable colors (https://no-color.org/)

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "quizrun version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

var boolFlagNames = []string{"no-color", "no-seed", "init-config", "h", "help", "v", "version"}

var stringFlagNames = map[string]bool{"config": true, "driver": true, "db": true}

// ParseArgs parses process arguments (without the program name).
func ParseArgs(raw []string) (Options, error) {
	p := NewArgParser(raw, boolFlagNames...)

	for _, name := range p.FlagNames() {
		if !stringFlagNames[name] && !isBoolFlag(name) {
			return Options{}, &UsageError{Flag: name, Reason: "unknown flag"}
		}
	}
	for name := range stringFlagNames {
		if p.HasFlag(name) && p.Flag(name) == "" {
			return Options{}, &UsageError{Flag: name, Reason: "requires a value"}
		}
	}

	opts := Options{
		ConfigPath:   p.Flag("config"),
		Driver:       p.Flag("driver"),
		DSN:          p.Flag("db"),
		NoColor:      p.BoolFlag("no-color"),
		NoSeed:       p.BoolFlag("no-seed"),
		InitConfig:   p.BoolFlag("init-config"),
		Help:         p.BoolFlag("h") || p.BoolFlag("help"),
		Version:      p.BoolFlag("v") || p.BoolFlag("version"),
		FirstCommand: joinCommand(p.Positional()),
	}
	return opts, nil
}

func isBoolFlag(name string) bool {
	for _, n := range boolFlagNames {
		if n == name {
			return true
		}
	}
	return false
}

// joinCommand rebuilds a command line, quoting arguments that need it.
func joinCommand(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(a) + `"`
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}
