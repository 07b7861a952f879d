// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Process wiring: config, logging, storage, terminal and REPL.

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jeranaias/quizrun/internal/commands"
	"github.com/jeranaias/quizrun/internal/config"
	"github.com/jeranaias/quizrun/internal/output"
	"github.com/jeranaias/quizrun/internal/prompt"
	"github.com/jeranaias/quizrun/internal/storage"
)

// App runs one quizrun process. The zero value is not usable; see NewApp.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive reports whether stdin is a terminal
	Interactive func() bool
	// ColorTTY reports whether stdout is a terminal
	ColorTTY func() bool
	// Getenv reads the environment
	Getenv func(string) string
}

// NewApp creates an App bound to the process's standard streams.
func NewApp() *App {
	return &App{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: output.IsTTY,
		ColorTTY:    output.IsStdoutTTY,
		Getenv:      os.Getenv,
	}
}

// Main runs the process and returns its exit code.
func (a *App) Main(ctx context.Context, args []string) int {
	err := a.Run(ctx, args)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		if GetExitCode(err) == ExitUsageError {
			fmt.Fprintln(a.Stderr, "Run 'quizrun --help' for usage.")
		}
	}
	return GetExitCode(err)
}

// Run parses args and runs the session until quit.
func (a *App) Run(ctx context.Context, args []string) error {
	opts, err := ParseArgs(args)
	if err != nil {
		return err
	}
	if opts.Help {
		PrintUsage(a.Stdout)
		return nil
	}
	if opts.Version {
		PrintVersion(a.Stdout)
		return nil
	}
	if opts.InitConfig {
		return a.initConfig(opts)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return &StartupError{Stage: "config", Err: err}
	}
	// Default store, history and log files live in the config directory.
	if err := config.EnsureConfigDir(); err != nil {
		return &StartupError{Stage: "config", Err: err}
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return &StartupError{Stage: "log", Err: err}
	}
	defer closeLog()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return &StartupError{Stage: "storage", Err: err}
	}
	defer store.Close()

	interactive := a.Interactive()
	p, err := a.newPrompter(cfg, interactive)
	if err != nil {
		return &StartupError{Stage: "terminal", Err: err}
	}
	defer p.Close()

	console := a.newConsole(cfg, opts)
	engine := commands.NewEngine(store, prompt.NewSequencer(p, interactive), console)

	if l, ok := p.(*prompt.Liner); ok {
		// Completion needs the engine's registry, so the liner is wired late.
		completer := commands.NewCompleter(engine.Registry())
		completer.IDsFn = quizIDs(ctx, store)
		l.SetCompleter(completer.Complete)
	}

	log.Printf("SESSION_START | version=%s driver=%s interactive=%t", Version, cfg.Storage.Driver, interactive)
	log.Printf("CONFIG_LOADED | %s", cfg)

	repl := &REPL{Engine: engine, Prompter: p, Prompt: cfg.UI.Prompt}
	return repl.Run(ctx, opts.FirstCommand)
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(opts Options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFromPath(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.Driver != "" {
		cfg.Storage.Driver = opts.Driver
	}
	if opts.DSN != "" {
		cfg.Storage.DSN = opts.DSN
	}
	if opts.NoColor {
		cfg.UI.Color = string(output.ColorNever)
	}
	if opts.NoSeed {
		cfg.Storage.Seed = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (a *App) initConfig(opts Options) error {
	path := opts.ConfigPath
	save := func(cfg *config.Config) error { return config.SaveTOML(cfg, path) }
	switch {
	case path == "":
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			return &StartupError{Stage: "config", Err: err}
		}
		save = config.Save
	case filepath.Ext(path) == ".json":
		save = func(cfg *config.Config) error { return config.SaveJSON(cfg, path) }
	}
	if _, err := os.Stat(path); err == nil {
		return &StartupError{Stage: "config", Err: fmt.Errorf("%s already exists", path)}
	}

	if err := save(config.Default()); err != nil {
		return &StartupError{Stage: "config", Err: err}
	}
	fmt.Fprintf(a.Stdout, "Wrote %s\n", path)
	return nil
}

// setupLogging sends the standard logger to the configured file, or
// discards it. The returned func restores nothing and closes the file.
func setupLogging(cfg *config.Config) (func(), error) {
	path, err := cfg.ResolvedLogFile()
	if err != nil {
		return nil, err
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	driver, err := storage.ParseDriver(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.ResolvedDSN()
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, storage.Options{
		Driver: driver,
		DSN:    dsn,
		Seed:   cfg.Storage.Seed,
	})
}

// newPrompter returns a line editor on a terminal and a script of stdin
// otherwise.
func (a *App) newPrompter(cfg *config.Config, interactive bool) (prompt.Prompter, error) {
	if !interactive {
		script, err := prompt.ReadScript(a.Stdin)
		if err != nil {
			return nil, err
		}
		script.Echo = a.Stdout
		return script, nil
	}
	history, err := cfg.ResolvedHistoryFile()
	if err != nil {
		return nil, err
	}
	return prompt.NewLiner(prompt.LinerOptions{HistoryFile: history}), nil
}

func (a *App) newConsole(cfg *config.Config, opts Options) *output.Console {
	mode, _ := output.ParseColorMode(cfg.UI.Color)
	colors := output.ColorsEnabled(mode, a.Getenv, a.ColorTTY())
	return output.NewConsole(a.Stdout, output.Options{
		Colors:   colors,
		Markdown: cfg.UI.Markdown,
		Width:    output.TerminalWidth(),
	})
}

// quizIDs lists stored ids for tab completion.
func quizIDs(ctx context.Context, store storage.Store) func() []string {
	return func() []string {
		quizzes, err := store.FindAll(ctx)
		if err != nil {
			return nil
		}
		ids := make([]string, len(quizzes))
		for i, q := range quizzes {
			ids[i] = strconv.Itoa(q.ID)
		}
		return ids
	}
}
