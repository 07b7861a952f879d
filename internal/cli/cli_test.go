// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		bools      []string
		positional []string
		validate   func(*testing.T, *ArgParser)
	}{
		{
			name:       "positional only",
			args:       []string{"show", "3"},
			positional: []string{"show", "3"},
		},
		{
			name:       "string flag with separate value",
			args:       []string{"--driver", "memory", "list"},
			positional: []string{"list"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("driver") != "memory" {
					t.Errorf("Flag(driver) = %q, want %q", p.Flag("driver"), "memory")
				}
			},
		},
		{
			name:       "string flag with equals",
			args:       []string{"--db=/tmp/q.db"},
			positional: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("db") != "/tmp/q.db" {
					t.Errorf("Flag(db) = %q, want %q", p.Flag("db"), "/tmp/q.db")
				}
			},
		},
		{
			name:       "declared bool does not take a value",
			args:       []string{"--no-color", "show", "3"},
			bools:      []string{"no-color"},
			positional: []string{"show", "3"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("no-color") {
					t.Error("BoolFlag(no-color) = false, want true")
				}
			},
		},
		{
			name:       "explicit bool value",
			args:       []string{"--no-color=false"},
			bools:      []string{"no-color"},
			positional: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("no-color") {
					t.Error("BoolFlag(no-color) = true, want false")
				}
				if !p.HasFlag("no-color") {
					t.Error("HasFlag(no-color) = false, want true")
				}
			},
		},
		{
			name:       "flags stop at first positional",
			args:       []string{"show", "-1", "--driver", "x"},
			positional: []string{"show", "-1", "--driver", "x"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.HasFlag("driver") {
					t.Error("flag after the command name was parsed")
				}
			},
		},
		{
			name:       "double dash ends flags",
			args:       []string{"--", "--help"},
			bools:      []string{"help"},
			positional: []string{"--help"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("help") {
					t.Error("BoolFlag(help) = true after --")
				}
			},
		},
		{
			name:       "trailing string flag becomes bool",
			args:       []string{"--driver"},
			positional: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.HasFlag("driver") || p.Flag("driver") != "" {
					t.Error("trailing --driver should be present without a value")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			assert.Equal(t, tt.positional, p.Positional())
			assert.Equal(t, tt.args, p.Raw())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagOrDefault(t *testing.T) {
	p := NewArgParser([]string{"--driver", "json"})
	assert.Equal(t, "json", p.FlagOrDefault("driver", "sqlite"))
	assert.Equal(t, "sqlite", p.FlagOrDefault("missing", "sqlite"))
}

func TestArgParser_EmptyArgs(t *testing.T) {
	p := NewArgParser(nil)
	assert.Empty(t, p.Positional())
	assert.Empty(t, p.FlagNames())
}

// =============================================================================
// PARSE ARGS TESTS
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Options
		wantErr string
	}{
		{
			name: "no args",
			args: nil,
			want: Options{},
		},
		{
			name: "all overrides",
			args: []string{"--config", "c.toml", "--driver", "memory", "--db", "x", "--no-color", "--no-seed"},
			want: Options{ConfigPath: "c.toml", Driver: "memory", DSN: "x", NoColor: true, NoSeed: true},
		},
		{
			name: "short help",
			args: []string{"-h"},
			want: Options{Help: true},
		},
		{
			name: "version",
			args: []string{"--version"},
			want: Options{Version: true},
		},
		{
			name: "first command",
			args: []string{"--no-color", "show", "3"},
			want: Options{NoColor: true, FirstCommand: "show 3"},
		},
		{
			name: "first command keeps spaces",
			args: []string{"show", "two words"},
			want: Options{FirstCommand: `show "two words"`},
		},
		{
			name:    "unknown flag",
			args:    []string{"--verbose"},
			wantErr: "invalid flag --verbose: unknown flag",
		},
		{
			name:    "missing value",
			args:    []string{"--driver"},
			wantErr: "invalid flag --driver: requires a value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Equal(t, ExitUsageError, GetExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"list"}, "list"},
		{[]string{"show", ""}, `show ""`},
		{[]string{"show", `a"b`}, `show "a\"b"`},
	}
	for _, tt := range tests {
		if got := joinCommand(tt.args); got != tt.want {
			t.Errorf("joinCommand(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Reason: "bad"}, ExitUsageError},
		{"startup", &StartupError{Stage: "storage", Err: errors.New("boom")}, ExitGeneralError},
		{"plain", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestStartupError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &StartupError{Stage: "storage", Err: inner}
	assert.Equal(t, "storage: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}

// =============================================================================
// APP TESTS
// =============================================================================

// newTestApp returns an App reading script from stdin with no terminal.
func newTestApp(t *testing.T, script string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("QUIZRUN_HOME", t.TempDir())
	for _, key := range []string{"QUIZRUN_DB_DRIVER", "QUIZRUN_DB_DSN", "QUIZRUN_PROMPT", "QUIZRUN_LOG_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := &App{
		Stdin:       strings.NewReader(script),
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: func() bool { return false },
		ColorTTY:    func() bool { return false },
		Getenv:      func(string) string { return "" },
	}
	return app, stdout, stderr
}

func TestApp_Help(t *testing.T) {
	app, stdout, _ := newTestApp(t, "")
	code := app.Main(context.Background(), []string{"--help"})
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "p|play")
}

func TestApp_Version(t *testing.T) {
	app, stdout, _ := newTestApp(t, "")
	code := app.Main(context.Background(), []string{"-v"})
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "quizrun version "+Version)
}

func TestApp_UsageError(t *testing.T) {
	app, _, stderr := newTestApp(t, "")
	code := app.Main(context.Background(), []string{"--bogus"})
	assert.Equal(t, ExitUsageError, code)
	assert.Contains(t, stderr.String(), "unknown flag")
	assert.Contains(t, stderr.String(), "--help")
}

func TestApp_ScriptedSession(t *testing.T) {
	app, stdout, stderr := newTestApp(t, "list\nadd\nCapital of Chile\nSantiago\nshow 5\nq\n")
	code := app.Main(context.Background(), []string{"--driver", "memory", "--no-color"})

	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "[1]: Capital of Italy")
	assert.Contains(t, out, "[4]: Capital of Portugal")
	assert.Contains(t, out, "Added [5]: Capital of Chile => Santiago")
	assert.Contains(t, out, "[5]: Capital of Chile => Santiago")
	assert.NotContains(t, out, "\x1b[")
}

func TestApp_EndOfInputIsNormalExit(t *testing.T) {
	app, stdout, _ := newTestApp(t, "list\n")
	code := app.Main(context.Background(), []string{"--driver", "memory", "--no-seed"})
	assert.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stdout.String(), "Capital of")
}

func TestApp_FirstCommandQuit(t *testing.T) {
	app, stdout, _ := newTestApp(t, "list\n")
	code := app.Main(context.Background(), []string{"--driver", "memory", "q"})
	assert.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stdout.String(), "Capital of", "script must not run after quit")
}

func TestApp_FirstCommandRunsBeforeScript(t *testing.T) {
	app, stdout, _ := newTestApp(t, "q\n")
	code := app.Main(context.Background(), []string{"--driver", "memory", "show", "2"})
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "[2]: Capital of France => Paris")
}

func TestApp_JSONStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")

	app, _, _ := newTestApp(t, "add\nCapital of Peru\nLima\nq\n")
	require.Equal(t, ExitSuccess, app.Main(context.Background(), []string{"--driver", "json", "--db", path, "--no-seed"}))

	app, stdout, _ := newTestApp(t, "list\nq\n")
	require.Equal(t, ExitSuccess, app.Main(context.Background(), []string{"--driver", "json", "--db", path}))
	assert.Contains(t, stdout.String(), "[1]: Capital of Peru")
	assert.NotContains(t, stdout.String(), "Capital of Italy", "seeding skips a non-empty store")
}

func TestApp_BadDriverIsStartupError(t *testing.T) {
	app, _, stderr := newTestApp(t, "")
	code := app.Main(context.Background(), []string{"--driver", "oracle"})
	assert.Equal(t, ExitGeneralError, code)
	assert.Contains(t, stderr.String(), "config")
}

func TestApp_InitConfig(t *testing.T) {
	app, stdout, _ := newTestApp(t, "")
	path := filepath.Join(t.TempDir(), "config.toml")

	require.Equal(t, ExitSuccess, app.Main(context.Background(), []string{"--init-config", "--config", path}))
	assert.Contains(t, stdout.String(), "Wrote "+path)
	assert.FileExists(t, path)

	// A second run refuses to overwrite.
	assert.Equal(t, ExitGeneralError, app.Main(context.Background(), []string{"--init-config", "--config", path}))
}

func TestApp_PipedInputShowsQuestions(t *testing.T) {
	app, stdout, stderr := newTestApp(t, "test 1\nRome\np\nwrong\nq\n")
	code := app.Main(context.Background(), []string{"--driver", "memory", "--no-color"})

	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Capital of Italy Rome\nYour answer is:")
	assert.Regexp(t, `Capital of \w+: wrong\nINCORRECT\.`, out)
	assert.Contains(t, out, "quiz > q\n")
}

func TestApp_FreshHomeWithDefaultStore(t *testing.T) {
	app, stdout, stderr := newTestApp(t, "list\nq\n")
	root := t.TempDir()
	home := filepath.Join(root, "fresh-home")
	t.Setenv("QUIZRUN_HOME", home)
	t.Setenv("QUIZRUN_LOG_FILE", filepath.Join(root, "logs", "q.log"))

	code := app.Main(context.Background(), nil)

	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "[1]: Capital of Italy")
	assert.FileExists(t, filepath.Join(home, "quizzes.db"))
}

func TestApp_InitConfigDefaultPath(t *testing.T) {
	app, stdout, _ := newTestApp(t, "")

	require.Equal(t, ExitSuccess, app.Main(context.Background(), []string{"--init-config"}))

	path := filepath.Join(os.Getenv("QUIZRUN_HOME"), "config.toml")
	assert.Contains(t, stdout.String(), "Wrote "+path)
	assert.FileExists(t, path)
}
