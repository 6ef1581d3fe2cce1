package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richedit/internal/cli"
	"github.com/yaklabco/richedit/internal/configloader"
	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/store"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "richedit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expected := []string{
		"show", "toggle", "run", "export", "import",
		"reset", "commands", "config", "init", "version",
	}
	for _, name := range expected {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color", "backend", "store-path", "key"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag %q", name)
	}
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestSelectionFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, sub := range []string{"show", "toggle"} {
		subCmd, _, err := cmd.Find([]string{sub})
		require.NoError(t, err)
		for _, name := range []string{"anchor", "focus", "select", "all"} {
			assert.NotNil(t, subCmd.Flags().Lookup(name), "%s is missing --%s", sub, name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "richedit")
	assert.Contains(t, stdout.String(), "test-version")
	assert.Contains(t, stdout.String(), "test-commit")
}

func TestRootHelpListsHotkeys(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Editor Hotkeys:")
	assert.Contains(t, stdout.String(), "mod+shift+.")
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"plain", errors.New("boom"), cli.ExitFailure},
		{"config load", fmt.Errorf("x: %w", cli.ErrConfigLoad), cli.ExitDataError},
		{"validation", &configloader.ValidationError{Field: "color"}, cli.ExitDataError},
		{"unknown command", fmt.Errorf("toggle: %w", command.ErrUnknownCommand), cli.ExitInvalidUsage},
		{"invalid hotkey", command.ErrInvalidHotkey, cli.ExitInvalidUsage},
		{"invalid selection", cli.ErrInvalidSelection, cli.ExitInvalidUsage},
		{"invalid script", fmt.Errorf("line 3: %w", cli.ErrInvalidScript), cli.ExitInvalidUsage},
		{
			"selection wrapping invariant",
			fmt.Errorf("%w: %w", cli.ErrInvalidSelection, &doctree.InvariantError{Message: "no block"}),
			cli.ExitInvalidUsage,
		},
		{"malformed document", fmt.Errorf("import: %w", doctree.ErrMalformedDocument), cli.ExitDataError},
		{"invariant", &doctree.InvariantError{Message: "empty element"}, cli.ExitDataError},
		{"store key", store.ErrInvalidKey, cli.ExitInvalidUsage},
		{"store closed", store.ErrClosed, cli.ExitIOError},
		{"path", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, cli.ExitIOError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, cli.ExitCodeFromError(tc.err))
		})
	}
}
