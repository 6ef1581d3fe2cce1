package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/doctree"
)

func TestParseHotkey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "mod+b", want: "mod+b"},
		{input: "Ctrl+B", want: "mod+b"},
		{input: "cmd+shift+.", want: "mod+shift+."},
		{input: "Shift+Meta+period", want: "mod+shift+."},
		{input: "alt+mod+c", want: "mod+alt+c"},
		{input: "ctrl+backtick", want: "mod+`"},
		{input: "ctrl+cmd+i", want: "mod+i"},
		{input: "mod++", want: "mod++"},
		{input: "b", wantErr: true},
		{input: "ctrl", wantErr: true},
		{input: "", wantErr: true},
		{input: "mod+x+y", wantErr: true},
		{input: "mod++b", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := command.ParseHotkey(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, command.ErrInvalidHotkey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDefaultRegistry_Builtins(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"bold", "code", "code-block", "italic", "quote"},
		command.DefaultRegistry.Names(),
	)

	tests := []struct {
		key  string
		want string
		kind command.Kind
	}{
		{"bold", "bold", command.KindMark},
		{"toggle-mark:italic", "italic", command.KindMark},
		{"ctrl+`", "code", command.KindMark},
		{"Cmd+Shift+.", "quote", command.KindBlock},
		{"blockquote", "quote", command.KindBlock},
		{"toggle-block:code-block", "code-block", command.KindBlock},
		{"mod+alt+c", "code-block", command.KindBlock},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Parallel()

			cmd, err := command.DefaultRegistry.Resolve(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cmd.Name())
			assert.Equal(t, tc.kind, cmd.Kind())
			assert.NotEmpty(t, cmd.Description())
		})
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := command.DefaultRegistry.Resolve("underline")
	require.ErrorIs(t, err, command.ErrUnknownCommand)
	assert.Contains(t, err.Error(), `"underline"`)

	_, err = command.DefaultRegistry.Resolve("mod+z")
	require.ErrorIs(t, err, command.ErrUnknownCommand)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := command.NewRegistry()
	reg.Register(command.NewMarkCommand("bold", "first", "mod+b", doctree.MarkBold))
	reg.Register(command.NewMarkCommand("bold", "second", "mod+shift+b", doctree.MarkBold))

	cmd, ok := reg.Get("bold")
	require.True(t, ok)
	assert.Equal(t, "second", cmd.Description())

	_, ok = reg.GetByHotkey("mod+b")
	assert.False(t, ok, "replaced command's hotkey should be released")

	cmd, ok = reg.GetByHotkey("ctrl+shift+B")
	require.True(t, ok)
	assert.Equal(t, "bold", cmd.Name())

	assert.Len(t, reg.Commands(), 1)
}

func TestRegistry_Aliases(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"strong", "toggle-mark:bold"}, command.DefaultRegistry.Aliases("bold"))
	assert.Empty(t, command.NewRegistry().Aliases("bold"))
}

func TestNewMarkCommand_InvalidHotkeyDropped(t *testing.T) {
	t.Parallel()

	cmd := command.NewMarkCommand("bold", "Bold", "b", doctree.MarkBold)
	assert.Empty(t, cmd.Hotkey())
	assert.Equal(t, doctree.MarkBold, cmd.Mark())
}

func TestCommand_ApplyAndActive(t *testing.T) {
	t.Parallel()

	doc := doctree.Default("")
	sel, ok := doctree.SelectAll(doc)
	require.True(t, ok)

	bold, err := command.DefaultRegistry.Resolve("bold")
	require.NoError(t, err)
	assert.False(t, bold.Active(doc, &sel))

	result := bold.Apply(doc, &sel)
	assert.True(t, result.Changed)
	assert.True(t, bold.Active(doc, result.Selection))

	quote, err := command.DefaultRegistry.Resolve("quote")
	require.NoError(t, err)

	result = quote.Apply(doc, result.Selection)
	assert.True(t, result.Changed)
	assert.Equal(t, doctree.BlockQuote, doc.Elements[0].Kind)
	assert.True(t, quote.Active(doc, result.Selection))

	block, ok := quote.(*command.BlockCommand)
	require.True(t, ok)
	assert.Equal(t, doctree.BlockQuote, block.BlockKind())
}

func TestRegistry_Bind(t *testing.T) {
	t.Parallel()

	reg := command.DefaultRegistry.Clone()

	require.NoError(t, reg.Bind("strong", "ctrl+shift+b"))

	bold, ok := reg.Get("bold")
	require.True(t, ok)
	assert.Equal(t, "mod+shift+b", bold.Hotkey())

	byKey, err := reg.Resolve("cmd+shift+b")
	require.NoError(t, err)
	assert.Equal(t, "bold", byKey.Name())

	_, ok = reg.GetByHotkey("mod+b")
	assert.False(t, ok, "old binding is released")

	original, ok := command.DefaultRegistry.Get("bold")
	require.True(t, ok)
	assert.Equal(t, "mod+b", original.Hotkey(), "clone leaves the default registry alone")
}

func TestRegistry_BindTakesHotkeyFromHolder(t *testing.T) {
	t.Parallel()

	reg := command.DefaultRegistry.Clone()
	require.NoError(t, reg.Bind("italic", "mod+b"))

	bold, ok := reg.Get("bold")
	require.True(t, ok)
	assert.Empty(t, bold.Hotkey())

	cmd, ok := reg.GetByHotkey("mod+b")
	require.True(t, ok)
	assert.Equal(t, "italic", cmd.Name())
	assert.Equal(t, command.KindMark, cmd.Kind())
}

func TestRegistry_BindErrors(t *testing.T) {
	t.Parallel()

	reg := command.DefaultRegistry.Clone()

	err := reg.Bind("underline", "mod+u")
	require.ErrorIs(t, err, command.ErrUnknownCommand)

	err = reg.Bind("bold", "b")
	require.ErrorIs(t, err, command.ErrInvalidHotkey)
}
