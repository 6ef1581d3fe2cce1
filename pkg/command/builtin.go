package command

import "github.com/yaklabco/richedit/pkg/doctree"

// Built-in command names.
const (
	NameBold      = "bold"
	NameItalic    = "italic"
	NameCode      = "code"
	NameQuote     = "quote"
	NameCodeBlock = "code-block"
)

//nolint:gochecknoinits // Built-ins register themselves like any other command.
func init() {
	RegisterBuiltins(DefaultRegistry)
}

// RegisterBuiltins adds the built-in commands and their aliases to reg.
func RegisterBuiltins(reg *Registry) {
	reg.Register(NewMarkCommand(NameBold, "Toggle bold on the selected text", "mod+b", doctree.MarkBold))
	reg.Register(NewMarkCommand(NameItalic, "Toggle italic on the selected text", "mod+i", doctree.MarkItalic))
	reg.Register(NewMarkCommand(NameCode, "Toggle inline code on the selected text", "mod+`", doctree.MarkCode))
	reg.Register(NewBlockCommand(NameQuote, "Turn the selected blocks into a block quote", "mod+shift+.",
		doctree.BlockQuote))
	reg.Register(NewBlockCommand(NameCodeBlock, "Turn the selected blocks into a code block", "mod+alt+c",
		doctree.BlockCodeBlock))

	for _, mark := range doctree.Marks() {
		reg.RegisterAlias("toggle-mark:"+mark.String(), mark.String())
	}
	reg.RegisterAlias("toggle-block:quote", NameQuote)
	reg.RegisterAlias("toggle-block:code-block", NameCodeBlock)
	reg.RegisterAlias("strong", NameBold)
	reg.RegisterAlias("em", NameItalic)
	reg.RegisterAlias("blockquote", NameQuote)
	reg.RegisterAlias("codeblock", NameCodeBlock)
}
