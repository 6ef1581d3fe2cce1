package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/session"
)

// ErrInvalidScript is returned for script lines that cannot be parsed.
var ErrInvalidScript = errors.New("invalid script")

// scriptRunner applies an editing script to a session. Each line is one of:
//
//	select all
//	select none
//	select text <text>
//	select <anchor> [<focus>]
//	toggle <command>
//	hotkey <binding>
//
// Blank lines and lines starting with # are ignored. The selection carries
// over between lines and follows each command's remapped selection.
type scriptRunner struct {
	sess   *session.Session
	logger *log.Logger
	sel    *doctree.Range

	changes int
}

func newScriptRunner(sess *session.Session, logger *log.Logger) *scriptRunner {
	return &scriptRunner{sess: sess, logger: logger}
}

// Run executes the script read from r. It stops at the first failing line.
func (s *scriptRunner) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.runLine(ctx, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

// Selection returns the selection after the last line.
func (s *scriptRunner) Selection() *doctree.Range {
	return s.sel
}

// Changes returns how many commands changed the document.
func (s *scriptRunner) Changes() int {
	return s.changes
}

func (s *scriptRunner) runLine(ctx context.Context, line string) error {
	directive, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch directive {
	case "select":
		return s.selectLine(rest)
	case "toggle":
		if rest == "" {
			return fmt.Errorf("%w: toggle needs a command", ErrInvalidScript)
		}
		return s.dispatch(ctx, rest)
	case "hotkey":
		if rest == "" {
			return fmt.Errorf("%w: hotkey needs a binding", ErrInvalidScript)
		}
		cmd, ok := s.sess.Registry().GetByHotkey(rest)
		if !ok {
			return fmt.Errorf("%w: nothing bound to %q", command.ErrUnknownCommand, rest)
		}
		return s.dispatch(ctx, cmd.Name())
	default:
		return fmt.Errorf("%w: unknown directive %q", ErrInvalidScript, directive)
	}
}

func (s *scriptRunner) selectLine(args string) error {
	doc := s.sess.Document()
	kind, rest, _ := strings.Cut(args, " ")

	switch kind {
	case "":
		return fmt.Errorf("%w: select needs arguments", ErrInvalidScript)
	case "all":
		s.sel = selectAll(doc)
	case "none":
		s.sel = nil
	case "text":
		needle := strings.TrimSpace(rest)
		if unquoted, err := strconv.Unquote(needle); err == nil {
			needle = unquoted
		}
		if needle == "" {
			return fmt.Errorf("%w: select text needs text", ErrInvalidScript)
		}
		sel, err := selectText(doc, needle)
		if err != nil {
			return err
		}
		s.sel = sel
	default:
		fields := strings.Fields(args)
		if len(fields) > 2 {
			return fmt.Errorf("%w: select takes an anchor and an optional focus", ErrInvalidScript)
		}
		focus := ""
		if len(fields) == 2 {
			focus = fields[1]
		}
		sel, err := selectPoints(doc, fields[0], focus)
		if err != nil {
			return err
		}
		s.sel = sel
	}
	return nil
}

func (s *scriptRunner) dispatch(ctx context.Context, name string) error {
	result, err := s.sess.Dispatch(ctx, name, s.sel)
	if err != nil {
		return err
	}
	if result.Changed {
		s.changes++
	}
	s.sel = result.Selection
	s.logger.Debug("script command",
		logging.FieldCommand, name,
		logging.FieldChanged, result.Changed,
		logging.FieldSelection, s.sel)
	return nil
}
