package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/richedit/internal/configloader"
	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/store"
)

// Exit codes for richedit.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a command failed for any other reason.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage, such as an
	// unknown command or a selection outside the document.
	ExitInvalidUsage = 64

	// ExitDataError indicates invalid configuration or document data.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file or store I/O errors.
	ExitIOError = 74
)

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	var invariantErr *doctree.InvariantError
	var pathErr *fs.PathError

	switch {
	case errors.As(err, &validationErr), errors.Is(err, ErrConfigLoad):
		return ExitDataError
	case errors.Is(err, ErrInvalidSelection),
		errors.Is(err, ErrInvalidScript):
		return ExitInvalidUsage
	case errors.As(err, &invariantErr), errors.Is(err, doctree.ErrMalformedDocument):
		return ExitDataError
	case errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrInvalidHotkey),
		errors.Is(err, store.ErrInvalidKey),
		errors.Is(err, store.ErrUnknownBackend):
		return ExitInvalidUsage
	case errors.Is(err, store.ErrClosed), errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
