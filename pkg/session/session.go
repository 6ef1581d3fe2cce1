// Package session owns one document for the lifetime of an editing session:
// it loads the document from a store, dispatches formatting commands to it
// in order, and writes it back after every structural change.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/config"
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/format"
	"github.com/yaklabco/richedit/pkg/store"
)

// ErrUnknownCommand is returned by Dispatch for a name no command answers to.
var ErrUnknownCommand = command.ErrUnknownCommand

// Origin tells where the session document came from.
type Origin string

const (
	// OriginStored means the document was decoded from the store.
	OriginStored Origin = "stored"

	// OriginDefault means nothing was stored under the key.
	OriginDefault Origin = "default"

	// OriginRecovered means the stored value was malformed and replaced by
	// the default document.
	OriginRecovered Origin = "recovered"
)

// Options configures Open.
type Options struct {
	// Store is the storage collaborator. Required.
	Store store.Store

	// Key is the storage key. Defaults to config.DefaultKey.
	Key string

	// Placeholder is the text of the default document.
	Placeholder string

	// Registry resolves command names. Defaults to command.DefaultRegistry.
	Registry *command.Registry

	// Logger receives session logs. Defaults to the logger in the context.
	Logger *log.Logger
}

// Session owns a single document. It is not safe for concurrent use: one
// owner dispatches commands, and they apply strictly in dispatch order.
type Session struct {
	id          string
	store       store.Store
	key         string
	placeholder string
	registry    *command.Registry
	logger      *log.Logger

	doc    *doctree.Document
	origin Origin
}

// Open loads the document stored under opts.Key. A missing value yields the
// default document. A malformed value also yields the default document and
// logs a warning; it is never reported as an error. Store read errors are
// returned.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("open session: store is required")
	}

	sess := &Session{
		id:          uuid.NewString(),
		store:       opts.Store,
		key:         opts.Key,
		placeholder: opts.Placeholder,
		registry:    opts.Registry,
		logger:      opts.Logger,
	}
	if sess.key == "" {
		sess.key = config.DefaultKey
	}
	if sess.registry == nil {
		sess.registry = command.DefaultRegistry
	}
	if sess.logger == nil {
		sess.logger = logging.FromContext(ctx)
	}
	sess.logger = sess.logger.With(logging.FieldSession, sess.id, logging.FieldKey, sess.key)

	raw, ok, err := sess.store.Get(ctx, sess.key)
	if err != nil {
		return nil, fmt.Errorf("open session: load %q: %w", sess.key, err)
	}

	switch {
	case !ok:
		sess.doc = doctree.Default(sess.placeholder)
		sess.origin = OriginDefault
		sess.logger.Debug("no stored document, starting from default")
	default:
		doc, decodeErr := doctree.Deserialize(raw)
		if decodeErr != nil {
			sess.doc = doctree.Default(sess.placeholder)
			sess.origin = OriginRecovered
			sess.logger.Warn("stored document is malformed, starting from default",
				logging.FieldError, decodeErr)
			break
		}
		sess.doc = doc
		sess.origin = OriginStored
		sess.logger.Debug("loaded document",
			logging.FieldElements, len(doc.Elements),
			logging.FieldLeaves, doc.LeafCount())
	}

	return sess, nil
}

// ID returns the session identifier used in log output.
func (s *Session) ID() string {
	return s.id
}

// Key returns the storage key of the document.
func (s *Session) Key() string {
	return s.key
}

// Origin reports where the document came from when the session opened.
func (s *Session) Origin() Origin {
	return s.origin
}

// Document returns the session document. Callers must not keep it across
// Dispatch, Reset or Replace calls.
func (s *Session) Document() *doctree.Document {
	return s.doc
}

// Registry returns the registry commands are resolved against.
func (s *Session) Registry() *command.Registry {
	return s.registry
}

// Active reports whether the named command's format is on for sel.
func (s *Session) Active(name string, sel *doctree.Range) (bool, error) {
	cmd, err := s.registry.Resolve(name)
	if err != nil {
		return false, err
	}
	return cmd.Active(s.doc, sel), nil
}

// Dispatch resolves name (a command name, alias or hotkey), applies the
// command to the document and, when the tree changed, writes it to the
// store. A failed write is logged, not returned: the in-memory document is
// already updated and the next change retries the write.
func (s *Session) Dispatch(ctx context.Context, name string, sel *doctree.Range) (format.Result, error) {
	cmd, err := s.registry.Resolve(name)
	if err != nil {
		return format.Result{Selection: sel}, err
	}

	result := cmd.Apply(s.doc, sel)

	s.logger.Debug("dispatched command",
		logging.FieldCommand, cmd.Name(),
		logging.FieldChanged, result.Changed)

	if result.Changed {
		if err := s.Save(ctx); err != nil {
			s.logger.Error("persist document", logging.FieldCommand, cmd.Name(), logging.FieldError, err)
		}
	}

	return result, nil
}

// Save serializes the document and writes it under the session key.
func (s *Session) Save(ctx context.Context) error {
	encoded, err := doctree.Serialize(s.doc)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := s.store.Set(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("save %q: %w", s.key, err)
	}
	return nil
}

// Reset replaces the document with the default document and saves it.
func (s *Session) Reset(ctx context.Context) error {
	s.doc = doctree.Default(s.placeholder)
	s.origin = OriginDefault
	return s.Save(ctx)
}

// Replace validates doc, makes it the session document and saves it.
// An invalid document leaves the session unchanged.
func (s *Session) Replace(ctx context.Context, doc *doctree.Document) error {
	if err := doctree.Validate(doc); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	s.doc = doc
	return s.Save(ctx)
}
