package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/richedit/internal/configloader"
	"github.com/yaklabco/richedit/internal/logging"
	"github.com/yaklabco/richedit/internal/ui/pretty"
	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/config"
	"github.com/yaklabco/richedit/pkg/doctree"
	"github.com/yaklabco/richedit/pkg/session"
	"github.com/yaklabco/richedit/pkg/store"
)

// Global flag names.
const (
	flagDebug     = "debug"
	flagConfig    = "config"
	flagColor     = "color"
	flagBackend   = "backend"
	flagStorePath = "store-path"
	flagKey       = "key"
)

// ErrConfigLoad wraps failures to resolve the configuration.
var ErrConfigLoad = errors.New("failed to load configuration")

// app carries what every document command needs: the resolved
// configuration, a logger, the command registry with configured bindings
// and output styles.
type app struct {
	cfg        *config.Config
	loadedFrom []string
	logger     *log.Logger
	registry   *command.Registry
	styles     *pretty.Styles
	width      int
	out        io.Writer
}

// loadApp resolves the configuration for cmd from files, environment and
// the global flags.
func loadApp(cmd *cobra.Command) (*app, error) {
	ctx := commandContext(cmd)

	cliCfg, err := cliConfigFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}
	cfg := loadResult.Config

	level := cfg.Log.Level
	if cfg.Debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldWorkingDir, workingDir(),
		logging.FieldBackend, cfg.Store.Backend,
		logging.FieldKey, cfg.Document.Key,
	)

	out := cmd.OutOrStdout()
	return &app{
		cfg:        cfg,
		loadedFrom: loadResult.LoadedFrom,
		logger:     logger,
		registry:   bindHotkeys(cfg.Hotkeys, logger),
		styles:     pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out)),
		width:      pretty.TerminalWidth(out),
		out:        out,
	}, nil
}

// cliConfigFromFlags collects the global flags the user actually set.
func cliConfigFromFlags(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg := &config.Config{}

	var err error
	if cfg.Debug, err = flags.GetBool(flagDebug); err != nil {
		return nil, fmt.Errorf("get %s flag: %w", flagDebug, err)
	}

	stringFlags := []struct {
		name string
		set  func(string)
	}{
		{flagColor, func(v string) { cfg.Color = config.ColorMode(v) }},
		{flagBackend, func(v string) { cfg.Store.Backend = config.Backend(v) }},
		{flagStorePath, func(v string) { cfg.Store.Path = v }},
		{flagKey, func(v string) { cfg.Document.Key = v }},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		value, err := flags.GetString(f.name)
		if err != nil {
			return nil, fmt.Errorf("get %s flag: %w", f.name, err)
		}
		f.set(value)
	}
	return cfg, nil
}

// bindHotkeys returns a copy of the default registry with the configured
// bindings applied. Bindings that cannot be applied are logged and skipped.
func bindHotkeys(hotkeys map[string]string, logger *log.Logger) *command.Registry {
	registry := command.DefaultRegistry.Clone()
	for _, name := range slices.Sorted(maps.Keys(hotkeys)) {
		if err := registry.Bind(name, hotkeys[name]); err != nil {
			logger.Warn("ignoring hotkey binding", logging.FieldCommand, name, logging.FieldError, err)
			continue
		}
		logger.Debug("bound hotkey", logging.FieldCommand, name, logging.FieldHotkey, hotkeys[name])
	}
	return registry
}

// withSession opens the configured store and a session on it, runs fn and
// closes the store again.
func (a *app) withSession(ctx context.Context, fn func(ctx context.Context, sess *session.Session) error) error {
	st, err := store.Open(ctx, a.cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			a.logger.Warn("close store", logging.FieldError, closeErr)
		}
	}()

	ctx = logging.WithLogger(ctx, a.logger)
	sess, err := session.Open(ctx, session.Options{
		Store:       st,
		Key:         a.cfg.Document.Key,
		Placeholder: a.cfg.Document.Placeholder,
		Registry:    a.registry,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}

	return fn(ctx, sess)
}

// render writes the status line, the document and the toolbar for sel.
func (a *app) render(sess *session.Session, sel *doctree.Range) error {
	doc := sess.Document()

	selection := ""
	if sel != nil {
		selection = sel.String()
	}

	commands := a.registry.Commands()
	items := make([]pretty.ToolbarItem, 0, len(commands))
	for _, cmd := range commands {
		items = append(items, pretty.ToolbarItem{
			Name:   cmd.Name(),
			Hotkey: cmd.Hotkey(),
			Active: cmd.Active(doc, sel),
		})
	}

	output := a.styles.FormatStatus(sess.Key(), string(sess.Origin()), selection) +
		"\n" +
		pretty.NewDocumentRenderer(a.styles, a.width).Render(doc) +
		"\n" +
		a.styles.FormatToolbar(items)

	if _, err := io.WriteString(a.out, output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// commandContext returns the command context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// workingDir returns the current directory for log fields.
func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}
