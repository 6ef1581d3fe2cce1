package configloader

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yaklabco/richedit/pkg/command"
	"github.com/yaklabco/richedit/pkg/config"
	"github.com/yaklabco/richedit/pkg/store"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "store.backend").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., hotkeys for unknown commands).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// structValidator is shared; validator.Validate caches struct metadata and is
// safe for concurrent use.
//
//nolint:gochecknoglobals // Lazily built, read-only afterwards.
var structValidator = sync.OnceValue(newStructValidator)

func newStructValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("storekey", storeKeyValidator); err != nil {
		panic(fmt.Sprintf("register storekey validation: %v", err))
	}
	return v
}

func storeKeyValidator(fl validator.FieldLevel) bool {
	return store.ValidKey(fl.Field().String())
}

// Validate checks a configuration for errors and warnings.
// Field constraints come from the validate struct tags on config.Config;
// hotkey bindings are additionally checked against the command registry.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := structValidator().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
			return result
		}
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldPath(fe),
				Value:   fe.Value(),
				Message: fieldMessage(fe),
			})
		}
	}

	validateHotkeys(cfg, command.DefaultRegistry, result)

	return result
}

// fieldPath strips the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		options := strings.ReplaceAll(fe.Param(), " ", ", ")
		return fmt.Sprintf("invalid value %q; must be one of: %s", fe.Value(), options)
	case "storekey":
		return fmt.Sprintf("invalid key %q; use letters, digits, '.', '_' or '-'", fe.Value())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "required":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// validateHotkeys reports unparsable bindings as errors and bindings for
// unknown commands as warnings.
func validateHotkeys(cfg *config.Config, registry *command.Registry, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Hotkeys))
	for name := range cfg.Hotkeys {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		hotkey := cfg.Hotkeys[name]
		field := "hotkeys." + name

		if _, err := registry.Resolve(name); err != nil {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown command %q; binding will be ignored", name),
			})
		}

		if hotkey == "" {
			continue
		}
		if _, err := command.ParseHotkey(hotkey); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   hotkey,
				Message: err.Error(),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
