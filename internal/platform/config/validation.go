package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf keys so messages match the
// YAML and env spellings an operator actually writes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterStructValidation(validateSync, SyncConfig{})

	return v
}

// validateSync rejects source lists the agent could not run: an enabled
// agent with nothing to pull, or two sources sharing a health check name.
func validateSync(sl validator.StructLevel) {
	sc, ok := sl.Current().Interface().(SyncConfig)
	if !ok {
		return
	}

	if sc.Enabled && len(sc.Sources) == 0 {
		sl.ReportError(sc.Sources, "sources", "Sources", "required_if", "enabled true")
	}

	seen := make(map[string]struct{}, len(sc.Sources))

	for _, src := range sc.Sources {
		if _, dup := seen[src.Name]; dup {
			sl.ReportError(sc.Sources, "sources", "Sources", "unique_names", src.Name)
			return
		}

		seen[src.Name] = struct{}{}
	}
}

// Validate checks the configuration. The service refuses to start on error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, strings.ToLower(e.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return field + " must be a valid URL"
	case "unique_names":
		return fmt.Sprintf("%s has more than one source named %q", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath drops the root struct name: "Config.sync.sources[0].base_url"
// becomes "sync.sources[0].base_url".
func formatFieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return strings.ToLower(namespace)
	}

	return strings.ToLower(rest)
}
