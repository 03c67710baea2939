package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) addf(field, format string, args ...interface{}) {
	r.add(field, fmt.Sprintf(format, args...))
}

// PluginChecker reports whether a completion plugin identifier is registered
type PluginChecker func(id string) bool

// Validate validates a config file: JSON Schema first, then the checks that
// need the loaded configuration. A nil checker accepts every plugin.
func Validate(path string, known PluginChecker) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := Parse(path, content)
	if err != nil {
		result.addf("syntax", "Failed to parse config: %v", err)
		return result, nil
	}

	for _, verr := range Check(cfg, known) {
		result.add(verr.Field, verr.Message)
	}
	return result, nil
}

// Check runs the semantic checks on a loaded configuration
func Check(cfg *Config, known PluginChecker) []ValidationError {
	errs := []ValidationError{}

	for i, entry := range cfg.ScriptDirs {
		field := fmt.Sprintf("scriptDirs/%d", i)
		dir := cfg.resolve(entry)

		if IsPattern(entry) {
			matches, err := globDirs(dir)
			switch {
			case err != nil:
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("Invalid directory pattern: %s", entry)})
			case len(matches) == 0:
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("No directory matches: %s", entry)})
			}
			continue
		}

		info, err := os.Stat(dir)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("Script directory not accessible: %s", dir)})
		case !info.IsDir():
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("Not a directory: %s", dir)})
		}
	}

	cfg.Completion.Walk(func(path []string, node *completion.Node) {
		field := "completion/" + strings.Join(path, "/")
		if !node.IsPlugin() {
			return
		}
		if known != nil && !known(node.Binding.Resolver) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Unknown completion plugin '%s'", node.Binding.Resolver),
			})
		}
		if len(node.Shadowed) > 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Keys ignored next to plugin '%s': %s", node.Binding.Resolver, strings.Join(node.Shadowed, ", ")),
			})
		}
	})

	return errs
}
