package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/scriptrun/internal/config"
	"github.com/NikitaCOEUR/scriptrun/internal/derrors"
	"github.com/charmbracelet/lipgloss"
)

var (
	validStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	invalidStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Globals
	Path   string // Config file to check, searched upwards from Dir when empty
	Dir    string
	Output io.Writer
}

// Validate checks a configuration file and prints a report
func Validate(params ValidateParams) error {
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	configPath := params.Path
	if configPath == "" {
		dir, err := workDir(params.Dir)
		if err != nil {
			return err
		}
		configPath, err = config.Find(dir, configName(params.Globals))
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	registry := NewRegistry()
	result, err := config.Validate(configPath, registry.Has)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintln(out, validStyle.Render("✅ Configuration is valid!"))
		return nil
	}

	fmt.Fprintln(out, invalidStyle.Render("❌ Configuration has errors:"))
	for i, validationErr := range result.Errors {
		fmt.Fprintf(out, "%d. %s %s\n", i+1, fieldStyle.Render("["+validationErr.Field+"]"), validationErr.Message)
	}
	fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return derrors.NewValidationError(configPath, "validation failed", nil)
}
