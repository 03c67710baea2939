package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/scriptrun/internal/shell"
)

// HookParams contains parameters for the Hook command
type HookParams struct {
	Globals
	Shell  string // bash, zsh or auto
	Alias  string
	Binary string // Executable name written into the hook, "scriptrun" when empty
	Output io.Writer
}

// DetectShell resolves "auto" (or an empty value) from $SHELL, falling back to bash
func DetectShell(requested string) string {
	if requested != "" && requested != "auto" {
		return requested
	}
	if filepath.Base(os.Getenv("SHELL")) == shell.Zsh {
		return shell.Zsh
	}
	return shell.Bash
}

// Hook prints the shell code defining the script alias and its completion
func Hook(params HookParams) error {
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	code, err := shell.Generate(DetectShell(params.Shell), shell.HookParams{
		Binary:     params.Binary,
		ConfigName: configName(params.Globals),
		Alias:      params.Alias,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, code)
	return err
}
