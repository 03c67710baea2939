package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/scriptrun/internal/setup"
)

// SetupParams contains parameters for the Setup command
type SetupParams struct {
	Globals
	Shell     string // bash, zsh or auto
	Alias     string
	Binary    string
	Home      string // Overrides the home directory holding the RC file
	Uninstall bool
	Output    io.Writer
}

// Setup installs (or removes) the hook block in the shell's RC file
func Setup(params SetupParams) error {
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	opts := setup.Options{
		Shell:      DetectShell(params.Shell),
		Alias:      params.Alias,
		Binary:     params.Binary,
		ConfigName: params.ConfigName,
		Home:       params.Home,
	}

	var (
		result *setup.Result
		err    error
	)
	if params.Uninstall {
		result, err = setup.UninstallHook(opts)
	} else {
		result, err = setup.InstallHook(opts)
	}
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, result.Message); err != nil {
		return err
	}
	if result.Updated && !params.Uninstall {
		_, err = fmt.Fprintf(out, "Restart your shell or run: source %s\n", result.RCFile)
	}
	return err
}
