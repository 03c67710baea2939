package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/scriptrun/internal/derrors"
	"github.com/NikitaCOEUR/scriptrun/internal/runner"
)

// RunParams contains parameters for the Run command
type RunParams struct {
	Globals
	Script string
	Args   []string
	Dir    string // Working directory, the process one when empty

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run finds the named script of the current project and executes it. The
// returned code is the script's exit status; err reports why it could not run.
func Run(ctx context.Context, params RunParams) (int, error) {
	if params.Stdin == nil {
		params.Stdin = os.Stdin
	}
	if params.Stdout == nil {
		params.Stdout = os.Stdout
	}
	if params.Stderr == nil {
		params.Stderr = os.Stderr
	}

	log, closeLog, err := openLogger(params.Globals, params.Stderr)
	if err != nil {
		return 1, err
	}
	defer closeLog()

	if params.Script == "" {
		return 1, fmt.Errorf("script name required")
	}

	p, err := loadProject(params.Dir, params.Globals)
	if err != nil {
		return 1, err
	}

	path, found := p.scripts.Lookup(params.Script)
	if !found {
		return 1, derrors.NewNotFoundError(params.Script, fmt.Sprintf("Script '%s' not found", params.Script))
	}

	log.Debug().
		Str("script", params.Script).
		Str("path", path).
		Strs("args", params.Args).
		Msg("Running script")

	return runner.Run(ctx, runner.Params{
		Path:   path,
		Args:   params.Args,
		Stdin:  params.Stdin,
		Stdout: params.Stdout,
		Stderr: params.Stderr,
		Log:    log,
	})
}
