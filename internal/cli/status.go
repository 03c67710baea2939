package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/scriptrun/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	Globals
	Dir    string
	Output io.Writer
}

// Status displays the configuration, scripts and completion setup of the
// current project
func Status(params StatusParams) error {
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	dir, err := workDir(params.Dir)
	if err != nil {
		return err
	}

	data := status.CollectAll(dir, configName(params.Globals), NewRegistry())
	_, err = fmt.Fprintln(out, status.Render(data))
	return err
}

// ListParams contains parameters for the List command
type ListParams struct {
	Globals
	Dir    string
	Output io.Writer
}

// List prints the scripts of the current project
func List(params ListParams) error {
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	p, err := loadProject(params.Dir, params.Globals)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, status.RenderScripts(p.scripts.All()))
	return err
}
