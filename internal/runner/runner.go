// Package runner starts scripts and reports their exit status.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/NikitaCOEUR/scriptrun/internal/derrors"
	"github.com/NikitaCOEUR/scriptrun/internal/logger"
)

// signalExitBase is added to the signal number of a killed child, as shells do
const signalExitBase = 128

// Params describes one script invocation
type Params struct {
	Path   string
	Args   []string
	Dir    string // Working directory, inherited when empty
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    *logger.Logger
}

// Run executes the script and waits for it. The returned code is the
// script's exit status; err is set only when the script could not be started.
// Interrupt and termination signals received meanwhile are forwarded to it.
func Run(ctx context.Context, params Params) (int, error) {
	log := params.Log
	if log == nil {
		log = logger.Discard()
	}

	cmd := exec.CommandContext(ctx, params.Path, params.Args...)
	cmd.Dir = params.Dir
	cmd.Stdin = params.Stdin
	cmd.Stdout = params.Stdout
	cmd.Stderr = params.Stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return 1, derrors.NewExecutionError(params.Path, "failed to start script", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go forward(cmd.Process, signals, done)

	err := cmd.Wait()
	signal.Stop(signals)
	close(done)

	code := exitCode(cmd.ProcessState)
	log.Debug().
		Str("script", params.Path).
		Strs("args", params.Args).
		Int("exit_code", code).
		Dur("elapsed", time.Since(start)).
		Msg("Script finished")

	if err != nil && cmd.ProcessState == nil {
		return code, derrors.NewExecutionError(params.Path, "failed to wait for script", err)
	}
	return code, nil
}

func forward(process *os.Process, signals <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-signals:
			_ = process.Signal(sig)
		case <-done:
			return
		}
	}
}

func exitCode(state *os.ProcessState) int {
	if state == nil {
		return 1
	}
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return signalExitBase + int(status.Signal())
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return 1
}
