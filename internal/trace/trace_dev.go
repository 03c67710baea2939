//go:build dev

// Package trace records runtime/trace regions in development builds.
//
// Usage:
//
//	go build -tags dev ./cmd/scriptrun
//	SCRIPTRUN_TRACE=trace.out scriptrun complete -- run compose up ''
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the variable holding the trace output path
const EnvVar = "SCRIPTRUN_TRACE"

var (
	traceMu     sync.Mutex
	traceFile   *os.File
	traceActive bool
)

// Init starts tracing when EnvVar is set. The returned function stops it.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scriptrun: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "scriptrun: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	traceFile, traceActive = f, true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()

		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			_ = traceFile.Close()
			traceFile = nil
		}
	}
}

// Region opens a trace region and returns the function closing it
func Region(ctx context.Context, name string) func() {
	if !traceActive {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// WithRegion runs f inside a trace region
func WithRegion(ctx context.Context, name string, f func()) {
	if !traceActive {
		f()
		return
	}
	trace.WithRegion(ctx, name, f)
}

// Enabled reports whether a trace is being recorded
func Enabled() bool {
	return traceActive
}
