//go:build !dev

// Package trace records runtime/trace regions in development builds.
// Release builds compile these no-op versions.
package trace

import "context"

// EnvVar names the variable holding the trace output path
const EnvVar = "SCRIPTRUN_TRACE"

// Init is a no-op in release builds
func Init() func() {
	return func() {}
}

// Region is a no-op in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// WithRegion calls f
func WithRegion(_ context.Context, _ string, f func()) {
	f()
}

// Enabled always reports false in release builds
func Enabled() bool {
	return false
}
