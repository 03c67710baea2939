// Package completion resolves shell completions by walking a nested
// completion tree and handing the remaining words to a registered resolver
// when a plugin marker is reached.
package completion

import (
	"context"

	"github.com/NikitaCOEUR/scriptrun/internal/logger"
)

// Env is the ambient context handed to resolvers
type Env struct {
	Tree    *Tree          // The full completion configuration
	BaseDir string         // Directory containing the active configuration file
	Args    []string       // Every resolved word, including the ones consumed by the tree
	Log     *logger.Logger // Never nil when provided by the Engine
}

// Resolver completes the words left over once the tree walk reaches a plugin marker.
// Implementations never fail: problems are logged and expressed as fewer suggestions.
type Resolver interface {
	Resolve(ctx context.Context, args []string, current string, opts Options, env Env) []string
}

// ResolverFunc adapts an ordinary function to the Resolver interface
type ResolverFunc func(ctx context.Context, args []string, current string, opts Options, env Env) []string

// Resolve calls f
func (f ResolverFunc) Resolve(ctx context.Context, args []string, current string, opts Options, env Env) []string {
	return f(ctx, args, current, opts, env)
}
