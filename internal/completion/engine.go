package completion

import (
	"context"
	"time"

	"github.com/NikitaCOEUR/scriptrun/internal/logger"
)

// Request describes one completion request
type Request struct {
	Tree    *Tree
	Args    []string // Complete words typed after the alias, script name first
	Current string   // The word being completed, possibly empty
	BaseDir string
}

// Engine walks completion trees and delegates to registered resolvers
type Engine struct {
	registry *Registry
	log      *logger.Logger
}

// NewEngine creates a new completion engine
func NewEngine(registry *Registry, log *logger.Logger) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{registry: registry, log: log}
}

// Complete returns the candidates for the next word. It never fails: a word
// the tree does not know stops the walk and the keys reached so far are offered.
func (e *Engine) Complete(ctx context.Context, req Request) []string {
	cursor := req.Tree
	if cursor == nil {
		cursor = NewTree()
	}

	for i, arg := range req.Args {
		node, found := cursor.Child(arg)
		if !found {
			e.log.Debug().
				Str("word", arg).
				Int("depth", i).
				Msg("No completion entry for word, offering current level")
			break
		}

		if node.IsPlugin() {
			return e.delegate(ctx, node.Binding, req, req.Args[i+1:])
		}

		cursor = node.Children
	}

	return cursor.Keys()
}

func (e *Engine) delegate(ctx context.Context, binding *Binding, req Request, remaining []string) []string {
	resolver, ok := e.registry.Lookup(binding.Resolver)
	if !ok {
		e.log.Warn().
			Str("resolver", binding.Resolver).
			Msg("Unknown completion plugin")
		return []string{}
	}

	start := time.Now()
	suggestions := resolver.Resolve(ctx, remaining, req.Current, binding.Options, Env{
		Tree:    req.Tree,
		BaseDir: req.BaseDir,
		Args:    append([]string{}, req.Args...),
		Log:     e.log,
	})
	if suggestions == nil {
		suggestions = []string{}
	}

	e.log.Debug().
		Str("resolver", binding.Resolver).
		Strs("args", remaining).
		Str("current", req.Current).
		Int("suggestions_count", len(suggestions)).
		Dur("elapsed", time.Since(start)).
		Msg("Delegated completion")

	return suggestions
}
