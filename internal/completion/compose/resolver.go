// Package compose completes docker-compose command lines: subcommands, their
// options, option values and the service names declared in a compose file.
package compose

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/NikitaCOEUR/scriptrun/internal/logger"
	"github.com/go-viper/mapstructure/v2"
)

// ResolverID is the identifier the resolver is registered under
const ResolverID = "docker-compose"

const optionPrefix = "-"

// Options are the plugin options accepted under the "$$docker-compose" marker
type Options struct {
	// DeclarationFile is the compose file, relative to the configuration directory
	DeclarationFile string `mapstructure:"declarationFile"`
	// File is the historical spelling of DeclarationFile
	File string `mapstructure:"file"`
}

func (o Options) path(baseDir string) string {
	file := o.DeclarationFile
	if file == "" {
		file = o.File
	}
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(baseDir, file)
}

// Resolver completes docker-compose arguments
type Resolver struct {
	commands []Grammar
	byName   map[string]Grammar
	values   map[string][]string
}

// NewResolver creates a resolver with the built-in command table
func NewResolver() *Resolver {
	return NewResolverWith(DefaultCommands, DefaultOptionValues)
}

// NewResolverWith creates a resolver for a custom command table
func NewResolverWith(commands []Grammar, values map[string][]string) *Resolver {
	byName := make(map[string]Grammar, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name] = cmd
	}
	return &Resolver{commands: commands, byName: byName, values: values}
}

// CommandNames returns every known command, in table order
func (r *Resolver) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for _, cmd := range r.commands {
		names = append(names, cmd.Name)
	}
	return names
}

// Resolve implements completion.Resolver
func (r *Resolver) Resolve(_ context.Context, args []string, current string, raw completion.Options, env completion.Env) []string {
	log := env.Log
	if log == nil {
		log = logger.Discard()
	}

	if len(args) == 0 {
		return r.CommandNames()
	}

	cmd := args[0]
	last := args[len(args)-1]
	if values, ok := r.values[last]; ok {
		return append([]string{}, values...)
	}

	used := make(map[string]bool, len(args)-1)
	for _, arg := range args[1:] {
		used[arg] = true
	}

	grammar := r.byName[cmd]
	if strings.HasPrefix(current, optionPrefix) || grammar.Argument == nil {
		return optionSuggestions(grammar.Options, used)
	}

	var opts Options
	if err := mapstructure.Decode(map[string]any(raw), &opts); err != nil {
		log.Debug().Err(err).Msg("Invalid docker-compose plugin options")
	}
	return r.argumentSuggestions(*grammar.Argument, opts.path(env.BaseDir), used, log)
}

// optionSuggestions offers every member of each group none of whose members is used yet
func optionSuggestions(groups []OptionGroup, used map[string]bool) []string {
	suggestions := []string{}
	for _, group := range groups {
		if groupUsed(group, used) {
			continue
		}
		suggestions = append(suggestions, group...)
	}
	return suggestions
}

func groupUsed(group OptionGroup, used map[string]bool) bool {
	for _, alias := range group {
		if used[alias] {
			return true
		}
	}
	return false
}

func (r *Resolver) argumentSuggestions(spec ArgumentSpec, file string, used map[string]bool, log *logger.Logger) []string {
	if spec.Kind != ServicesArgument {
		return []string{}
	}

	all, err := readServices(file)
	if err != nil {
		log.Debug().Str("file", file).Err(err).Msg("Cannot read compose file, no services offered")
		all = []string{}
	}

	remaining := make([]string, 0, len(all))
	for _, name := range all {
		if !used[name] {
			remaining = append(remaining, name)
		}
	}

	log.Debug().
		Str("file", file).
		Strs("services", all).
		Int("remaining", len(remaining)).
		Bool("single", spec.Single).
		Msg("Resolved compose services")

	if len(remaining) == 0 {
		return []string{}
	}
	// A single slot is filled as soon as any declared service was typed.
	if spec.Single && len(remaining) != len(all) {
		return []string{}
	}
	return remaining
}
