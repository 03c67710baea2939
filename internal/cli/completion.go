package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/NikitaCOEUR/scriptrun/internal/logger"
	"github.com/NikitaCOEUR/scriptrun/internal/timing"
	"github.com/NikitaCOEUR/scriptrun/internal/trace"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Globals
	Words    []string // The alias, every complete word, then the word being completed
	Dir      string   // Working directory, the process one when empty
	Output   io.Writer
	Registry *completion.Registry
}

// Complete prints the candidates for the word being completed on one line,
// space separated, without a trailing newline. Failures are logged and
// produce an empty line: the shell never sees an error.
func Complete(ctx context.Context, params CompleteParams) error {
	out := params.Output
	if out == nil {
		out = os.Stdout
	}

	log, closeLog, err := openLogger(params.Globals, os.Stderr)
	if err != nil {
		log, closeLog = logger.Discard(), func() {}
	}
	defer closeLog()

	resolved, current := splitWords(params.Words)
	timer := timing.NewTimer()

	var suggestions []string
	trace.WithRegion(ctx, "complete", func() {
		suggestions = complete(ctx, params, resolved, current, log, timer)
	})

	log.Debug().
		Strs("words", resolved).
		Str("current", current).
		Strs("completions", suggestions).
		Str("timing", timer.Summary()).
		Msg("Completions")

	_, err = fmt.Fprint(out, strings.Join(suggestions, " "))
	return err
}

// splitWords drops the shell separator and the alias, then pops the word
// being completed
func splitWords(words []string) ([]string, string) {
	if len(words) > 0 && words[0] == "--" {
		words = words[1:]
	}
	if len(words) == 0 {
		return []string{}, ""
	}
	words = words[1:]
	if len(words) == 0 {
		return []string{}, ""
	}
	return words[:len(words)-1], words[len(words)-1]
}

func complete(ctx context.Context, params CompleteParams, resolved []string, current string, log *logger.Logger, timer *timing.Timer) []string {
	if len(resolved) == 0 {
		p, err := loadProject(params.Dir, params.Globals)
		timer.Mark("load")
		if err != nil {
			log.Debug().Err(err).Msg("Cannot list scripts")
			return []string{}
		}
		return p.scripts.Names()
	}

	cfg, err := loadConfig(params.Dir, params.Globals)
	timer.Mark("load")
	if err != nil {
		log.Debug().Err(err).Msg("Cannot load configuration")
		return []string{}
	}

	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	suggestions := completion.NewEngine(registry, log).Complete(ctx, completion.Request{
		Tree:    cfg.Completion,
		Args:    resolved,
		Current: current,
		BaseDir: cfg.Dir,
	})
	timer.Mark("resolve")
	return suggestions
}
