// Package cli implements the scriptrun commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/NikitaCOEUR/scriptrun/internal/completion/compose"
	"github.com/NikitaCOEUR/scriptrun/internal/config"
	"github.com/NikitaCOEUR/scriptrun/internal/logger"
	"github.com/NikitaCOEUR/scriptrun/internal/scripts"
)

// Globals holds the options shared by every command
type Globals struct {
	ConfigName string // Configuration file searched upwards from the working directory
	LogLevel   string
	DebugLog   string // When set, JSON debug logs are appended to this file instead of stderr
}

// openLogger builds the command logger. The returned function releases the
// debug log file.
func openLogger(g Globals, stderr io.Writer) (*logger.Logger, func(), error) {
	if g.DebugLog == "" {
		return logger.New(g.LogLevel, stderr), func() {}, nil
	}

	f, err := os.OpenFile(g.DebugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log %s: %w", g.DebugLog, err)
	}
	return logger.NewJSON("debug", f), func() { _ = f.Close() }, nil
}

// NewRegistry returns the completion plugins shipped with scriptrun
func NewRegistry() *completion.Registry {
	registry := completion.NewRegistry()
	if err := registry.Register(compose.ResolverID, compose.NewResolver()); err != nil {
		panic(err)
	}
	return registry
}

func configName(g Globals) string {
	if g.ConfigName == "" {
		return config.DefaultConfigName
	}
	return g.ConfigName
}

func workDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	current, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return current, nil
}

// project is a loaded configuration with its scripts
type project struct {
	config  *config.Config
	scripts *scripts.Set
}

func loadProject(dir string, g Globals) (*project, error) {
	cfg, err := loadConfig(dir, g)
	if err != nil {
		return nil, err
	}

	set, err := scripts.Discover(cfg.ScriptDirPaths())
	if err != nil {
		return nil, err
	}
	return &project{config: cfg, scripts: set}, nil
}

func loadConfig(dir string, g Globals) (*config.Config, error) {
	dir, err := workDir(dir)
	if err != nil {
		return nil, err
	}
	return config.Discover(dir, configName(g))
}
