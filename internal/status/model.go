package status

import "github.com/NikitaCOEUR/scriptrun/internal/scripts"

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Configuration
	ConfigName  string
	ConfigPath  string // Empty when no configuration was found
	ConfigError string

	// Scripts
	ScriptDirs []DirInfo
	Scripts    []scripts.Script

	// Completion
	CompletionKeys []string
	Plugins        []PluginInfo
	Resolvers      []string
}

// DirInfo describes one configured script directory
type DirInfo struct {
	Path    string
	Exists  bool
	Scripts int
}

// PluginInfo describes a plugin marker of the completion tree
type PluginInfo struct {
	Path     string // Words leading to the marker, space separated
	Resolver string
	Known    bool
}
