// Package status collects and renders the state of the project scriptrun
// runs in.
package status

import (
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/NikitaCOEUR/scriptrun/internal/config"
	"github.com/NikitaCOEUR/scriptrun/internal/scripts"
	"github.com/NikitaCOEUR/scriptrun/pkg/version"
)

// CollectAll gathers the status of the project governing dir. A missing or
// broken configuration is reported in the data, not as an error.
func CollectAll(dir, configName string, registry *completion.Registry) *Data {
	data := &Data{
		CurrentDir:     dir,
		Version:        version.Version,
		ConfigName:     configName,
		ScriptDirs:     make([]DirInfo, 0),
		Scripts:        make([]scripts.Script, 0),
		CompletionKeys: make([]string, 0),
		Plugins:        make([]PluginInfo, 0),
		Resolvers:      registry.IDs(),
	}

	path, err := config.Find(dir, configName)
	if err != nil {
		data.ConfigError = err.Error()
		return data
	}
	data.ConfigPath = path

	cfg, err := config.Load(path)
	if err != nil {
		data.ConfigError = err.Error()
		return data
	}

	collectScripts(data, cfg)
	collectCompletion(data, cfg, registry)
	return data
}

func collectScripts(data *Data, cfg *config.Config) {
	for _, dir := range cfg.ScriptDirPaths() {
		info := DirInfo{Path: dir}
		if set, err := scripts.Discover([]string{dir}); err == nil {
			info.Exists = true
			info.Scripts = set.Len()
		}
		data.ScriptDirs = append(data.ScriptDirs, info)
	}

	// The merged view keeps the override rules of the run command
	set, err := scripts.Discover(existingDirs(data.ScriptDirs))
	if err != nil {
		data.ConfigError = fmt.Sprintf("failed to list scripts: %v", err)
		return
	}
	data.Scripts = set.All()
}

func existingDirs(dirs []DirInfo) []string {
	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir.Exists {
			paths = append(paths, dir.Path)
		}
	}
	return paths
}

func collectCompletion(data *Data, cfg *config.Config, registry *completion.Registry) {
	data.CompletionKeys = cfg.Completion.Keys()
	cfg.Completion.Walk(func(path []string, node *completion.Node) {
		if !node.IsPlugin() {
			return
		}
		data.Plugins = append(data.Plugins, PluginInfo{
			Path:     strings.Join(path, " "),
			Resolver: node.Binding.Resolver,
			Known:    registry.Has(node.Binding.Resolver),
		})
	})
}

// CurrentDir returns the working directory, or "." when it cannot be read
func CurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
