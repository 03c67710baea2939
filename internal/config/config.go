// Package config locates and loads scriptrun configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/NikitaCOEUR/scriptrun/internal/derrors"
	"github.com/bmatcuk/doublestar/v4"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the file searched for when no name is given
const DefaultConfigName = ".scriptrun.json"

const completionKey = "completion"

// Format identifies the syntax of a configuration file
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from the file extension. Unknown extensions are
// read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func (f Format) parser() koanf.Parser {
	switch f {
	case FormatYAML:
		return koanfyaml.Parser()
	case FormatTOML:
		return toml.Parser()
	default:
		return koanfjson.Parser()
	}
}

// Config represents a scriptrun configuration
type Config struct {
	ScriptDirs []string         `koanf:"scriptDirs"`
	Completion *completion.Tree `koanf:"-"`

	Path string `koanf:"-"` // Absolute path of the loaded file
	Dir  string `koanf:"-"` // Directory holding the file, base of every relative path
}

// ScriptDirPaths returns the script directories resolved against Dir. An
// entry holding glob metacharacters ("**" included) expands to the
// directories it matches, in lexical order.
func (c *Config) ScriptDirPaths() []string {
	paths := make([]string, 0, len(c.ScriptDirs))
	for _, dir := range c.ScriptDirs {
		resolved := c.resolve(dir)
		if !IsPattern(dir) {
			paths = append(paths, resolved)
			continue
		}
		matches, err := globDirs(resolved)
		if err != nil {
			// Kept as is so listing it reports the problem
			paths = append(paths, resolved)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.Dir, dir)
}

// IsPattern reports whether a script directory entry is a glob pattern
func IsPattern(dir string) bool {
	return strings.ContainsAny(dir, "*?[{")
}

func globDirs(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(matches))
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.IsDir() {
			dirs = append(dirs, match)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Find walks up from startDir until a file called name exists. The
// filesystem root is not searched.
func Find(startDir, name string) (string, error) {
	if name == "" {
		name = DefaultConfigName
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		dir = parent
	}

	return "", derrors.NewNotFoundError(name,
		fmt.Sprintf("Unable to find a '%s' in the directory tree", name))
}

// Discover finds and loads the configuration governing startDir
func Discover(startDir, name string) (*Config, error) {
	path, err := Find(startDir, name)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, configError(path, "invalid path", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, configError(abs, "failed to read config", err)
	}
	return Parse(abs, data)
}

// Parse decodes configuration content. path selects the format and anchors
// relative paths; the file itself is not read.
func Parse(path string, data []byte) (*Config, error) {
	format := FormatOf(path)

	// Isolated instance: nothing leaks between loads
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), format.parser()); err != nil {
		return nil, configError(path, "failed to load config", err)
	}

	cfg := &Config{
		ScriptDirs: []string{},
		Path:       path,
		Dir:        filepath.Dir(path),
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, configError(path, "failed to unmarshal config", err)
	}

	tree, err := decodeTree(format, data)
	if err != nil {
		return nil, configError(path, "invalid completion tree", err)
	}
	cfg.Completion = tree

	return cfg, nil
}

func configError(path, message string, cause error) error {
	return derrors.NewConfigurationError(path, fmt.Sprintf("%s %s", message, path), cause)
}

// decodeTree reads the completion section a second time with a decoder that
// keeps key order. koanf flattens keys on its delimiter and returns plain
// maps, so it cannot be used for the tree.
func decodeTree(format Format, data []byte) (*completion.Tree, error) {
	switch format {
	case FormatYAML:
		return decodeYAMLTree(data)
	case FormatTOML:
		return decodeTOMLTree(data)
	default:
		return decodeJSONTree(data)
	}
}

func decodeJSONTree(data []byte) (*completion.Tree, error) {
	var doc struct {
		Completion json.RawMessage `json:"completion"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return completion.DecodeJSON(doc.Completion)
}

func decodeYAMLTree(data []byte) (*completion.Tree, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return completion.NewTree(), nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return completion.NewTree(), nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == completionKey {
			return completion.DecodeYAML(doc.Content[i+1])
		}
	}
	return completion.NewTree(), nil
}

func decodeTOMLTree(data []byte) (*completion.Tree, error) {
	m, err := toml.Parser().Unmarshal(data)
	if err != nil {
		return nil, err
	}

	raw, ok := m[completionKey]
	if !ok {
		return completion.NewTree(), nil
	}
	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("completion must be a table")
	}
	return completion.FromMap(table), nil
}
