// Package scripts enumerates the runnable scripts of a project.
package scripts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/derrors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Script is a runnable file found in a script directory
type Script struct {
	Name string // File name without its last extension
	Path string
}

// Set holds scripts by name in discovery order
type Set struct {
	scripts *orderedmap.OrderedMap[string, string]
}

// NameOf returns the script name for a file name, false when the file cannot
// be a script: hidden files and names without an extension.
func NameOf(fileName string) (string, bool) {
	if strings.HasPrefix(fileName, ".") {
		return "", false
	}
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return "", false
	}
	return fileName[:idx], true
}

// Discover lists every script of dirs, in order. A name found again in a
// later directory points to the later file but keeps its first position.
func Discover(dirs []string) (*Set, error) {
	set := &Set{scripts: orderedmap.New[string, string]()}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, derrors.NewScriptDirError(dir, "failed to list script directory", err)
		}

		for _, entry := range entries {
			if !isFile(dir, entry) {
				continue
			}
			name, ok := NameOf(entry.Name())
			if !ok {
				continue
			}
			set.scripts.Set(name, filepath.Join(dir, entry.Name()))
		}
	}

	return set, nil
}

// isFile follows symlinks so linked scripts are listed
func isFile(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Names returns the script names in discovery order
func (s *Set) Names() []string {
	names := make([]string, 0, s.Len())
	if s == nil {
		return names
	}
	for pair := s.scripts.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// All returns every script in discovery order
func (s *Set) All() []Script {
	all := make([]Script, 0, s.Len())
	if s == nil {
		return all
	}
	for pair := s.scripts.Oldest(); pair != nil; pair = pair.Next() {
		all = append(all, Script{Name: pair.Key, Path: pair.Value})
	}
	return all
}

// Lookup returns the path of the named script
func (s *Set) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.scripts.Get(name)
}

// Len returns the number of scripts
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.scripts.Len()
}
