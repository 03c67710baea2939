// Package setup installs the scriptrun hook into shell RC files.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/shell"
)

const (
	// HookMarkerStart opens the block written into RC files
	HookMarkerStart = "# scriptrun shell hook - START"
	// HookMarkerEnd closes the block written into RC files
	HookMarkerEnd = "# scriptrun shell hook - END"
)

// Options selects the shell and the hook line written into its RC file
type Options struct {
	Shell      string // bash or zsh
	Alias      string
	Binary     string
	ConfigName string // Passed to the hook when set
	Home       string // Home directory; os.UserHomeDir when empty
}

// Result represents the result of a setup operation
type Result struct {
	RCFile  string
	Updated bool
	Message string
}

// GetRCFilePath returns the RC file path for the given shell
func GetRCFilePath(shellName, home string) (string, error) {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
	}

	switch shellName {
	case shell.Bash:
		return filepath.Join(home, ".bashrc"), nil
	case shell.Zsh:
		return filepath.Join(home, ".zshrc"), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (use bash or zsh)", shellName)
	}
}

// HookBlock returns the marked block sourcing the hook at shell start-up
func HookBlock(opts Options) string {
	binary := opts.Binary
	if binary == "" {
		binary = "scriptrun"
	}
	alias := opts.Alias
	if alias == "" {
		alias = shell.DefaultAlias
	}
	command := shell.Quote(binary)
	if opts.ConfigName != "" {
		command += " --config-name " + shell.Quote(opts.ConfigName)
	}
	line := fmt.Sprintf(`eval "$(%s hook --shell %s --alias %s)"`,
		command, opts.Shell, shell.Quote(alias))
	return HookMarkerStart + "\n" + line + "\n" + HookMarkerEnd + "\n"
}

// InstallHook writes the hook block into the shell's RC file, replacing an
// older block in place
func InstallHook(opts Options) (*Result, error) {
	rcFile, err := GetRCFilePath(opts.Shell, opts.Home)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read RC file: %w", err)
	}
	content := string(data)
	block := HookBlock(opts)

	if strings.Contains(content, block) {
		return &Result{
			RCFile:  rcFile,
			Message: fmt.Sprintf("✓ Hook already up to date in %s", rcFile),
		}, nil
	}

	message := fmt.Sprintf("✓ Added hook to %s", rcFile)
	if containsMarkers(content, HookMarkerStart, HookMarkerEnd) {
		content = removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
		message = fmt.Sprintf("✓ Updated hook in %s", rcFile)
	}

	if len(content) > 0 {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += "\n"
	}
	content += block

	if err := atomicWrite(rcFile, []byte(content)); err != nil {
		return nil, fmt.Errorf("failed to update RC file: %w", err)
	}

	return &Result{RCFile: rcFile, Updated: true, Message: message}, nil
}

// IsHookInstalled checks if the RC file holds a hook block
func IsHookInstalled(opts Options) (bool, error) {
	rcFile, err := GetRCFilePath(opts.Shell, opts.Home)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return containsMarkers(string(data), HookMarkerStart, HookMarkerEnd), nil
}

// UninstallHook removes the hook block from the RC file
func UninstallHook(opts Options) (*Result, error) {
	rcFile, err := GetRCFilePath(opts.Shell, opts.Home)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read RC file: %w", err)
	}

	content := string(data)
	if !containsMarkers(content, HookMarkerStart, HookMarkerEnd) {
		return &Result{RCFile: rcFile, Message: "✓ scriptrun is not installed"}, nil
	}

	if err := atomicWrite(rcFile, []byte(removeMarkedSection(content, HookMarkerStart, HookMarkerEnd))); err != nil {
		return nil, fmt.Errorf("failed to update RC file: %w", err)
	}

	return &Result{
		RCFile:  rcFile,
		Updated: true,
		Message: fmt.Sprintf("✓ Removed hook from %s", rcFile),
	}, nil
}
