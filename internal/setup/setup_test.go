package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBashrcContent = `# My bashrc
export PATH=$PATH:/usr/local/bin
`

func TestGetRCFilePath(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name    string
		shell   string
		want    string
		wantErr bool
	}{
		{name: "bash", shell: "bash", want: filepath.Join(home, ".bashrc")},
		{name: "zsh", shell: "zsh", want: filepath.Join(home, ".zshrc")},
		{name: "unsupported shell", shell: "ksh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetRCFilePath(tt.shell, home)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHookBlock(t *testing.T) {
	block := HookBlock(Options{Shell: "bash"})
	assert.Equal(t, HookMarkerStart+"\n"+
		`eval "$(scriptrun hook --shell bash --alias run)"`+"\n"+
		HookMarkerEnd+"\n", block)

	block = HookBlock(Options{Shell: "zsh", Alias: "r", Binary: "/opt/scriptrun", ConfigName: "tasks.json"})
	assert.Contains(t, block, `eval "$(/opt/scriptrun --config-name tasks.json hook --shell zsh --alias r)"`)

	block = HookBlock(Options{Shell: "bash", Binary: "/opt/my tools/scriptrun"})
	assert.Contains(t, block, `eval "$('/opt/my tools/scriptrun' hook --shell bash --alias run)"`)
}

func TestInstallHook_NewInstallation(t *testing.T) {
	home := t.TempDir()
	rcFile := filepath.Join(home, ".bashrc")
	require.NoError(t, os.WriteFile(rcFile, []byte(testBashrcContent), 0644))

	result, err := InstallHook(Options{Shell: "bash", Home: home})
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.Equal(t, rcFile, result.RCFile)
	assert.Contains(t, result.Message, "Added hook")

	data, err := os.ReadFile(rcFile)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, testBashrcContent))
	assert.Contains(t, content, HookBlock(Options{Shell: "bash"}))

	installed, err := IsHookInstalled(Options{Shell: "bash", Home: home})
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestInstallHook_CreatesMissingRCFile(t *testing.T) {
	home := t.TempDir()

	result, err := InstallHook(Options{Shell: "zsh", Home: home})
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, HookBlock(Options{Shell: "zsh"}), string(data))
}

func TestInstallHook_AlreadyUpToDate(t *testing.T) {
	home := t.TempDir()
	opts := Options{Shell: "bash", Home: home}

	_, err := InstallHook(opts)
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)

	result, err := InstallHook(opts)
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Contains(t, result.Message, "already up to date")

	after, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestInstallHook_ReplacesOlderBlock(t *testing.T) {
	home := t.TempDir()

	_, err := InstallHook(Options{Shell: "bash", Home: home, Alias: "old"})
	require.NoError(t, err)

	result, err := InstallHook(Options{Shell: "bash", Home: home, Alias: "new"})
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.Contains(t, result.Message, "Updated hook")

	data, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	content := string(data)
	assert.Equal(t, 1, strings.Count(content, HookMarkerStart))
	assert.Contains(t, content, "--alias new")
	assert.NotContains(t, content, "--alias old")
}

func TestInstallHook_UnsupportedShell(t *testing.T) {
	_, err := InstallHook(Options{Shell: "fish", Home: t.TempDir()})
	assert.Error(t, err)
}

func TestUninstallHook(t *testing.T) {
	home := t.TempDir()
	rcFile := filepath.Join(home, ".bashrc")
	require.NoError(t, os.WriteFile(rcFile, []byte(testBashrcContent), 0600))

	_, err := InstallHook(Options{Shell: "bash", Home: home})
	require.NoError(t, err)

	result, err := UninstallHook(Options{Shell: "bash", Home: home})
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err := os.ReadFile(rcFile)
	require.NoError(t, err)
	assert.Equal(t, testBashrcContent, string(data))

	info, err := os.Stat(rcFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	installed, err := IsHookInstalled(Options{Shell: "bash", Home: home})
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestUninstallHook_NotInstalled(t *testing.T) {
	home := t.TempDir()

	result, err := UninstallHook(Options{Shell: "bash", Home: home})
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Contains(t, result.Message, "not installed")

	_, err = os.Stat(filepath.Join(home, ".bashrc"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMarkedSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "middle",
			content: "a\n\nSTART\nx\nEND\n\nb\n",
			want:    "a\nb\n",
		},
		{
			name:    "end",
			content: "a\n\nSTART\nx\nEND\n",
			want:    "a\n",
		},
		{
			name:    "only block",
			content: "START\nx\nEND\n",
			want:    "",
		},
		{
			name:    "no markers",
			content: "a\nb\n",
			want:    "a\nb\n",
		},
		{
			name:    "markers reversed",
			content: "END\nSTART\n",
			want:    "END\nSTART\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, removeMarkedSection(tt.content, "START", "END"))
		})
	}
}
