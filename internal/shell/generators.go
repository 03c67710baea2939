package shell

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/scriptrun/internal/config"
	"github.com/NikitaCOEUR/scriptrun/pkg/version"
)

// Supported shells
const (
	Bash = "bash"
	Zsh  = "zsh"
)

// DefaultAlias is the shell alias bound to "scriptrun run" when none is given
const DefaultAlias = "run"

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	templates = template.Must(template.New("hook").
			Funcs(sprig.TxtFuncMap()).
			Funcs(template.FuncMap{"shq": Quote}).
			ParseFS(templatesFS, "templates/*.tmpl"))

	aliasPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
)

// HookParams configures the generated hook
type HookParams struct {
	Binary     string // Name or path of the scriptrun executable
	ConfigName string // Configuration file name passed back on every call
	Alias      string // Shell alias running scripts
}

type hookData struct {
	HookParams
	Command string
	Version string
}

// Shells returns the supported shell names
func Shells() []string {
	return []string{Bash, Zsh}
}

// Generate renders the hook that defines the alias and registers its
// completion function for the given shell
func Generate(shell string, params HookParams) (string, error) {
	if shell != Bash && shell != Zsh {
		return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Shells(), ", "))
	}
	if params.Alias == "" {
		params.Alias = DefaultAlias
	}
	if !aliasPattern.MatchString(params.Alias) {
		return "", fmt.Errorf("invalid alias name %q", params.Alias)
	}
	if params.Binary == "" {
		params.Binary = "scriptrun"
	}
	if params.ConfigName == "" {
		params.ConfigName = config.DefaultConfigName
	}

	data := hookData{
		HookParams: params,
		Command:    fmt.Sprintf("%s --config-name %s run", Quote(params.Binary), Quote(params.ConfigName)),
		Version:    version.Version,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, shell+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render %s hook: %w", shell, err)
	}
	return buf.String(), nil
}

// Quote returns s as a single POSIX shell word
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
