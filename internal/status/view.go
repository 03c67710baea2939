package status

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/NikitaCOEUR/scriptrun/internal/scripts"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderConfig(data),
	}
	if data.ConfigPath != "" && data.ConfigError == "" {
		sections = append(sections,
			renderScriptDirs(data),
			renderScriptList(data.Scripts),
			renderCompletion(data),
		)
	}
	return strings.Join(sections, "\n\n")
}

// RenderScripts renders a script list on its own, as printed by "list"
func RenderScripts(list []scripts.Script) string {
	return renderScriptList(list)
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConfig(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	if data.ConfigPath == "" {
		b.WriteString("   " + errorStyle.Render("✗ "+data.ConfigError) + "\n")
		b.WriteString("   " + warningStyle.Render(fmt.Sprintf("Create a '%s' at the project root", data.ConfigName)))
		return b.String()
	}

	if data.ConfigError != "" {
		b.WriteString("   " + valueStyle.Render(data.ConfigPath) + " " + errorStyle.Render("✗") + "\n")
		b.WriteString("   " + errorStyle.Render(data.ConfigError))
		return b.String()
	}

	b.WriteString("   " + valueStyle.Render(data.ConfigPath) + " " + successStyle.Render("✓"))
	return b.String()
}

func renderScriptDirs(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📁 Script directories:") + "\n")

	if len(data.ScriptDirs) == 0 {
		b.WriteString("   " + subtleStyle.Render("None configured"))
		return b.String()
	}

	for i, dir := range data.ScriptDirs {
		status := successStyle.Render("✓") + subtleStyle.Render(fmt.Sprintf(" (%d scripts)", dir.Scripts))
		if !dir.Exists {
			status = errorStyle.Render("✗") + subtleStyle.Render(" (not readable)")
		}
		fmt.Fprintf(&b, "   %d. %s %s\n", i+1, valueStyle.Render(dir.Path), status)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderScriptList(list []scripts.Script) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📜 Scripts:") + "\n")

	if len(list) == 0 {
		b.WriteString("   " + subtleStyle.Render("No scripts found"))
		return b.String()
	}

	width := 0
	for _, s := range list {
		width = max(width, lipgloss.Width(s.Name))
	}
	nameStyle := keyStyle.Width(width)

	for _, s := range list {
		fmt.Fprintf(&b, "   %s → %s\n", nameStyle.Render(s.Name), subtleStyle.Render(s.Path))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderCompletion(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⌨️  Completion:") + "\n")

	if len(data.CompletionKeys) == 0 {
		b.WriteString("   " + subtleStyle.Render("No completion tree, script names only") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("Top-level words: ") + valueStyle.Render(strings.Join(data.CompletionKeys, " ")) + "\n")
	}

	for _, p := range data.Plugins {
		status := successStyle.Render("✓")
		if !p.Known {
			status = errorStyle.Render("✗ unknown plugin")
		}
		fmt.Fprintf(&b, "   %s %s %s\n", keyStyle.Render(p.Path+":"), valueStyle.Render(completion.PluginPrefix+p.Resolver), status)
	}

	b.WriteString("   " + keyStyle.Render("Plugins available: ") + subtleStyle.Render(strings.Join(data.Resolvers, ", ")))
	return b.String()
}
