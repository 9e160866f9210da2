package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	sections := []struct {
		name     string
		bindings []keyHelp
	}{
		{"Navigation", []keyHelp{
			{"↓/j", "Select next item (wraps around)"},
			{"↑/k", "Select previous item (wraps around)"},
			{"g/Home", "Select first item"},
			{"G/End", "Select last item"},
		}},
		{"Selection", []keyHelp{
			{"Enter/Space", "Activate the selected item"},
			{"r", "Rescan the item source"},
		}},
		{"Other", []keyHelp{
			{"?", "Show this help"},
			{"q/Esc", "Quit"},
		}},
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("pickgrip Help"))
	help.WriteString("\n")

	for _, section := range sections {
		help.WriteString(sectionStyle.Render(section.name))
		help.WriteString("\n")
		for _, b := range section.bindings {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(b.keys), descStyle.Render(b.desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Disabled items cannot be activated; the selection stays where it was."))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render(fmt.Sprintf("  Short help: %s", shortHelpLine(r.keys))))

	return help.String()
}

type keyHelp struct {
	keys string
	desc string
}

func shortHelpLine(k keyMap) string {
	parts := make([]string, 0, len(k.ShortHelp()))
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// HelpOps runs the help pager
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return errors.New("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// give ov time to leave the alternate screen before we take it back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
