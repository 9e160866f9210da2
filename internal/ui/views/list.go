package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pickgrip/internal/domain"
)

// ListOptions controls how a list window is drawn
type ListOptions struct {
	Offset        int    // index of the first visible item
	Height        int    // item rows; scroll indicators take up to two more
	Width         int    // 0 leaves rows unpadded
	ShowIndex     bool
	SelectedClass string // items carrying this class render highlighted
	DisabledAttr  string // items carrying this attribute render dimmed
}

// Renderer draws item lists
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

// RenderList renders the visible window of items with scroll indicators
func (r *Renderer) RenderList(items []*domain.Item, opts ListOptions) string {
	if len(items) == 0 {
		return r.styles.Dim.Render("No items")
	}

	height := opts.Height
	if height < 1 {
		height = 1
	}
	start := opts.Offset
	if start < 0 {
		start = 0
	}
	if start > len(items)-1 {
		start = len(items) - 1
	}
	end := start + height
	if end > len(items) {
		end = len(items)
	}

	indexWidth := len(fmt.Sprint(len(items)))

	var b strings.Builder
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.renderItem(items[i], i, indexWidth, opts))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(items) {
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(items)-end)))
	}
	return b.String()
}

func (r *Renderer) renderItem(item *domain.Item, index, indexWidth int, opts ListOptions) string {
	selected := opts.SelectedClass != "" && item.HasClass(opts.SelectedClass)

	marker := "  "
	if selected {
		marker = "› "
	}

	prefix := ""
	if opts.ShowIndex {
		prefix = r.styles.Index.Render(fmt.Sprintf("%*d ", indexWidth, index))
	}

	name := item.Name
	var nameStyle lipgloss.Style
	switch {
	case item.Disabled(opts.DisabledAttr):
		nameStyle = r.styles.Disabled
	case selected:
		nameStyle = r.styles.Highlight
	case item.Kind == "dir":
		nameStyle = r.styles.Dir
	default:
		nameStyle = lipgloss.NewStyle()
	}
	if item.Kind == "dir" {
		name += "/"
	}

	line := marker + prefix + nameStyle.Render(name)
	if item.Path != "" && item.Path != item.Name && item.Kind != "line" {
		line += " " + r.styles.Dim.Render(item.Path)
	}

	if selected {
		if opts.Width > 0 {
			if pad := opts.Width - lipgloss.Width(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
		}
		return r.styles.SelectionBg.Render(line)
	}
	return line
}
