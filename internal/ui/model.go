package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/config"
	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/selectable"
	"pickgrip/internal/selection"
	"pickgrip/internal/ui/views"
)

// rows taken by title, status and help around the list
const chromeHeight = 8

// rows for the "↑ N more" and "↓ N more" indicators
const indicatorRows = 2

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	list   *selectable.List
	title  string

	width  int
	height int
	offset int // first visible item

	keys     keyMap
	help     help.Model
	styles   *views.Styles
	renderer *views.Renderer

	status     string
	statusKind statusKind
	scans      int // started minus completed; events may arrive out of order
	quitting   bool

	helpOps *HelpOps
	pending []eventbus.DomainEvent
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, list *selectable.List, title string) *Model {
	styles := views.NewStyles()
	return &Model{
		bus:      bus,
		config:   cfg,
		list:     list,
		title:    title,
		height:   24,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   styles,
		renderer: views.NewRenderer(styles),
	}
}

// SetProgram gives the model the program it runs in, for releasing the
// terminal to the help pager
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps = NewHelpOps(p)
}

// Preload queues an event for delivery once the program starts. Use it
// instead of Program.Send before Run, which blocks until Run reads
func (m *Model) Preload(event eventbus.DomainEvent) {
	m.pending = append(m.pending, event)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(m.pending))
	for i, event := range m.pending {
		cmds[i] = func() tea.Msg { return EventMsg{Event: event} }
	}
	m.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.setStatus(statusError, fmt.Sprintf("Help pager failed: %v", msg.err))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.list.SelectNext()
	case key.Matches(msg, m.keys.Previous):
		m.list.SelectPrevious()
	case key.Matches(msg, m.keys.First):
		m.list.SelectIndex(0)
	case key.Matches(msg, m.keys.Last):
		m.list.SelectLast()
	case key.Matches(msg, m.keys.Activate):
		m.activate()
	case key.Matches(msg, m.keys.Rescan):
		if m.bus != nil && !m.scanning() {
			m.bus.Publish(domain.ScanRequestedEvent{})
		}
	case key.Matches(msg, m.keys.Help):
		return m, m.showHelp()
	default:
		return m, nil
	}
	m.ensureVisible()
	return m, nil
}

func (m *Model) activate() {
	item := m.list.SelectedItem()
	if item == nil {
		if len(m.list.Items()) == 0 {
			return
		}
		item = m.list.Items()[0]
	}
	if m.list.Activate(item) {
		m.setStatus(statusSuccess, fmt.Sprintf("Activated %s", item.Name))
	} else {
		m.setStatus(statusWarning, fmt.Sprintf("%s cannot be activated", item.Name))
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case domain.ItemsDiscoveredEvent:
		m.list.SetItems(e.Items)
		m.ensureVisible()
		m.setStatus(statusInfo, fmt.Sprintf("%d items in %s", len(e.Items), e.Source))
	case domain.ScanStartedEvent:
		m.scans++
		if m.scanning() {
			m.setStatus(statusInfo, fmt.Sprintf("Scanning %s…", e.Root))
		}
	case domain.ScanCompletedEvent:
		m.scans--
	case domain.SelectionChangedEvent:
		if e.Item != nil {
			m.setStatus(statusInfo, fmt.Sprintf("Selected %s (%d/%d)", e.Item.Name, e.Index+1, len(m.list.Items())))
		} else {
			m.setStatus(statusInfo, "Nothing selected")
		}
	case domain.ErrorEvent:
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
		m.setStatus(statusError, msg)
	}
}

func (m *Model) scanning() bool {
	return m.scans > 0
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// listHeight is the number of item rows that fit the window
func (m *Model) listHeight() int {
	h := m.height - chromeHeight - indicatorRows
	if h < 1 {
		h = 1
	}
	return h
}

// ensureVisible scrolls the window so the selected item is visible
func (m *Model) ensureVisible() {
	total := len(m.list.Items())
	height := m.listHeight()

	if idx := m.list.SelectedIndex(); idx >= 0 {
		if idx < m.offset {
			m.offset = idx
		} else if idx >= m.offset+height {
			m.offset = idx - height + 1
		}
	}

	if maxOffset := total - height; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	sel := m.list.Config()
	b.WriteString(m.renderer.RenderList(m.list.Items(), views.ListOptions{
		Offset:        m.offset,
		Height:        m.listHeight(),
		Width:         m.width - 4,
		ShowIndex:     m.config.UI.ShowIndex,
		SelectedClass: sel.SelectedClass,
		DisabledAttr:  m.config.Selection.DisabledAttribute,
	}))
	b.WriteString("\n")

	b.WriteString(m.styles.Status.Render(m.renderStatus()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	switch m.statusKind {
	case statusSuccess:
		return m.styles.StatusSuccess.Render(m.status)
	case statusWarning:
		return m.styles.StatusWarning.Render(m.status)
	case statusError:
		return m.styles.StatusError.Render(m.status)
	}
	if m.scanning() {
		return m.styles.Scan.Render(m.status)
	}
	return m.status
}

func (m *Model) showHelp() tea.Cmd {
	if m.helpOps == nil {
		return nil
	}
	content := NewHelpRenderer(m.keys).RenderHelpContent()
	ops := m.helpOps
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

// Result returns the final selection value and item
func (m *Model) Result() (selection.Value, *domain.Item) {
	return m.list.Selected(), m.list.SelectedItem()
}

// ErrNoSelection is returned by callers that require a selection on exit
var ErrNoSelection = errors.New("nothing selected")
