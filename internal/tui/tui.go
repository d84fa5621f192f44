// Package tui provides the interactive Bubble Tea editor for annotation
// documents. Clicking shapes while combine mode is on stages them; releasing
// combine mode groups them and saves the document.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fakeyudi/tracklet/internal/annotation"
	"github.com/fakeyudi/tracklet/internal/combine"
	"github.com/fakeyudi/tracklet/internal/watch"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	// Combine badge: pressed, released, unavailable
	modeOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("205")).
			Padding(0, 1)

	modeOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	modeDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Rows above and below the canvas: title, status bar, help.
const (
	canvasTop   = 1
	chromeLines = 3
)

// Options configures the editor.
type Options struct {
	Frame          int
	Width, Height  int // canvas size until the first window size message
	HighlightColor string
	ReadOnly       bool
	Watch          bool // reload the document when it changes on disk
	Logger         *log.Logger
	Now            func() time.Time
}

// reloadMsg is sent by the file watcher.
type reloadMsg struct{}

// Model is the root Bubble Tea model for the editor.
type Model struct {
	ed       *editor
	filename string
	keys     keyMap
	help     help.Model
	width    int
	height   int
}

// New creates an editor model for doc, saving through store.
func New(doc *annotation.Document, store annotation.Store, opts Options) Model {
	return Model{
		ed:       newEditor(doc, store, opts),
		filename: filepath.Base(store.Path()),
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.ed.handler.Active() {
				m.ed.handler.Cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Combine):
			m.ed.control.Toggle()
		case key.Matches(msg, m.keys.Cancel):
			if m.ed.handler.Active() {
				m.ed.handler.Cancel()
				m.ed.setStatus("combine cancelled")
			}
		case key.Matches(msg, m.keys.Prev):
			m.ed.step(-1)
		case key.Matches(msg, m.keys.Next):
			m.ed.step(1)
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		x, y := msg.X, msg.Y-canvasTop
		if w, h := m.ed.canvas.Size(); x < 0 || y < 0 || x >= w || y >= h {
			return m, nil
		}
		if m.ed.handler.Active() {
			m.ed.canvas.Pick(x, y)
		} else {
			m.ed.describe(x, y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ed.resize(msg.Width, msg.Height-chromeLines)
		return m, nil

	case reloadMsg:
		m.ed.reload()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	width, _ := m.ed.canvas.Size()
	if m.width > 0 {
		width = m.width
	}

	title := titleStyle.Width(width).Render(fmt.Sprintf("tracklet  %s  frame %d", m.filename, m.ed.frame))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.ed.canvas.View(),
		m.statusBar(width),
		m.help.View(m.keys),
	)
}

func (m Model) statusBar(width int) string {
	ed := m.ed
	var badge string
	switch {
	case ed.control.Disabled():
		badge = modeDisabledStyle.Render("combine unavailable")
	case ed.control.Active():
		badge = modeOnStyle.Render(fmt.Sprintf("COMBINE %d", len(ed.handler.Selected())))
	default:
		badge = modeOffStyle.Render("combine")
	}

	var parts []string
	if fp, ok := ed.handler.Fingerprint(); ok {
		parts = append(parts, fmt.Sprintf("label %d, %s", fp.LabelID, fp.ObjectType))
	}
	if ed.status != "" {
		if ed.failed {
			parts = append(parts, errorStyle.Render(ed.status))
		} else {
			parts = append(parts, ed.status)
		}
	}
	return statusBarStyle.Width(width).Render(badge + "  " + strings.Join(parts, "  "))
}

// Selected returns the client IDs currently staged for combining.
func (m Model) Selected() []int {
	sel := m.ed.handler.Selected()
	ids := make([]int, len(sel))
	for i, o := range sel {
		ids[i] = o.ClientID()
	}
	return ids
}

// Document returns the document being edited.
func (m Model) Document() *annotation.Document { return m.ed.doc }

// Combining reports whether combine mode is on.
func (m Model) Combining() bool { return m.ed.handler.State() == combine.StateArmed }

// Run starts the editor on the document held by store.
func Run(ctx context.Context, doc *annotation.Document, store annotation.Store, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var w *watch.Watcher
	if opts.Watch {
		var err error
		w, err = watch.New(store.Path(), opts.Logger)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", store.Path(), err)
		}
	}

	p := tea.NewProgram(New(doc, store, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if w != nil {
		go w.Run(ctx, func() { p.Send(reloadMsg{}) })
	}
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
