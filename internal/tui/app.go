package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arrvision/stereorig/internal/fleet"
)

// ScanFunc produces the detected camera serials for a rescan. The wizard
// takes it as a dependency so tests can drive reconciliation without mDNS.
type ScanFunc func() ([]string, error)

// Messages
type scanDoneMsg struct {
	serials []string
	err     error
}

type saveDoneMsg struct {
	err error
}

// keyMap defines the wizard key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Rescan key.Binding
	Save   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Rescan, k.Save, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Rescan, k.Save, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle enabled"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the fleet wizard: a single dashboard listing the configured
// slots, with enable toggling, rescan+reconcile and save.
type Model struct {
	Config *fleet.FleetConfig
	Path   string

	Scan ScanFunc

	Cursor   int
	Dirty    bool
	Scanning bool
	Status   string
	Err      error

	Width  int
	Height int

	Help help.Model
	Keys keyMap
}

// NewModel creates a wizard model over a loaded fleet configuration.
func NewModel(cfg *fleet.FleetConfig, path string, scan ScanFunc) Model {
	return Model{
		Config: cfg,
		Path:   path,
		Scan:   scan,
		Help:   help.New(),
		Keys:   defaultKeyMap(),
	}
}

// Init starts the wizard with an immediate rescan so the dashboard opens
// showing live state.
func (m Model) Init() tea.Cmd {
	return m.rescan()
}

// rescan returns the command running discovery off the UI goroutine.
func (m Model) rescan() tea.Cmd {
	scan := m.Scan
	return func() tea.Msg {
		serials, err := scan()
		return scanDoneMsg{serials: serials, err: err}
	}
}

// save returns the command persisting the configuration.
func (m Model) save() tea.Cmd {
	path, cfg := m.Path, m.Config
	return func() tea.Msg {
		return saveDoneMsg{err: fleet.Save(path, cfg)}
	}
}

// Update handles all wizard messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case scanDoneMsg:
		m.Scanning = false
		if msg.err != nil {
			m.Err = msg.err
			m.Status = ""
			return m, nil
		}
		m.Err = nil
		if m.Config.Reconcile(msg.serials) {
			m.Dirty = true
			m.Status = fmt.Sprintf("Detected %d head(s), fleet updated (unsaved)", len(msg.serials))
		} else {
			m.Status = fmt.Sprintf("Detected %d head(s), fleet unchanged", len(msg.serials))
		}
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Dirty = false
		m.Status = "Saved " + m.Path
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}

	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Config.Devices)-1 {
			m.Cursor++
		}

	case key.Matches(msg, m.Keys.Toggle):
		if m.Cursor < len(m.Config.Devices) {
			d := &m.Config.Devices[m.Cursor]
			d.Enabled = !d.Enabled
			m.Dirty = true
			m.Status = fmt.Sprintf("Slot %d %s (unsaved)", m.Cursor, enabledWord(d.Enabled))
		}

	case key.Matches(msg, m.Keys.Rescan):
		if !m.Scanning {
			m.Scanning = true
			m.Status = "Scanning for heads..."
			return m, m.rescan()
		}

	case key.Matches(msg, m.Keys.Save):
		return m, m.save()

	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(RenderHeader(m.Path))
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("Fleet"))
	b.WriteString("\n")

	for i, d := range m.Config.Devices {
		row := fmt.Sprintf("%s slot %d  %-16s serial=%-12s orient=%s",
			Checkbox(d.Enabled), i, d.Name, serialWord(d.Serial), d.Orientation)

		switch {
		case i == m.Cursor:
			b.WriteString(SelectedRowStyle.Render("→ " + row))
		case !d.Enabled:
			b.WriteString(DisabledRowStyle.Render(row))
		default:
			b.WriteString(RowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.Err != nil:
		b.WriteString(ErrorStyle.Render("✗ " + m.Err.Error()))
	case m.Dirty:
		b.WriteString(WarnStatusStyle.Render(m.Status))
	case m.Status != "":
		b.WriteString(StatusStyle.Render(m.Status))
	}
	b.WriteString("\n")

	b.WriteString(HelpStyle.Render(m.Help.View(m.Keys)))

	return b.String()
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func serialWord(serial string) string {
	if serial == "" {
		return "(none)"
	}
	return serial
}

// Run loads the configuration at path (creating factory defaults when the
// file does not exist yet) and runs the wizard until the user quits.
func Run(path string, scan ScanFunc) error {
	cfg, err := fleet.Load(path)
	if err != nil {
		// A corrupt file is fatal; a missing one starts from factory defaults.
		var ve *fleet.ValueError
		if errors.As(err, &ve) {
			return err
		}
		cfg = fleet.New()
		cfg.Normalize()
	}

	p := tea.NewProgram(NewModel(cfg, path, scan), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
