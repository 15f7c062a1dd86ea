package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rbxasset/internal/adapters/tui/styles"
	"rbxasset/internal/application/commands"
	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// AssetsKeyMap defines key bindings for the asset browser
type AssetsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Copy    key.Binding
	Open    key.Binding
	Preview key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var AssetsKeys = AssetsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy id"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open"),
	),
	Preview: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "preview"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

const maxVisibleRows = 15

// AssetsModel is a filterable list over the asset index
type AssetsModel struct {
	ViewState

	assets    ports.AssetResolver
	reloader  ports.Reloader
	previewer ports.Previewer
	copy      func(string) error

	input   textinput.Model
	all     []domain.AssetEntry
	shown   []domain.AssetEntry
	mapping string
	cursor  int
	offset  int
	loading bool
}

// NewAssetsModel creates the asset browser. reloader and previewer may be nil.
func NewAssetsModel(assets ports.AssetResolver, reloader ports.Reloader, previewer ports.Previewer) *AssetsModel {
	input := textinput.New()
	input.Placeholder = "Filter assets..."
	input.Focus()

	return &AssetsModel{
		assets:    assets,
		reloader:  reloader,
		previewer: previewer,
		copy:      clipboard.WriteAll,
		input:     input,
		loading:   true,
	}
}

type assetsLoadedMsg struct {
	entries []domain.AssetEntry
	mapping string
	err     error
}

type statusMsg struct {
	text  string
	isErr bool
}

// Init loads the index
func (m *AssetsModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m *AssetsModel) load() tea.Msg {
	idx, err := m.assets.Index(context.Background())
	if err != nil {
		return assetsLoadedMsg{err: err}
	}
	return assetsLoadedMsg{entries: idx.SortedEntries(), mapping: m.assets.MappingPath()}
}

func (m *AssetsModel) reload() tea.Msg {
	if m.reloader != nil {
		m.reloader.Reload(true)
	}
	return m.load()
}

// Update handles messages for the asset browser
func (m *AssetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case assetsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.all = msg.entries
		m.mapping = msg.mapping
		m.applyFilter()
		return m, nil

	case statusMsg:
		m.SetMessage(msg.text, msg.isErr)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, AssetsKeys.Quit):
			if m.input.Value() != "" {
				m.input.SetValue("")
				m.applyFilter()
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, AssetsKeys.Help) && m.input.Value() == "":
			return m, func() tea.Msg { return SwitchToHelpMsg{} }

		case key.Matches(msg, AssetsKeys.Up):
			m.move(-1)
			return m, nil

		case key.Matches(msg, AssetsKeys.Down):
			m.move(1)
			return m, nil

		case key.Matches(msg, AssetsKeys.Copy):
			if e, ok := m.Selected(); ok {
				if err := m.copy(e.URI()); err != nil {
					m.SetMessage(fmt.Sprintf("clipboard: %v", err), true)
				} else {
					m.SetMessage("Copied "+e.URI(), false)
				}
			}
			return m, nil

		case key.Matches(msg, AssetsKeys.Open):
			if e, ok := m.Selected(); ok {
				path := m.absPath(e)
				return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
			}
			return m, nil

		case key.Matches(msg, AssetsKeys.Preview):
			return m, m.preview()

		case key.Matches(msg, AssetsKeys.Reload):
			m.loading = true
			m.ClearMessage()
			return m, m.reload
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.applyFilter()
	}
	return m, cmd
}

func (m *AssetsModel) preview() tea.Cmd {
	e, ok := m.Selected()
	if !ok {
		return nil
	}
	if m.previewer == nil {
		m.SetMessage("preview not available", true)
		return nil
	}
	if e.Kind() == domain.MediaOther {
		m.SetMessage("no preview for "+e.Filename(), true)
		return nil
	}

	path := m.absPath(e)
	return func() tea.Msg {
		if err := m.previewer.Preview(path); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: "Previewing " + e.Path}
	}
}

func (m *AssetsModel) absPath(e domain.AssetEntry) string {
	return filepath.Join(m.assets.Root(), filepath.FromSlash(e.Path))
}

// applyFilter recomputes the visible rows from the query. Queries shorter
// than the search minimum fall back to substring filtering on the path.
func (m *AssetsModel) applyFilter() {
	query := strings.TrimSpace(m.input.Value())

	switch {
	case query == "":
		m.shown = m.all
	case len(query) < commands.MinQueryLength:
		m.shown = nil
		q := strings.ToLower(query)
		for _, e := range m.all {
			if strings.Contains(strings.ToLower(e.Path), q) {
				m.shown = append(m.shown, e)
			}
		}
	default:
		ranked := commands.RankEntries(m.all, query)
		m.shown = make([]domain.AssetEntry, len(ranked))
		for i, r := range ranked {
			m.shown[i] = r.AssetEntry
		}
	}

	m.cursor = 0
	m.offset = 0
}

func (m *AssetsModel) move(delta int) {
	if len(m.shown) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.shown)-1, m.cursor+delta))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisibleRows {
		m.offset = m.cursor - maxVisibleRows + 1
	}
}

// Selected returns the entry under the cursor
func (m *AssetsModel) Selected() (domain.AssetEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.shown) {
		return domain.AssetEntry{}, false
	}
	return m.shown[m.cursor], true
}

// Shown returns the rows that pass the current filter
func (m *AssetsModel) Shown() []domain.AssetEntry {
	return m.shown
}

// View renders the asset browser
func (m *AssetsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Assets"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(styles.Subtitle.Render("Loading..."))
	case m.mapping == "":
		b.WriteString(styles.Subtitle.Render("No asset mapping found"))
	default:
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d assets from %s", len(m.all), m.mapping)))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.shown) == 0 && !m.loading {
		b.WriteString(styles.MutedText.Render("No matching assets"))
		b.WriteString("\n")
	}

	end := min(len(m.shown), m.offset+maxVisibleRows)
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.shown[i], i == m.cursor))
		b.WriteString("\n")
	}
	if rest := len(m.shown) - end; rest > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", rest)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Message != "" {
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s",
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("copy id"),
		styles.HelpKey.Render("ctrl+o"),
		styles.HelpDesc.Render("open"),
		styles.HelpKey.Render("ctrl+p"),
		styles.HelpDesc.Render("preview"),
		styles.HelpKey.Render("ctrl+r"),
		styles.HelpDesc.Render("reload"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("quit"),
	))

	return styles.App.Render(b.String())
}

func (m *AssetsModel) renderRow(e domain.AssetEntry, selected bool) string {
	text := fmt.Sprintf("%-14s %s", e.ID, e.Path)
	if selected {
		return styles.AssetSelected.Render(text)
	}
	return styles.AssetID.Render(fmt.Sprintf("%-14s", e.ID)) + " " + styles.KindStyle(e.Kind().String()).Render(e.Path)
}
