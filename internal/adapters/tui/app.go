package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"rbxasset/internal/adapters/editor"
	"rbxasset/internal/adapters/tui/views"
	"rbxasset/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewAssets ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor *editor.Opener

	state  ViewState
	assets *views.AssetsModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed may be nil, in which case
// open requests are reported as errors.
func NewApp(assets ports.AssetResolver, reloader ports.Reloader, previewer ports.Previewer, ed *editor.Opener) *App {
	return &App{
		editor: ed,
		state:  ViewAssets,
		assets: views.NewAssetsModel(assets, reloader, previewer),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.assets.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.assets.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToAssetsMsg:
		a.state = ViewAssets
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.assets.SetMessage("editor: "+msg.err.Error(), true)
		}
		return a, nil
	}

	switch a.state {
	case ViewHelp:
		_, cmd := a.help.Update(msg)
		return a, cmd
	default:
		_, cmd := a.assets.Update(msg)
		return a, cmd
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.assets.View()
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

type editorFinishedMsg struct {
	err error
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: errNoEditor}
		}
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}
