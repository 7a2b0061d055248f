package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"docgraph/internal/adapters/browser"
	"docgraph/internal/adapters/editor"
	"docgraph/internal/adapters/tui/views"
	"docgraph/internal/graph"
)

// ViewState represents the current view
type ViewState int

const (
	ViewGraph ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	corpusRoot string
	editor     *editor.Opener
	browser    *browser.Opener

	state ViewState
	graph *views.GraphModel
	help  *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. corpusRoot is the local corpus
// root used to resolve editor paths; empty for remote corpora, which
// disables the editor binding.
func NewApp(session *graph.Session, corpusRoot, focus string, depth int, ed *editor.Opener) *App {
	return &App{
		corpusRoot: corpusRoot,
		editor:     ed,
		browser:    browser.NewOpener(),
		state:      ViewGraph,
		graph:      views.NewGraphModel(session, focus, depth),
		help:       views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.graph.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.graph.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToGraphMsg:
		a.state = ViewGraph
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.OpenURLMsg:
		if err := a.browser.OpenURL(msg.URL); err != nil {
			a.graph.SetMessage("browser: "+err.Error(), true)
		}
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.graph.SetMessage("editor: "+msg.err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewGraph:
		_, cmd = a.graph.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(relPath string) tea.Cmd {
	if a.editor == nil || a.corpusRoot == "" {
		a.graph.SetMessage("editor not available for this corpus", true)
		return nil
	}

	cmd, err := a.editor.Command(filepath.Join(a.corpusRoot, filepath.FromSlash(relPath)))
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.graph.View()
	}
}
