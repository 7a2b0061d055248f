package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/application/commands"
	"docgraph/internal/domain"
	"docgraph/internal/graph"
)

// GraphKeyMap defines key bindings for the graph view
type GraphKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Expand    key.Binding
	Backlinks key.Binding
	Copy      key.Binding
	Edit      key.Binding
	Open      key.Binding
	Rebuild   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var GraphKeys = GraphKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "expand node"),
	),
	Backlinks: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "backlinks"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open URL"),
	),
	Rebuild: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rebuild"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type rowKind int

const (
	rowDocument rowKind = iota
	rowBacklink
	rowExternal
)

// row is one selectable line in the graph view
type row struct {
	kind rowKind
	doc  domain.DocumentNode
	ext  domain.ExternalLinkNode
}

// GraphModel is the model for the graph browser view
type GraphModel struct {
	ViewState

	session *graph.Session
	focus   string
	depth   int

	graph         *domain.GraphData
	rows          []row
	backlinkPaths map[string]bool
	cursor        int

	spin     spinner.Model
	building bool
	scanning bool
	scan     *graph.BacklinkScan
}

// NewGraphModel creates a new graph browser model
func NewGraphModel(session *graph.Session, focus string, depth int) *GraphModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &GraphModel{
		session: session,
		focus:   focus,
		depth:   depth,
		spin:    sp,
	}
}

// Init starts the initial build
func (m *GraphModel) Init() tea.Cmd {
	m.building = true
	return tea.Batch(m.spin.Tick, m.buildGraph())
}

type graphLoadedMsg struct {
	graph *domain.GraphData
}

type expandedMsg struct {
	path   string
	result *domain.ExpandResult
}

type backlinkMsg struct {
	update graph.BacklinkUpdate
}

type scanDoneMsg struct {
	completed bool
}

type errMsg struct {
	err error
}

// OpenEditorMsg asks the app to open a document in the editor
type OpenEditorMsg struct {
	Path string // corpus-relative
}

// OpenURLMsg asks the app to open an external URL
type OpenURLMsg struct {
	URL string
}

// SwitchToHelpMsg asks the app to show the help view
type SwitchToHelpMsg struct{}

func (m *GraphModel) buildGraph() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewBuildCommand(m.session, m.focus)
		cmd.MaxDepth = m.depth
		g, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return graphLoadedMsg{graph: g}
	}
}

func (m *GraphModel) expandNode(path string) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewExpandCommand(m.session, path, m.graph.LoadedPaths)
		res, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return expandedMsg{path: path, result: res}
	}
}

// waitForScan blocks on the scan stream and converts it to messages
func waitForScan(scan *graph.BacklinkScan) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-scan.Updates()
		if !ok {
			return scanDoneMsg{completed: scan.Wait()}
		}
		return backlinkMsg{update: update}
	}
}

// Update handles messages for the graph view
func (m *GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.building && !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case graphLoadedMsg:
		m.building = false
		m.graph = msg.graph
		m.backlinkPaths = make(map[string]bool)
		m.cursor = 0
		m.refreshRows()
		if len(m.graph.Nodes) == 0 {
			m.SetMessage(fmt.Sprintf("focus file %s not found", m.focus), true)
		}
		return m, nil

	case expandedMsg:
		m.applyExpansion(msg.result)
		if msg.result.HasNewContent {
			m.SetMessage(fmt.Sprintf("expanded %s: %d new", msg.path, len(msg.result.NewNodes)), false)
		} else {
			m.SetMessage(fmt.Sprintf("%s has nothing new", msg.path), false)
		}
		return m, nil

	case backlinkMsg:
		m.applyBacklink(msg.update)
		return m, waitForScan(m.scan)

	case scanDoneMsg:
		m.scanning = false
		m.scan = nil
		if msg.completed {
			m.graph.BacklinksLoading = false
			m.SetMessage(fmt.Sprintf("backlink scan complete: %d found", len(m.backlinkPaths)), false)
		} else {
			m.SetMessage("backlink scan cancelled", false)
		}
		return m, nil

	case errMsg:
		m.building = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *GraphModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, GraphKeys.Quit):
		if m.scan != nil {
			m.scan.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, GraphKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, GraphKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, GraphKeys.Expand):
		if r, ok := m.selectedRow(); ok && r.kind != rowExternal && m.graph != nil {
			return m, m.expandNode(r.doc.FilePath)
		}

	case key.Matches(msg, GraphKeys.Backlinks):
		return m, m.toggleScan()

	case key.Matches(msg, GraphKeys.Copy):
		if r, ok := m.selectedRow(); ok {
			text := r.doc.FilePath
			if r.kind == rowExternal {
				text = r.ext.Domain
			}
			if err := clipboard.WriteAll(text); err != nil {
				m.SetMessage(err.Error(), true)
			} else {
				m.SetMessage(fmt.Sprintf("copied %s", text), false)
			}
		}

	case key.Matches(msg, GraphKeys.Edit):
		if r, ok := m.selectedRow(); ok && r.kind != rowExternal {
			path := r.doc.FilePath
			return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
		}

	case key.Matches(msg, GraphKeys.Open):
		if r, ok := m.selectedRow(); ok && r.kind == rowExternal && len(r.ext.URLs) > 0 {
			url := r.ext.URLs[0]
			return m, func() tea.Msg { return OpenURLMsg{URL: url} }
		}

	case key.Matches(msg, GraphKeys.Rebuild):
		if m.scan != nil {
			m.scan.Cancel()
			m.scan = nil
			m.scanning = false
		}
		m.building = true
		return m, tea.Batch(m.spin.Tick, m.buildGraph())

	case key.Matches(msg, GraphKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

// toggleScan starts the backlink scan, or cancels a running one
func (m *GraphModel) toggleScan() tea.Cmd {
	if m.graph == nil || m.building {
		return nil
	}
	if m.scan != nil {
		m.scan.Cancel()
		return nil
	}
	m.scanning = true
	m.scan = m.session.StartBacklinkScan(context.Background(), m.graph, nil)
	return tea.Batch(m.spin.Tick, waitForScan(m.scan))
}

// applyExpansion merges an expansion result into the displayed graph
func (m *GraphModel) applyExpansion(res *domain.ExpandResult) {
	if m.graph == nil {
		return
	}
	m.graph.Nodes = append(m.graph.Nodes, res.NewNodes...)
	m.graph.Edges = append(m.graph.Edges, res.NewEdges...)
	m.graph.LoadedDocuments += len(res.NewNodes)
	m.graph.InternalLinkCount += len(res.NewEdges)
	m.graph.LoadedPaths = res.LoadedPaths
	if m.graph.TotalDocuments < m.graph.LoadedDocuments {
		m.graph.TotalDocuments = m.graph.LoadedDocuments
	}
	m.mergeExternal(res.External)
	m.refreshRows()
}

// applyBacklink folds one scan discovery into the displayed graph
func (m *GraphModel) applyBacklink(update graph.BacklinkUpdate) {
	if m.graph == nil {
		return
	}
	m.backlinkPaths[update.Node.FilePath] = true
	m.graph.Nodes = append(m.graph.Nodes, update.Node)
	m.graph.Edges = append(m.graph.Edges, update.Edges...)
	m.graph.LoadedDocuments++
	m.graph.TotalDocuments++
	m.graph.LoadedPaths[update.Node.FilePath] = true
	m.refreshRows()
}

// mergeExternal adds domains and URLs not already represented
func (m *GraphModel) mergeExternal(data domain.ExternalLinkData) {
	byDomain := make(map[string]int)
	for i, n := range m.graph.External.Nodes {
		byDomain[n.Domain] = i
	}

	for _, n := range data.Nodes {
		if i, ok := byDomain[n.Domain]; ok {
			m.graph.External.Nodes[i].URLs = append(m.graph.External.Nodes[i].URLs, n.URLs...)
		} else {
			m.graph.External.Nodes = append(m.graph.External.Nodes, n)
			m.graph.External.DomainCount++
		}
	}
	m.graph.External.Edges = append(m.graph.External.Edges, data.Edges...)
	m.graph.External.TotalLinkCount += data.TotalLinkCount
	m.refreshRows()
}

func (m *GraphModel) selectedRow() (row, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor], true
	}
	return row{}, false
}

// refreshRows rebuilds the flat row list: documents first, then
// external domains. Backlink rows are appended live by applyBacklink.
func (m *GraphModel) refreshRows() {
	m.rows = m.rows[:0]
	if m.graph == nil {
		return
	}
	for _, n := range m.graph.Nodes {
		kind := rowDocument
		if m.backlinkPaths[n.FilePath] {
			kind = rowBacklink
		}
		m.rows = append(m.rows, row{kind: kind, doc: n})
	}
	for _, n := range m.graph.External.Nodes {
		m.rows = append(m.rows, row{kind: rowExternal, ext: n})
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the graph view
func (m *GraphModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Docgraph"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Markdown corpus graph"))
	b.WriteString("\n\n")

	if m.building {
		b.WriteString(m.spin.View())
		b.WriteString(" building graph...")
		return styles.App.Render(b.String())
	}
	if m.graph == nil {
		return styles.App.Render(b.String() + "Loading...")
	}

	for i, r := range m.rows {
		b.WriteString(m.renderRow(r, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *GraphModel) renderRow(r row, selected bool) string {
	var text string
	var style = styles.NodeDocument

	switch r.kind {
	case rowDocument:
		text = fmt.Sprintf("%s  (%s)", r.doc.Title, r.doc.FilePath)
		if r.doc.FilePath == m.focus {
			style = styles.NodeFocus
		}
	case rowBacklink:
		text = fmt.Sprintf("%s  (%s) ← backlink", r.doc.Title, r.doc.FilePath)
		style = styles.NodeBacklink
	case rowExternal:
		text = fmt.Sprintf("%s  (%d links)", r.ext.Domain, len(r.ext.URLs))
		style = styles.NodeExternal
	}

	if selected {
		return "› " + styles.NodeSelected.Render(text)
	}
	return "  " + style.Render(text)
}

func (m *GraphModel) renderStatus() string {
	g := m.graph
	status := fmt.Sprintf("%d/%d documents · %d links · %d domains",
		g.LoadedDocuments, g.TotalDocuments, g.InternalLinkCount, g.External.DomainCount)
	if g.HasMore {
		status += " · more beyond cap"
	}
	if m.scanning {
		status += " · " + m.spin.View() + " scanning backlinks"
	} else if !g.BacklinksLoading {
		status += fmt.Sprintf(" · %d backlinks", len(m.backlinkPaths))
	}
	return styles.StatusBar.Render(status)
}

func (m *GraphModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"enter", "expand"},
		{"b", "backlinks"},
		{"e", "edit"},
		{"y", "copy"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}
