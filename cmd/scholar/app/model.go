// Package app provides the interactive TUI shell for the scholar client.
// The shell is split across multiple files for maintainability:
//   - model.go: Model, construction, Init (this file)
//   - pages.go: per-view page state and rendering
//   - commands.go: async fetch and mutation commands
//   - update.go: Update loop and key handling
//   - view.go: top-level rendering
//   - login.go: login form
//   - forms.go: mutation form modals
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"optischolar/cmd/scholar/config"
	"optischolar/cmd/scholar/ui"
	"optischolar/internal/api"
	"optischolar/internal/inference"
	"optischolar/internal/logging"
	"optischolar/internal/nav"
	"optischolar/internal/session"
	"optischolar/internal/store"
)

// Focus determines which pane receives movement keys.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusContent
)

// crumb is one drill-down frame stacked above the active sidebar view.
type crumb struct {
	view  nav.ViewID
	title string
}

// Deps are the collaborators the shell needs. Tests substitute fakes.
type Deps struct {
	Config     config.Config
	Client     *api.Client
	Sessions   *session.Store
	State      *store.StateStore
	Grader     inference.Grader
	Assistant  inference.Assistant
	Recognizer inference.Recognizer
}

// Model is the main model for the interactive shell.
type Model struct {
	cfg        config.Config
	client     *api.Client
	sessions   *session.Store
	state      *store.StateStore
	grader     inference.Grader
	assistant  inference.Assistant
	recognizer inference.Recognizer

	styles ui.Styles
	layout ui.LayoutConfig
	spin   spinner.Model

	// nil until login or restore succeeds; the login form owns the screen
	// while it is nil.
	sess  *session.Session
	login loginForm

	activeKey string
	cursor    int // sidebar cursor, flat index over all groups
	focus     Focus
	stack     []crumb

	pages pages
	form  form // active mutation modal, nil when none

	status   string
	width    int
	height   int
	quitting bool
}

// New creates the shell model. A previously persisted session is restored so
// the user lands on their dashboard instead of the login form.
func New(deps Deps) Model {
	styles := ui.NewStyles(ui.ThemeByName(loadTheme(deps.State, deps.Config.Theme)))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		cfg:        deps.Config,
		client:     deps.Client,
		sessions:   deps.Sessions,
		state:      deps.State,
		grader:     deps.Grader,
		assistant:  deps.Assistant,
		recognizer: deps.Recognizer,
		styles:     styles,
		spin:       sp,
		login:      newLoginForm(),
	}

	if sess, err := deps.Sessions.Restore(); err == nil && sess != nil {
		m.sess = sess
		m.activeKey = nav.DefaultKey(sess.Role)
	}
	return m
}

// loadTheme resolves the persisted theme preference, falling back to the
// config file's default.
func loadTheme(state *store.StateStore, fallback string) string {
	if state != nil {
		var name string
		if err := state.Get(store.KeyTheme, &name); err == nil && name != "" {
			return name
		}
	}
	return fallback
}

// Init starts the spinner and the first page load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.sess != nil {
		if cmd := m.loadView(m.currentView()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// currentView resolves the view on top of the drill-down stack, or the
// sidebar's active view when nothing is stacked.
func (m *Model) currentView() nav.ViewID {
	if len(m.stack) > 0 {
		return m.stack[len(m.stack)-1].view
	}
	if m.sess == nil {
		return nav.ViewPlaceholder
	}
	return nav.Resolve(m.sess.Role, m.activeKey)
}

// resetForLogout discards everything derived from the old session. The next
// login starts from a freshly built model so no page cache or drill state
// leaks across identities.
func (m *Model) resetForLogout() {
	if err := m.sessions.Logout(); err != nil {
		logging.SessionError("logout failed: %v", err)
	}
	fresh := New(Deps{
		Config:     m.cfg,
		Client:     m.client,
		Sessions:   m.sessions,
		State:      m.state,
		Grader:     m.grader,
		Assistant:  m.assistant,
		Recognizer: m.recognizer,
	})
	fresh.width = m.width
	fresh.height = m.height
	fresh.layout = m.layout
	fresh.styles = m.styles
	fresh.sess = nil
	*m = fresh
}

// sidebarItems flattens the active role's groups for cursor movement.
func (m *Model) sidebarItems() []nav.Item {
	if m.sess == nil {
		return nil
	}
	var items []nav.Item
	for _, g := range nav.GroupsFor(m.sess.Role) {
		items = append(items, g.Items...)
	}
	return items
}
