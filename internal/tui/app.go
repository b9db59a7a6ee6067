package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salim-ai/salim-client/internal/session"
)

// RootModel is the view shell: a router that
//  1. keeps the active route and page,
//  2. guards every navigation against the session state,
//  3. handles global Ctrl+C quit,
//  4. delegates all other messages to the active page.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model
	route   string

	session *session.Store

	initialize tea.Cmd
	quitByUser bool
}

// NewRootModel registers all pages and opens the loading surface; the
// initialize command kicks off session rehydration.
func NewRootModel(pages map[string]tea.Model, sessionStore *session.Store, initialize tea.Cmd) RootModel {
	return RootModel{
		pages:      pages,
		current:    pages[routeLoading],
		route:      routeLoading,
		session:    sessionStore,
		initialize: initialize,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{r.initialize}
	if r.current != nil {
		cmds = append(cmds, r.current.Init())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			r.quitByUser = true
			return r, tea.Quit
		}
	}

	switch m := msg.(type) {
	case initDoneMsg:
		// Rehydration finished; leave the loading surface for
		// whatever the guard resolves the root path to.
		return r.navigate(routeRoot, nil)

	case sessionExpiredMsg:
		// Navigate first, then let the login page render its hint.
		model, cmd := r.navigate(routeLogin, nil)
		root, ok := model.(RootModel)
		if !ok || root.current == nil {
			return model, cmd
		}
		updated, pageCmd := root.current.Update(msg)
		root.current = updated
		root.pages[root.route] = updated
		return root, tea.Batch(cmd, pageCmd)

	case logoutDoneMsg:
		return r.navigate(routeLogin, nil)

	case NavigateTo:
		return r.navigate(m.Route, m.Payload)
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.route] = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.current == nil {
		return renderPage("SALIM", "", "")
	}
	return r.current.View()
}

// navigate applies the route guard and switches to the resolved page.
func (r RootModel) navigate(path string, payload any) (tea.Model, tea.Cmd) {
	resolved := r.resolve(path)

	next, exists := r.pages[resolved]
	if !exists {
		return r, nil
	}

	r.route = resolved
	r.current = next

	if payload != nil {
		return r, func() tea.Msg { return payload }
	}
	return r, r.current.Init()
}

// resolve maps a requested path to the surface the session state allows:
// every route shows the indeterminate indicator while loading; a protected
// route visited unauthenticated redirects to login; a public route visited
// authenticated redirects to the dashboard; the root path is the dashboard;
// anything unmatched is the terminal not-found surface.
func (r RootModel) resolve(path string) string {
	snapshot := r.session.Snapshot()
	if snapshot.Loading {
		return routeLoading
	}

	if path == routeRoot || path == "" || path == routeLoading {
		path = routeDashboard
	}
	if _, known := r.pages[path]; !known {
		return routeNotFound
	}
	if path == routeNotFound {
		return path
	}

	if isPublicRoute(path) {
		if snapshot.Authenticated {
			return routeDashboard
		}
		return path
	}

	if !snapshot.Authenticated {
		return routeLogin
	}
	return path
}
