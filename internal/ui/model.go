package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/config"
	"github.com/storeops/storeops/internal/logging"
	"github.com/storeops/storeops/internal/notify"
	"github.com/storeops/storeops/internal/session"
	"github.com/storeops/storeops/internal/workflow"
)

// Options configure the UI.
type Options struct {
	Context  context.Context
	Backend  api.Backend
	Sessions *session.Store
	Config   config.Config
	Logger   logging.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	keys     keyMap
	theme    Theme
	styles   Styles
	backend  api.Backend
	sessions *session.Store
	gate     session.Gate
	center   *notify.Center
	log      logging.Logger
	cfg      config.Config

	route    Route
	width    int
	height   int
	ready    bool
	showHelp bool

	login    loginScreen
	dash     dashboardScreen
	orders   tableScreen[api.Order]
	users    tableScreen[api.User]
	products tableScreen[api.Product]
	reports  tableScreen[api.LogEntry]
}

// New creates the root model. The starting route honors the session gate:
// a persisted credential lands on the dashboard, otherwise on login.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop{}
	}

	theme := GetTheme(opts.Config.Theme)
	m := Model{
		ctx:      ctx,
		keys:     defaultKeyMap(),
		theme:    theme,
		styles:   theme.Styles(),
		backend:  opts.Backend,
		sessions: opts.Sessions,
		gate:     session.NewGate(opts.Sessions),
		center:   notify.NewCenter(notify.DefaultTTL),
		log:      log,
		cfg:      opts.Config,

		login:    newLoginScreen(),
		dash:     newDashboardScreen(),
		orders:   newTableScreen(orderAdapter(opts.Backend), opts.Config.PageSize),
		users:    newTableScreen(userAdapter(opts.Backend), opts.Config.PageSize),
		products: newTableScreen(productAdapter(opts.Backend), opts.Config.PageSize),
		reports:  newTableScreen(reportAdapter(opts.Backend), opts.Config.PageSize),
	}
	m.route = RouteLogin
	if m.gate.Check(true) == session.RedirectToHome {
		m.route = routeHome
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.enterCmd(m.route))
}

// enterCmd triggers a screen's initial work when it becomes current.
// Entering a listing screen always refetches: state is a point-in-time
// snapshot refreshed only by explicit loads.
func (m *Model) enterCmd(route Route) tea.Cmd {
	switch route {
	case RouteDashboard:
		return m.dash.loadCmd(m)
	case RouteOrders:
		return m.orders.loadCmd(m)
	case RouteUsers:
		return m.users.loadCmd(m)
	case RouteProducts:
		return m.products.loadCmd(m)
	case RouteReports:
		return m.reports.loadCmd(m)
	}
	return nil
}

// navigate applies the route guards and switches screens. Guards are
// evaluated on every navigation; unknown destinations land on the
// dashboard via the redirect rules.
func (m *Model) navigate(to Route) tea.Cmd {
	switch m.gate.Check(to.GuestOnly()) {
	case session.RedirectToLogin:
		to = RouteLogin
	case session.RedirectToHome:
		to = routeHome
	}
	if to == RouteLogin {
		m.login.reset()
	}
	m.route = to
	return m.enterCmd(to)
}

// sessionExpired clears the stale credential and bounces to login. A 401
// anywhere funnels through here instead of showing a generic error.
func (m *Model) sessionExpired() tea.Cmd {
	_ = m.sessions.Clear()
	m.log.Warn(m.ctx, "session expired")
	m.resetScreens()
	m.login.reset()
	m.route = RouteLogin
	return m.notifyCmd("Session expired, please sign in again", notify.Warning)
}

func (m *Model) logout() tea.Cmd {
	_ = m.sessions.Clear()
	m.log.Info(m.ctx, "signed out")
	m.resetScreens()
	m.login.reset()
	m.route = RouteLogin
	return m.notifyCmd("Signed out", notify.Info)
}

// resetScreens drops every screen's modal and search state when the
// session ends, so a re-login never resumes a stale workflow.
func (m *Model) resetScreens() {
	m.orders.resetTransient()
	m.users.resetTransient()
	m.products.resetTransient()
	m.reports.resetTransient()
}

// notifyCmd publishes a notification and schedules its expiry tick. The
// tick carries the notification id; a superseded notification's tick
// arrives late and is ignored by the center.
func (m *Model) notifyCmd(message string, kind notify.Kind) tea.Cmd {
	n := m.center.Notify(message, kind)
	return tea.Tick(m.center.TTL(), func(time.Time) tea.Msg {
		return notifyExpireMsg{id: n.ID}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case notifyExpireMsg:
		m.center.Expire(msg.id)
		return m, nil

	case loginResultMsg:
		return m, m.handleLoginResult(msg)

	case statsResultMsg:
		return m, m.handleStatsResult(msg)

	case listResultMsg[api.Order]:
		return m, m.orders.handleList(&m, msg)
	case listResultMsg[api.User]:
		return m, m.users.handleList(&m, msg)
	case listResultMsg[api.Product]:
		return m, m.products.handleList(&m, msg)
	case listResultMsg[api.LogEntry]:
		return m, m.reports.handleList(&m, msg)

	case submitResultMsg[api.Order]:
		return m, m.orders.handleSubmit(&m, msg)
	case submitResultMsg[api.User]:
		return m, m.users.handleSubmit(&m, msg)
	case submitResultMsg[api.Product]:
		return m, m.products.handleSubmit(&m, msg)
	case submitResultMsg[api.LogEntry]:
		return m, m.reports.handleSubmit(&m, msg)
	}
	return m, nil
}

// capturingInput reports whether the current screen owns raw keystrokes,
// in which case single-letter global bindings must not fire.
func (m *Model) capturingInput() bool {
	switch m.route {
	case RouteLogin:
		return true
	case RouteOrders:
		return m.orders.capturing()
	case RouteUsers:
		return m.users.capturing()
	case RouteProducts:
		return m.products.capturing()
	case RouteReports:
		return m.reports.capturing()
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	capturing := m.capturingInput()
	if !capturing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m, m.navigate(nextTabRoute(m.route, false))
		case key.Matches(msg, m.keys.ShiftTab):
			return m, m.navigate(nextTabRoute(m.route, true))
		case key.Matches(msg, m.keys.GoDashboard):
			return m, m.navigate(RouteDashboard)
		case key.Matches(msg, m.keys.GoOrders):
			return m, m.navigate(RouteOrders)
		case key.Matches(msg, m.keys.GoUsers):
			return m, m.navigate(RouteUsers)
		case key.Matches(msg, m.keys.GoProducts):
			return m, m.navigate(RouteProducts)
		case key.Matches(msg, m.keys.GoReports):
			return m, m.navigate(RouteReports)
		case key.Matches(msg, m.keys.GoAbout):
			return m, m.navigate(RouteAbout)
		case key.Matches(msg, m.keys.Logout):
			if m.route != RouteLogin {
				return m, m.logout()
			}
		}
	}

	switch m.route {
	case RouteLogin:
		return m, m.login.handleKey(&m, msg)
	case RouteDashboard:
		if !capturing && key.Matches(msg, m.keys.Refetch) {
			return m, m.dash.loadCmd(&m)
		}
	case RouteOrders:
		if cmd, handled := m.orders.handleKey(&m, msg); handled {
			return m, cmd
		}
	case RouteUsers:
		if cmd, handled := m.users.handleKey(&m, msg); handled {
			return m, cmd
		}
	case RouteProducts:
		if cmd, handled := m.products.handleKey(&m, msg); handled {
			return m, cmd
		}
	case RouteReports:
		if cmd, handled := m.reports.handleKey(&m, msg); handled {
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return renderHelp(&m)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.route {
	case RouteLogin:
		b.WriteString(m.login.render(&m, m.width))
	case RouteDashboard:
		b.WriteString(m.dash.render(&m, m.width))
	case RouteOrders:
		b.WriteString(m.orders.render(&m, m.width))
	case RouteUsers:
		b.WriteString(m.users.render(&m, m.width))
	case RouteProducts:
		b.WriteString(m.products.render(&m, m.width))
	case RouteReports:
		b.WriteString(m.reports.render(&m, m.width))
	case RouteAbout:
		b.WriteString(renderAbout(&m))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderHeader() string {
	if m.route == RouteLogin {
		return m.styles.HeaderBar.Render(" storeops ")
	}
	var tabs []string
	for _, r := range tabRoutes {
		label := " " + r.Title() + " "
		if r == m.route {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.HeaderBar.Render(label))
		}
	}
	return strings.Join(tabs, "")
}

// renderStatusBar shows the live notification, or key hints when idle.
func (m *Model) renderStatusBar() string {
	if n, ok := m.center.Current(); ok {
		style := m.styles.InfoText
		switch n.Kind {
		case notify.Success:
			style = m.styles.SuccessText
		case notify.Error:
			style = m.styles.DangerText
		case notify.Warning:
			style = m.styles.WarningText
		}
		return style.Render("● " + n.Message)
	}
	if m.route == RouteLogin {
		return m.styles.MutedText.Render("ctrl+c quit")
	}
	return m.styles.MutedText.Render("? help · q quit")
}

// capturing reports whether the screen is in search or modal input mode.
func (s *tableScreen[T]) capturing() bool {
	return s.searching || s.wf.Phase() != workflow.Closed
}

// Run starts the Bubble Tea program and blocks until quit or context
// cancellation.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := program.Run()
	return err
}
