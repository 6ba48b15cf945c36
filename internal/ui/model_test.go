package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/config"
	"github.com/storeops/storeops/internal/notify"
	"github.com/storeops/storeops/internal/session"
	"github.com/storeops/storeops/internal/workflow"
)

type stubBackend struct {
	orders    []api.Order
	ordersErr error
	stats     *api.Statistics
	loginTok  string
	loginErr  error
}

func (b *stubBackend) Login(ctx context.Context, email, password string) (string, error) {
	return b.loginTok, b.loginErr
}

func (b *stubBackend) ListOrders(ctx context.Context, params api.ListParams) ([]api.Order, api.PageMeta, error) {
	meta := api.PageMeta{CurrentPage: 1, LastPage: 1, PerPage: params.PerPage, Total: len(b.orders)}
	return b.orders, meta, b.ordersErr
}

func (b *stubBackend) UpdateOrderStatus(ctx context.Context, id, status string) (*api.Order, error) {
	return nil, nil
}

func (b *stubBackend) ListUsers(ctx context.Context, params api.ListParams) ([]api.User, api.PageMeta, error) {
	return nil, api.PageMeta{}, nil
}

func (b *stubBackend) UpdateUser(ctx context.Context, id string, change api.UserChange) (*api.User, error) {
	return nil, nil
}

func (b *stubBackend) DeleteUser(ctx context.Context, id string) error { return nil }

func (b *stubBackend) ListProducts(ctx context.Context, params api.ListParams) ([]api.Product, api.PageMeta, error) {
	return nil, api.PageMeta{}, nil
}

func (b *stubBackend) UpdateProduct(ctx context.Context, id string, change api.ProductChange) (*api.Product, error) {
	return nil, nil
}

func (b *stubBackend) DeleteProduct(ctx context.Context, id string) error { return nil }

func (b *stubBackend) ListReports(ctx context.Context) ([]api.LogEntry, error) {
	return nil, nil
}

func (b *stubBackend) OrderStatistics(ctx context.Context) (*api.Statistics, error) {
	if b.stats != nil {
		return b.stats, nil
	}
	return &api.Statistics{}, nil
}

// drainCmd executes a command tree synchronously, flattening batches, and
// returns every message produced.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func newTestModel(t *testing.T, backend api.Backend, token string) Model {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, store.Save(token))
	}
	return New(Options{
		Context:  context.Background(),
		Backend:  backend,
		Sessions: store,
		Config:   config.Config{PageSize: 10},
	})
}

func TestStartsOnLoginWhenSignedOut(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "")
	assert.Equal(t, RouteLogin, m.route)
}

func TestStartsOnDashboardWhenSignedIn(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "token-1")
	assert.Equal(t, RouteDashboard, m.route)
}

func TestNavigateRedirectsGuestToLogin(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "")
	cmd := m.navigate(RouteOrders)
	assert.Equal(t, RouteLogin, m.route)
	assert.Nil(t, cmd)
}

func TestNavigateRedirectsAuthenticatedOffLogin(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "token-1")
	_ = m.navigate(RouteLogin)
	assert.Equal(t, routeHome, m.route)
}

func TestOrdersLoadRoundTrip(t *testing.T) {
	backend := &stubBackend{orders: []api.Order{
		{ID: "1", Number: "ORD-001", Customer: api.CustomerRef{Name: "Ada"}, Status: "pending"},
		{ID: "2", Number: "ORD-002", Customer: api.CustomerRef{Name: "Grace"}, Status: "shipped"},
	}}
	m := newTestModel(t, backend, "token-1")

	cmd := m.navigate(RouteOrders)
	require.NotNil(t, cmd)
	msg := cmd()
	listMsg, ok := msg.(listResultMsg[api.Order])
	require.True(t, ok)

	next, _ := m.Update(listMsg)
	m = next.(Model)
	assert.Len(t, m.orders.page.Visible, 2)
}

func TestUnauthorizedLoadClearsSession(t *testing.T) {
	backend := &stubBackend{ordersErr: &api.Error{Kind: api.KindUnauthorized, StatusCode: 401}}
	m := newTestModel(t, backend, "token-1")

	cmd := m.navigate(RouteOrders)
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.Equal(t, RouteLogin, m.route)
	assert.False(t, m.sessions.Authenticated())
	n, ok := m.center.Current()
	require.True(t, ok)
	assert.Contains(t, n.Message, "Session expired")
}

func TestStartupStatisticsLoad(t *testing.T) {
	backend := &stubBackend{stats: &api.Statistics{Pending: 4}}
	m := newTestModel(t, backend, "token-1")
	require.Equal(t, RouteDashboard, m.route)

	// The generation issued by Init's load must match the one the stored
	// model checks results against.
	var statsMsg statsResultMsg
	found := false
	for _, msg := range drainCmd(m.Init()) {
		if sm, ok := msg.(statsResultMsg); ok {
			statsMsg = sm
			found = true
		}
	}
	require.True(t, found)

	next, _ := m.Update(statsMsg)
	m = next.(Model)
	require.NotNil(t, m.dash.state.stats)
	assert.Equal(t, 4, m.dash.state.stats.Pending)
	assert.False(t, m.dash.state.loading)
}

func TestUnauthorizedSubmitResetsWorkflow(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "token-1")

	m.orders.wf.Open(api.Order{ID: "o-1", Status: "pending"})
	token, ok := m.orders.wf.BeginSubmit()
	require.True(t, ok)

	next, _ := m.Update(submitResultMsg[api.Order]{
		token: token,
		id:    "o-1",
		err:   &api.Error{Kind: api.KindUnauthorized, StatusCode: 401},
	})
	m = next.(Model)

	assert.Equal(t, RouteLogin, m.route)
	assert.Equal(t, workflow.Closed, m.orders.wf.Phase())
	assert.Empty(t, m.orders.wf.Err())

	// Re-login and return to the screen: no stale modal resumes.
	require.NoError(t, m.sessions.Save("token-2"))
	_ = m.navigate(RouteOrders)
	assert.Equal(t, RouteOrders, m.route)
	assert.False(t, m.orders.capturing())
}

func TestNotifyExpireDismissesCurrent(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "")
	n := m.center.Notify("saved", notify.Success)
	next, _ := m.Update(notifyExpireMsg{id: n.ID})
	m = next.(Model)
	_, ok := m.center.Current()
	assert.False(t, ok)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &stubBackend{}, "token-1")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
