package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storeops/storeops/internal/api"
)

// dashboardScreen shows the order statistics cards and session info. The
// mutable load state lives behind a pointer so the generation survives
// model copies, the same way a table screen shares its collection.
type dashboardScreen struct {
	state *dashState
}

type dashState struct {
	stats   *api.Statistics
	err     error
	loading bool
	gen     uint64
}

func newDashboardScreen() dashboardScreen {
	return dashboardScreen{state: &dashState{}}
}

// loadCmd fetches the statistics. Like collection loads, results carry a
// generation so a stale response cannot overwrite a newer one.
func (s *dashboardScreen) loadCmd(m *Model) tea.Cmd {
	s.state.gen++
	s.state.loading = true
	gen := s.state.gen
	backend := m.backend
	ctx := m.ctx
	return func() tea.Msg {
		stats, err := backend.OrderStatistics(ctx)
		return statsResultMsg{gen: gen, stats: stats, err: err}
	}
}

func (m *Model) handleStatsResult(msg statsResultMsg) tea.Cmd {
	st := m.dash.state
	if msg.gen != st.gen {
		return nil
	}
	st.loading = false
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			return m.sessionExpired()
		}
		st.err = msg.err
		m.log.Error(m.ctx, "statistics load failed", "error", msg.err)
		return nil
	}
	st.stats = msg.stats
	st.err = nil
	return nil
}

func (s *dashboardScreen) render(m *Model, width int) string {
	st := s.state
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render("Dashboard"))
	b.WriteString("\n\n")

	switch {
	case st.loading && st.stats == nil:
		b.WriteString(m.styles.MutedText.Render("Loading statistics..."))
	case st.err != nil && st.stats == nil:
		b.WriteString(m.styles.DangerText.Render("Could not load statistics: " + st.err.Error()))
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("Press r to retry."))
	case st.stats != nil:
		b.WriteString(s.renderCards(m))
	}

	b.WriteString("\n\n")
	b.WriteString(s.renderSession(m))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("2 orders · 3 users · 4 products · 5 reports · ? help"))
	return b.String()
}

func (s *dashboardScreen) renderCards(m *Model) string {
	stats := s.state.stats
	cards := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Pending", fmt.Sprintf("%d", stats.Pending), m.theme.StatusStyle(api.OrderPending)},
		{"Processing", fmt.Sprintf("%d", stats.Processing), m.theme.StatusStyle(api.OrderProcessing)},
		{"Completed", fmt.Sprintf("%d", stats.Completed), m.theme.StatusStyle(api.OrderCompleted)},
		{"Cancelled", fmt.Sprintf("%d", stats.Cancelled), m.theme.StatusStyle(api.OrderCancelled)},
		{"Revenue", formatMoney(stats.TotalRevenue), m.styles.SuccessText},
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		body := card.style.Bold(true).Render(card.value) + "\n" + m.styles.MutedText.Render(card.label)
		rendered = append(rendered, m.styles.Panel.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (s *dashboardScreen) renderSession(m *Model) string {
	if expiry, ok := m.sessions.ExpiresAt(); ok {
		remaining := time.Until(expiry).Round(time.Minute)
		if remaining <= 0 {
			return m.styles.WarningText.Render("Session token has expired; the next request will sign you out.")
		}
		return m.styles.MutedText.Render(fmt.Sprintf("Session expires %s (%s)",
			expiry.Local().Format("15:04"), remaining))
	}
	return m.styles.MutedText.Render("Signed in")
}
