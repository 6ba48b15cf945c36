package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/collection"
	"github.com/storeops/storeops/internal/notify"
	"github.com/storeops/storeops/internal/view"
	"github.com/storeops/storeops/internal/workflow"
)

// fetchPageSize is how many records one load asks the backend for. All
// search, filtering, and pagination happens client-side over this set.
const fetchPageSize = 200

// tableScreen is the shared async data-table controller. One instance per
// entity screen; the adapter supplies everything entity-specific.
type tableScreen[T api.Entity] struct {
	ad   adapter[T]
	coll *collection.Collection[T]
	vs   view.State
	wf   *workflow.Workflow[T]

	page   view.Page[T]
	cursor int
	counts map[string]int

	searching   bool
	searchInput textinput.Model

	fields   []formField
	inputs   []textinput.Model
	focusIdx int
}

func newTableScreen[T api.Entity](ad adapter[T], pageSize int) tableScreen[T] {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search"
	input.CharLimit = 64
	return tableScreen[T]{
		ad:          ad,
		coll:        collection.New[T](),
		vs:          view.NewState(pageSize),
		wf:          workflow.New[T](),
		searchInput: input,
	}
}

// filterOptions returns the cycling sequence for the status filter.
func (s *tableScreen[T]) filterOptions() []string {
	return append([]string{"all"}, s.ad.statusFilters...)
}

// loadCmd begins a generation-tagged fetch of the collection.
func (s *tableScreen[T]) loadCmd(m *Model) tea.Cmd {
	params := s.coll.LastParams()
	if params.PerPage == 0 {
		params = api.ListParams{Page: 1, PerPage: fetchPageSize}
	}
	gen := s.coll.BeginLoad(params)
	fetch := s.ad.fetch
	ctx := m.ctx
	return func() tea.Msg {
		items, meta, err := fetch(ctx, params)
		return listResultMsg[T]{gen: gen, items: items, meta: meta, err: err}
	}
}

func (s *tableScreen[T]) handleList(m *Model, msg listResultMsg[T]) tea.Cmd {
	if !s.coll.Resolve(msg.gen, msg.items, msg.meta, msg.err) {
		// A newer load was issued after this one started.
		return nil
	}
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			return m.sessionExpired()
		}
		m.log.Error(m.ctx, "collection load failed", "entity", s.ad.entity, "error", msg.err)
		return nil
	}
	m.log.Info(m.ctx, "collection loaded", "entity", s.ad.entity, "count", len(msg.items))
	if s.ad.statusOf != nil {
		s.counts = view.CountByStatus(s.coll.Items(), s.ad.statusOf)
	}
	s.reproject()
	return nil
}

// reproject recomputes the visible page and clamps the cursor. Projection
// is pure, so this is safe to run after every state change.
func (s *tableScreen[T]) reproject() {
	s.page = view.Project(s.coll.Items(), s.vs, s.ad.searchFields, s.ad.statusOf)
	s.vs.PageIndex = s.page.PageIndex
	if s.cursor > len(s.page.Visible)-1 {
		s.cursor = len(s.page.Visible) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// resetTransient cancels any open workflow and clears modal and search
// state. Runs when the session ends while a modal or search is active.
func (s *tableScreen[T]) resetTransient() {
	s.wf.Cancel()
	s.fields = nil
	s.inputs = nil
	s.focusIdx = 0
	s.searching = false
	s.searchInput.Blur()
}

func (s *tableScreen[T]) selected() (T, bool) {
	var zero T
	if s.cursor < 0 || s.cursor >= len(s.page.Visible) {
		return zero, false
	}
	return s.page.Visible[s.cursor], true
}

// handleKey processes a key press. The bool reports whether the key was
// consumed; unconsumed keys fall through to the root model's global
// bindings.
func (s *tableScreen[T]) handleKey(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	if s.wf.Phase() != workflow.Closed {
		return s.handleModalKey(m, msg), true
	}
	if s.searching {
		return s.handleSearchKey(msg), true
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		s.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		s.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		s.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		s.cursor = len(s.page.Visible) - 1
		if s.cursor < 0 {
			s.cursor = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		if s.vs.PageIndex > 0 {
			s.vs.PageIndex--
			s.reproject()
		}
	case key.Matches(msg, m.keys.NextPage):
		if s.vs.PageIndex < s.page.TotalPages-1 {
			s.vs.PageIndex++
			s.reproject()
		}
	case key.Matches(msg, m.keys.Search):
		s.searching = true
		s.searchInput.SetValue(s.vs.Search)
		s.searchInput.Focus()
	case key.Matches(msg, m.keys.CycleFilter):
		if s.ad.statusOf != nil {
			s.cycleFilter()
		}
	case key.Matches(msg, m.keys.Refetch):
		return s.loadCmd(m), true
	case key.Matches(msg, m.keys.Delete):
		if s.ad.deleteRecord != nil {
			if record, ok := s.selected(); ok {
				s.wf.OpenDelete(record)
			}
		}
	case key.Matches(msg, m.keys.Edit):
		s.openEdit()
	case key.Matches(msg, m.keys.Escape):
		if s.vs.Search != "" {
			s.vs.SetSearch("")
			s.reproject()
		} else {
			return nil, false
		}
	default:
		return nil, false
	}
	return nil, true
}

func (s *tableScreen[T]) moveCursor(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if last := len(s.page.Visible) - 1; s.cursor > last {
		s.cursor = last
		if s.cursor < 0 {
			s.cursor = 0
		}
	}
}

func (s *tableScreen[T]) cycleFilter() {
	options := s.filterOptions()
	idx := 0
	for i, o := range options {
		if o == s.vs.StatusFilter {
			idx = i
			break
		}
	}
	s.vs.SetFilter(options[(idx+1)%len(options)])
	s.reproject()
}

func (s *tableScreen[T]) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		s.searching = false
		s.searchInput.Blur()
		return nil
	case tea.KeyEsc:
		s.searching = false
		s.searchInput.Blur()
		s.vs.SetSearch("")
		s.reproject()
		return nil
	}
	var cmd tea.Cmd
	s.searchInput, cmd = s.searchInput.Update(msg)
	// Live filtering: every keystroke narrows the table immediately.
	s.vs.SetSearch(s.searchInput.Value())
	s.reproject()
	return cmd
}

// openEdit opens the edit modal on the selected record.
func (s *tableScreen[T]) openEdit() {
	if s.ad.editFields == nil {
		return
	}
	record, ok := s.selected()
	if !ok {
		return
	}
	s.wf.Open(record)
	s.fields = s.ad.editFields(record)
	s.inputs = make([]textinput.Model, len(s.fields))
	s.focusIdx = -1
	for i, f := range s.fields {
		if f.kind != fieldText {
			continue
		}
		input := textinput.New()
		input.SetValue(f.value)
		input.CharLimit = 64
		input.Prompt = ""
		s.inputs[i] = input
		if s.focusIdx == -1 {
			s.focusIdx = i
			input.Focus()
			s.inputs[i] = input
		}
	}
	if s.focusIdx == -1 {
		s.focusIdx = 0
	}
}

func (s *tableScreen[T]) handleModalKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		// Cancellation is always allowed, even mid-submit; the in-flight
		// result is discarded by the workflow token check.
		s.wf.Cancel()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		return s.submitCmd(m)
	}

	if s.wf.Kind() == workflow.KindDelete || s.wf.Phase() == workflow.Submitting {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.NextField):
		s.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevField):
		s.moveFocus(-1)
		return nil
	}

	if s.focusIdx < 0 || s.focusIdx >= len(s.fields) {
		return nil
	}
	field := &s.fields[s.focusIdx]
	if field.kind == fieldChoice {
		switch msg.String() {
		case "left", "h":
			field.choice = (field.choice - 1 + len(field.options)) % len(field.options)
		case "right", "l", " ":
			field.choice = (field.choice + 1) % len(field.options)
		}
		return nil
	}
	var cmd tea.Cmd
	s.inputs[s.focusIdx], cmd = s.inputs[s.focusIdx].Update(msg)
	return cmd
}

func (s *tableScreen[T]) moveFocus(delta int) {
	if len(s.fields) == 0 {
		return
	}
	if s.focusIdx >= 0 && s.focusIdx < len(s.inputs) && s.fields[s.focusIdx].kind == fieldText {
		s.inputs[s.focusIdx].Blur()
	}
	s.focusIdx = (s.focusIdx + delta + len(s.fields)) % len(s.fields)
	if s.fields[s.focusIdx].kind == fieldText {
		s.inputs[s.focusIdx].Focus()
	}
}

// submitCmd validates the form and issues the mutation. Re-entry while a
// submit is in flight is rejected by the workflow.
func (s *tableScreen[T]) submitCmd(m *Model) tea.Cmd {
	if s.wf.Phase() != workflow.Editing {
		return nil
	}
	for i := range s.fields {
		if s.fields[i].kind == fieldText {
			s.fields[i].value = s.inputs[i].Value()
		}
	}

	target := s.wf.Target()
	ctx := m.ctx

	if s.wf.Kind() == workflow.KindDelete {
		token, ok := s.wf.BeginSubmit()
		if !ok {
			return nil
		}
		id := target.EntityID()
		del := s.ad.deleteRecord
		return func() tea.Msg {
			err := del(ctx, id)
			return submitResultMsg[T]{token: token, id: id, remove: true, err: err}
		}
	}

	call, apply, err := s.ad.buildSubmit(target, s.fields)
	if err != nil {
		s.wf.RejectInvalid(err)
		return nil
	}
	token, ok := s.wf.BeginSubmit()
	if !ok {
		return nil
	}
	id := target.EntityID()
	return func() tea.Msg {
		record, err := call(ctx)
		return submitResultMsg[T]{token: token, id: id, record: record, apply: apply, err: err}
	}
}

func (s *tableScreen[T]) handleSubmit(m *Model, msg submitResultMsg[T]) tea.Cmd {
	if !s.wf.ResolveSubmit(msg.token, msg.err) {
		// Cancelled or superseded while in flight: discard silently.
		return nil
	}
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			return m.sessionExpired()
		}
		// Cache untouched: the patch only happens after confirmation.
		m.log.Warn(m.ctx, "mutation rejected", "entity", s.ad.entity, "id", msg.id, "error", msg.err)
		return m.notifyCmd(s.wf.Err(), notify.Error)
	}

	if msg.remove {
		if s.coll.RemoveByID(msg.id) && s.ad.afterRemove != nil {
			s.ad.afterRemove(s.coll)
		}
		s.reproject()
		m.log.Info(m.ctx, "record deleted", "entity", s.ad.entity, "id", msg.id)
		return m.notifyCmd("Record deleted", notify.Success)
	}

	// Confirm-then-apply: prefer the server's copy, fall back to the
	// proposed change. A missing id means a concurrent delete won; the
	// patch no-ops.
	if msg.record != nil {
		s.coll.Replace(msg.id, *msg.record)
	} else if msg.apply != nil {
		s.coll.PatchOne(msg.id, msg.apply)
	}
	if s.ad.statusOf != nil {
		s.counts = view.CountByStatus(s.coll.Items(), s.ad.statusOf)
	}
	s.reproject()
	m.log.Info(m.ctx, "record updated", "entity", s.ad.entity, "id", msg.id)
	return m.notifyCmd("Changes saved", notify.Success)
}

// render draws the screen: summary line, search/filter line, then the
// table, an inline error, or the modal.
func (s *tableScreen[T]) render(m *Model, width int) string {
	var b strings.Builder

	b.WriteString(s.renderSummary(m))
	b.WriteString("\n")
	b.WriteString(s.renderFilterLine(m))
	b.WriteString("\n\n")

	if s.wf.Phase() != workflow.Closed {
		b.WriteString(s.renderModal(m, width))
		return b.String()
	}

	switch s.coll.Status() {
	case collection.Idle, collection.Loading:
		b.WriteString(m.styles.MutedText.Render("Loading " + s.ad.entity + "..."))
	case collection.Failed:
		b.WriteString(s.renderLoadError(m))
	default:
		b.WriteString(s.renderTable(m))
	}
	return b.String()
}

func (s *tableScreen[T]) renderSummary(m *Model) string {
	title := m.styles.AccentText.Bold(true).Render(s.ad.route.Title())
	parts := []string{title}
	if s.ad.statusOf != nil && len(s.counts) > 0 {
		for _, status := range s.ad.statusFilters {
			if n := s.counts[status]; n > 0 {
				parts = append(parts, m.theme.StatusStyle(status).Render(fmt.Sprintf("%d %s", n, status)))
			}
		}
	}
	if !s.coll.LastFetched().IsZero() {
		parts = append(parts, m.styles.MutedText.Render("fetched "+s.coll.LastFetched().Format("15:04:05")))
	}
	return strings.Join(parts, "  ")
}

func (s *tableScreen[T]) renderFilterLine(m *Model) string {
	var parts []string
	if s.searching {
		parts = append(parts, s.searchInput.View())
	} else if s.vs.Search != "" {
		parts = append(parts, m.styles.InfoText.Render("search: "+s.vs.Search))
	}
	if s.ad.statusOf != nil && s.vs.StatusFilter != "all" {
		parts = append(parts, m.styles.InfoText.Render("filter: "+s.vs.StatusFilter))
	}
	if len(parts) == 0 {
		return m.styles.MutedText.Render("/ search · f filter · r reload")
	}
	return strings.Join(parts, "  ")
}

func (s *tableScreen[T]) renderLoadError(m *Model) string {
	message := "load failed"
	if err := s.coll.Err(); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			message = apiErr.UserMessage()
		} else {
			message = err.Error()
		}
	}
	body := m.styles.DangerText.Render("Could not load "+s.ad.entity+": "+message) +
		"\n" + m.styles.MutedText.Render("Press r to retry.")
	return m.styles.Panel.Render(body)
}

func (s *tableScreen[T]) renderTable(m *Model) string {
	var b strings.Builder

	var header strings.Builder
	for _, col := range s.ad.columns {
		header.WriteString(padCell(col.title, col.width))
		header.WriteString("  ")
	}
	b.WriteString(m.styles.TableHeader.Render(strings.TrimRight(header.String(), " ")))
	b.WriteString("\n")

	if len(s.page.Visible) == 0 {
		b.WriteString(m.styles.MutedText.Render("No matching records."))
		b.WriteString("\n")
	}
	for i, record := range s.page.Visible {
		var row strings.Builder
		for _, col := range s.ad.columns {
			row.WriteString(padCell(col.cell(record), col.width))
			row.WriteString("  ")
		}
		line := strings.TrimRight(row.String(), " ")
		if i == s.cursor {
			line = m.styles.SelectedRow.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.page.TotalPages > 0 {
		b.WriteString(m.styles.MutedText.Render(fmt.Sprintf(
			"Page %d/%d · %d records", s.page.PageIndex+1, s.page.TotalPages, s.page.TotalItems)))
	} else {
		b.WriteString(m.styles.MutedText.Render("0 records"))
	}
	return b.String()
}
