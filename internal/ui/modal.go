package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/workflow"
)

// renderModal draws the mutation surface: an edit form or a delete
// confirmation, with any error from the last attempt near the action row.
func (s *tableScreen[T]) renderModal(m *Model, width int) string {
	var b strings.Builder

	if s.wf.Kind() == workflow.KindDelete {
		b.WriteString(m.styles.DangerText.Bold(true).Render("Delete record"))
		b.WriteString("\n\n")
		label := s.wf.TargetID()
		if s.ad.deleteLabel != nil {
			label = s.ad.deleteLabel(s.wf.Target())
		}
		b.WriteString(m.styles.Text.Render("Delete " + label + "?"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.AccentText.Bold(true).Render("Edit " + strings.TrimSuffix(s.ad.entity, "s")))
		b.WriteString("\n\n")
		for i, field := range s.fields {
			b.WriteString(s.renderField(m, i, field))
			b.WriteString("\n")
		}
	}

	if errText := s.wf.Err(); errText != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.wf.Phase() == workflow.Submitting {
		b.WriteString(m.styles.MutedText.Render("Submitting..."))
	} else {
		b.WriteString(m.styles.MutedText.Render("enter confirm · esc cancel"))
	}

	box := m.styles.ModalPanel.Render(b.String())
	if width > lipgloss.Width(box) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}

func (s *tableScreen[T]) renderField(m *Model, idx int, field formField) string {
	label := padCell(field.label, 8)
	focused := idx == s.focusIdx

	var value string
	switch field.kind {
	case fieldChoice:
		value = "◀ " + field.current() + " ▶"
		if s.ad.entity == "orders" {
			value = "◀ " + renderStatusValue(m, field.current()) + " ▶"
		}
	default:
		value = s.inputs[idx].View()
	}

	if focused {
		return m.styles.AccentText.Render("> ") + m.styles.Text.Render(label) + " " + value
	}
	return "  " + m.styles.MutedText.Render(label) + " " + value
}

func renderStatusValue(m *Model, status string) string {
	if !contains(api.OrderStatuses, status) {
		return status
	}
	return m.theme.StatusStyle(status).Render(status)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
