package ui

import "strings"

// Version is stamped by the build; the default marks a source build.
var Version = "dev"

func renderAbout(m *Model) string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render("About"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render("storeops " + Version))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("Terminal admin console for the store backend."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("API: " + m.cfg.APIURL))
	return b.String()
}

func renderHelp(m *Model) string {
	rows := []struct{ key, desc string }{
		{"1-6", "Switch screen"},
		{"tab", "Next screen"},
		{"/", "Search"},
		{"f", "Cycle status filter"},
		{"[ ]", "Previous / next page"},
		{"j/k", "Move selection"},
		{"enter", "Edit selected row"},
		{"x", "Delete selected row"},
		{"r", "Reload from server"},
		{"L", "Sign out"},
		{"esc", "Cancel / clear search"},
		{"q", "Quit"},
	}
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(m.styles.InfoText.Render(padCell(row.key, 7)))
		b.WriteString(m.styles.Text.Render(row.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("Press ? to close help."))
	return m.styles.Panel.Render(b.String())
}
