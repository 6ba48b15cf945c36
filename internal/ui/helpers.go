package ui

import (
	"fmt"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padCell fits a value into a fixed column width, truncating or padding
// with spaces.
func padCell(value string, width int) string {
	value = truncate(value, width)
	if gap := width - len([]rune(value)); gap > 0 {
		return value + strings.Repeat(" ", gap)
	}
	return value
}

// formatMoney renders a currency amount for table cells.
func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
