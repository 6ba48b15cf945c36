package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten..", 13, "exactly ten.."},
		{"a long value that overflows", 10, "a long ..."},
		{"abc", 2, "ab"},
		{"  padded  ", 10, "padded"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("ab", 5); got != "ab   " {
		t.Errorf("padCell short = %q", got)
	}
	if got := padCell("abcdefgh", 5); got != "ab..." {
		t.Errorf("padCell long = %q", got)
	}
	if got := padCell("abcde", 5); got != "abcde" {
		t.Errorf("padCell exact = %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney(1234.5); got != "$1234.50" {
		t.Errorf("formatMoney = %q", got)
	}
}

func TestNextTabRoute(t *testing.T) {
	if got := nextTabRoute(RouteDashboard, false); got != RouteOrders {
		t.Errorf("forward from dashboard = %v", got)
	}
	if got := nextTabRoute(RouteDashboard, true); got != RouteAbout {
		t.Errorf("backward from dashboard = %v", got)
	}
	if got := nextTabRoute(RouteAbout, false); got != RouteDashboard {
		t.Errorf("forward wraps = %v", got)
	}
	if got := nextTabRoute(RouteLogin, false); got != RouteOrders {
		t.Errorf("off-tab route advances from first tab = %v", got)
	}
}
