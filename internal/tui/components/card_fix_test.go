package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	// Short card first so its padding sits at the start of each line.
	joined := CardRow([]string{shortCard, tallCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "\x1b[") {
			t.Fatalf("line %d padding has no background styling: %q", i, lines[i])
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Fatalf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{100, 3},
		{80, 4},
		{7, 2},
		{0, 1},
	}
	for _, tt := range tests {
		sum := 0
		for _, w := range LayoutRow(tt.total, tt.n) {
			sum += w
		}
		if sum != tt.total {
			t.Fatalf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i := range Tabs {
			w := TabWidth(i, active)
			if got := TabAtX(pos+w/2, active); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + len(tabSep)
		}
		if got := TabAtX(pos+50, active); got != -1 {
			t.Fatalf("x past the last tab = %d, want -1", got)
		}
	}
}

func TestTabBarWidthMatchesHitboxes(t *testing.T) {
	theme.SetActive("flexoki-dark")
	for active := range Tabs {
		want := 0
		for i := range Tabs {
			want += TabWidth(i, active)
		}
		want += len(tabSep) * (len(Tabs) - 1)

		bar := RenderTabBar(active, 0)
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d tab bar width = %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	tests := map[rune]int{'p': 0, 's': 1, 'c': 2, 'n': 3, 'z': -1}
	for key, want := range tests {
		if got := TabIdxByKey(key); got != want {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", key, got, want)
		}
	}
}

func TestChartLabels(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{500, "$500"},
		{2000, "$2k"},
		{2500, "$2.5k"},
		{1500000, "$1.5M"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v); got != tt.want {
			t.Fatalf("formatChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestDownsampleKeepsEnds(t *testing.T) {
	values := make([]float64, 100)
	labels := make([]string, 100)
	for i := range values {
		values[i] = float64(i)
		labels[i] = string(rune('a' + i%26))
	}
	got, gotLabels := Downsample(values, labels, 10)
	if len(got) != 10 || len(gotLabels) != 10 {
		t.Fatalf("len = %d/%d, want 10", len(got), len(gotLabels))
	}
	if got[0] != 0 || got[9] != 99 {
		t.Fatalf("ends = %v, %v, want 0, 99", got[0], got[9])
	}
}

func TestColorForPaid(t *testing.T) {
	theme.SetActive("flexoki-dark")
	if ColorForPaid(1) != theme.Active.PaidOff {
		t.Fatal("fully paid should use the paid-off color")
	}
	if ColorForPaid(0.5) != theme.Active.Balance {
		t.Fatal("half paid should use the balance color")
	}
}
