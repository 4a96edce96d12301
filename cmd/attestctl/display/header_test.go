package display

import (
	"strings"
	"testing"
)

// TestCycleTab tests wrap-around in both directions
func TestCycleTab(t *testing.T) {
	tests := []struct {
		name                  string
		current, delta, count int
		want                  int
	}{
		{name: "forward", current: 0, delta: 1, count: 3, want: 1},
		{name: "forward wraps", current: 2, delta: 1, count: 3, want: 0},
		{name: "backward", current: 2, delta: -1, count: 3, want: 1},
		{name: "backward wraps", current: 0, delta: -1, count: 3, want: 2},
		{name: "large delta", current: 1, delta: 7, count: 3, want: 2},
		{name: "large negative delta", current: 1, delta: -7, count: 3, want: 0},
		{name: "single tab", current: 0, delta: 1, count: 1, want: 0},
		{name: "no tabs", current: 4, delta: 1, count: 0, want: 0},
		{name: "normalize", current: 5, delta: 0, count: 2, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CycleTab(tt.current, tt.delta, tt.count); got != tt.want {
				t.Errorf("CycleTab(%d, %d, %d) = %d, want %d",
					tt.current, tt.delta, tt.count, got, tt.want)
			}
		})
	}
}

// TestPageHeader tests that the title and subtitle are rendered in order
func TestPageHeader(t *testing.T) {
	out := PageHeader("Batches", "3 batches at http://localhost:3000")
	title := strings.Index(out, "Batches")
	sub := strings.Index(out, "3 batches at http://localhost:3000")
	if title < 0 || sub < 0 {
		t.Fatalf("header missing text:\n%s", out)
	}
	if title > sub {
		t.Errorf("title should come before subtitle:\n%s", out)
	}

	plain := PageHeader("  Recipients ", "")
	if !strings.Contains(plain, "Recipients") {
		t.Errorf("header missing title:\n%s", plain)
	}
	if strings.Contains(plain, "  Recipients ") {
		t.Errorf("title should be trimmed:\n%s", plain)
	}
}

// TestSectionStrip tests that exactly the active tab is bracketed
func TestSectionStrip(t *testing.T) {
	sections := []string{"Recipients", "Documents"}

	out := SectionStrip(sections, 1)
	if !strings.Contains(out, "[Documents]") {
		t.Errorf("active tab not bracketed: %q", out)
	}
	if strings.Contains(out, "[Recipients]") {
		t.Errorf("inactive tab bracketed: %q", out)
	}

	if out := SectionStrip(sections, -1); !strings.Contains(out, "[Documents]") {
		t.Errorf("negative index should wrap: %q", out)
	}
	if out := SectionStrip(nil, 0); out != "" {
		t.Errorf("empty strip = %q, want empty", out)
	}
}
