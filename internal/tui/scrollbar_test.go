package tui

import (
	"strings"
	"testing"
)

func TestRenderScrollbar_AtTop(t *testing.T) {
	bar := renderScrollbar(10, 100, 0)

	lines := strings.Split(bar, "\n")
	if len(lines) != 10 {
		t.Errorf("Expected 10 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], scrollbarThumb) {
		t.Error("Expected thumb in first line when at top")
	}
}

func TestRenderScrollbar_AtBottom(t *testing.T) {
	bar := renderScrollbar(10, 100, 90)

	lines := strings.Split(bar, "\n")
	if !strings.Contains(lines[len(lines)-1], scrollbarThumb) {
		t.Error("Expected thumb in last line when at bottom")
	}
}

func TestRenderScrollbar_Middle(t *testing.T) {
	bar := renderScrollbar(10, 100, 45)

	lines := strings.Split(bar, "\n")
	found := false
	for i := 2; i < len(lines)-2; i++ {
		if strings.Contains(lines[i], scrollbarThumb) {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected thumb in middle lines when scrolled to middle")
	}
}

func TestRenderScrollbar_ContentFits(t *testing.T) {
	bar := renderScrollbar(10, 5, 0)

	for i, line := range strings.Split(bar, "\n") {
		if !strings.Contains(line, scrollbarTrack) {
			t.Errorf("Expected track character in line %d when content fits", i)
		}
	}
}

func TestRenderScrollbar_ZeroHeight(t *testing.T) {
	if bar := renderScrollbar(0, 100, 0); bar != "" {
		t.Errorf("Expected empty string for zero height, got %q", bar)
	}
}
