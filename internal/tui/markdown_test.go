package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

func TestMarkdownStyleFollowsBackground(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	lipgloss.SetHasDarkBackground(false)
	if got := markdownStyle(); got != styles.LightStyle {
		t.Fatalf("expected light; got %q", got)
	}
	lipgloss.SetHasDarkBackground(true)
	if got := markdownStyle(); got != styles.DarkStyle {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := renderMarkdown("   \n", 40); got != "" {
		t.Fatalf("expected empty output for blank input, got %q", got)
	}
	out := renderMarkdown("# Title\n\nSome *notes* here.", 40)
	if !strings.Contains(out, "Title") || !strings.Contains(out, "notes") {
		t.Fatalf("expected rendered text, got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newlines trimmed")
	}
}

func TestApplyThemePreference(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })
	t.Setenv("COLORFGBG", "")

	t.Setenv("TASKDECK_TUI_THEME", "")
	applyThemePreference("light")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected configured light theme")
	}

	t.Setenv("TASKDECK_TUI_THEME", "dark")
	applyThemePreference("light")
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected env to override config")
	}

	t.Setenv("TASKDECK_TUI_THEME", "auto")
	t.Setenv("COLORFGBG", "0;15")
	applyThemePreference("")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected COLORFGBG light background")
	}
}
