package ui

import (
	"strings"
	"testing"
)

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Fatal("dark theme should be dark")
	}
	if ThemeByName("light").IsDark {
		t.Fatal("light theme should not be dark")
	}
	if !ThemeByName("").IsDark {
		t.Fatal("unknown theme name should default to dark")
	}
	if !ThemeByName("solarized").IsDark {
		t.Fatal("unknown theme name should default to dark")
	}
}

func TestSimpleTableRendersHeadersAndRows(t *testing.T) {
	table := NewSimpleTable("Students", []string{"Name", "Reg", "Semester"})
	table.AddRow("Ananya Reddy", "21MCME01", "5")
	table.AddRow("Rahul Kumar", "21MCME02", "5")

	out := table.View(DefaultStyles())
	for _, want := range []string{"Students", "Name", "Reg", "Ananya Reddy", "21MCME02"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestSimpleTableEmptyRendersNothing(t *testing.T) {
	table := NewSimpleTable("Empty", []string{"A"})
	if out := table.View(DefaultStyles()); out != "" {
		t.Fatalf("empty table should render nothing, got %q", out)
	}
}

func TestStatCardShowsLabelAndValue(t *testing.T) {
	out := StatCard(DefaultStyles(), "Total Students", "1,245")
	if !strings.Contains(out, "Total Students") || !strings.Contains(out, "1,245") {
		t.Fatalf("stat card missing content:\n%s", out)
	}
}

func TestStatCardRowWrapsToCapacity(t *testing.T) {
	styles := DefaultStyles()
	layout := NewLayoutConfig(50, 24) // fits 2 cards per row

	out := StatCardRow(styles, layout,
		StatCard(styles, "A", "1"),
		StatCard(styles, "B", "2"),
		StatCard(styles, "C", "3"),
	)
	for _, want := range []string{"A", "B", "C"} {
		if !strings.Contains(out, want) {
			t.Fatalf("card row missing %q", want)
		}
	}
}

func TestErrorStateMentionsRetry(t *testing.T) {
	out := ErrorState(DefaultStyles(), "network failure on /data/schools")
	if !strings.Contains(out, "network failure") {
		t.Fatalf("error state missing message:\n%s", out)
	}
	if !strings.Contains(out, "retry") {
		t.Fatalf("error state missing retry hint:\n%s", out)
	}
}

func TestPlaceholderNamesTheScreen(t *testing.T) {
	out := Placeholder(DefaultStyles(), "Teachers")
	if !strings.Contains(out, "Teachers") {
		t.Fatalf("placeholder missing title:\n%s", out)
	}
	if !strings.Contains(out, "not available") {
		t.Fatalf("placeholder missing fallback text:\n%s", out)
	}
}

func TestBreadcrumbJoinsParts(t *testing.T) {
	out := Breadcrumb(DefaultStyles(), "Scholar", "Grading", "Essay 1")
	if !strings.Contains(out, "Scholar / Grading / Essay 1") {
		t.Fatalf("breadcrumb mismatch:\n%s", out)
	}
}

func TestLayoutConfigClampsToZero(t *testing.T) {
	l := NewLayoutConfig(10, 2)
	if l.ContentWidth() < 0 || l.ContentHeight() < 0 {
		t.Fatal("content dimensions must not go negative")
	}
	if l.StatCardsPerRow() < 1 {
		t.Fatal("at least one card per row")
	}
}
