package nav

import (
	"testing"

	"optischolar/internal/session"
)

func TestGroupsForEachRole(t *testing.T) {
	cases := []struct {
		role       string
		groupCount int
		firstKey   string
	}{
		{session.RoleAdmin, 2, "dashboard"},
		{session.RoleTeacher, 3, "dashboard"},
		{session.RoleStudent, 3, "dashboard"},
	}
	for _, c := range cases {
		groups := GroupsFor(c.role)
		if len(groups) != c.groupCount {
			t.Fatalf("%s: expected %d groups, got %d", c.role, c.groupCount, len(groups))
		}
		if groups[0].Items[0].Key != c.firstKey {
			t.Fatalf("%s: expected first key %q, got %q", c.role, c.firstKey, groups[0].Items[0].Key)
		}
	}
}

func TestGroupsForUnknownRoleIsEmpty(t *testing.T) {
	if groups := GroupsFor("superuser"); groups != nil {
		t.Fatalf("expected nil groups for unknown role, got %v", groups)
	}
}

func TestResolveBoundKeys(t *testing.T) {
	if got := Resolve(session.RoleAdmin, "schools"); got != ViewSchools {
		t.Fatalf("admin/schools resolved to %v", got)
	}
	if got := Resolve(session.RoleTeacher, "grading"); got != ViewGrading {
		t.Fatalf("teacher/grading resolved to %v", got)
	}
	if got := Resolve(session.RoleStudent, "ai-assistant"); got != ViewAIAssistant {
		t.Fatalf("student/ai-assistant resolved to %v", got)
	}
}

func TestResolveUnboundKeyIsPlaceholder(t *testing.T) {
	if got := Resolve(session.RoleStudent, "grading"); got != ViewPlaceholder {
		t.Fatalf("student/grading should be placeholder, got %v", got)
	}
	if got := Resolve(session.RoleAdmin, "no-such-view"); got != ViewPlaceholder {
		t.Fatalf("unknown key should be placeholder, got %v", got)
	}
	if got := Resolve("", ""); got != ViewPlaceholder {
		t.Fatalf("empty role/key should be placeholder, got %v", got)
	}
}

func TestRolesDoNotLeakEachOthersViews(t *testing.T) {
	if got := Resolve(session.RoleStudent, "risk"); got != ViewPlaceholder {
		t.Fatalf("student must not resolve admin risk view, got %v", got)
	}
	if got := Resolve(session.RoleAdmin, "face-attendance"); got != ViewPlaceholder {
		t.Fatalf("admin must not resolve teacher face attendance, got %v", got)
	}
}

func TestDefaultKey(t *testing.T) {
	for _, role := range []string{session.RoleAdmin, session.RoleTeacher, session.RoleStudent} {
		if got := DefaultKey(role); got != "dashboard" {
			t.Fatalf("%s default key = %q, want dashboard", role, got)
		}
	}
	if got := DefaultKey("nobody"); got != "" {
		t.Fatalf("unknown role default key = %q, want empty", got)
	}
}

func TestTitleForFallsBackToKey(t *testing.T) {
	if got := TitleFor(session.RoleTeacher, "face-attendance"); got != "AI Attendance" {
		t.Fatalf("title = %q", got)
	}
	if got := TitleFor(session.RoleTeacher, "mystery"); got != "mystery" {
		t.Fatalf("fallback title = %q", got)
	}
}
