package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *StateStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	type profile struct {
		Name string `json:"name"`
		Sem  int    `json:"sem"`
	}

	if err := s.Put(KeySession, profile{Name: "Anjali Verma", Sem: 3}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	var got profile
	if err := s.Get(KeySession, &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Anjali Verma" || got.Sem != 3 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	var out string
	if err := s.Get("nope", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(KeyTheme, "dark"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Put(KeyTheme, "light"); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	var theme string
	if err := s.Get(KeyTheme, &theme); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if theme != "light" {
		t.Fatalf("expected replaced value, got %q", theme)
	}
}

func TestMalformedValueTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)

	// Write a raw non-JSON value behind the typed boundary's back.
	if _, err := s.db.Exec(`INSERT INTO state (key, value) VALUES (?, ?)`, KeySession, "{not json"); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	var out map[string]string
	if err := s.Get(KeySession, &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed value, got %v", err)
	}

	// The corrupt row must be gone so the next write starts clean.
	var raw string
	if err := s.Get(KeySession, &raw); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected corrupt row to be deleted, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(KeySession, "x"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Delete(KeySession); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(KeySession); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := s.Put(KeyTheme, "dark"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s2.Close()

	var theme string
	if err := s2.Get(KeyTheme, &theme); err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if theme != "dark" {
		t.Fatalf("expected persisted theme, got %q", theme)
	}
}
