package viewstate

import (
	"errors"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestResourceLifecycle(t *testing.T) {
	var r Resource[[]string]
	if r.Phase() != Idle {
		t.Fatalf("expected Idle, got %v", r.Phase())
	}

	epoch := r.StartLoad()
	if r.Phase() != Loading {
		t.Fatalf("expected Loading, got %v", r.Phase())
	}

	if !r.Resolve(epoch, []string{"a", "b"}, nil) {
		t.Fatal("resolve at current epoch should apply")
	}
	if r.Phase() != Loaded {
		t.Fatalf("expected Loaded, got %v", r.Phase())
	}
	if len(r.Value()) != 2 {
		t.Fatalf("expected 2 items, got %d", len(r.Value()))
	}
}

func TestStaleResolveIsDiscarded(t *testing.T) {
	var r Resource[int]
	first := r.StartLoad()
	second := r.StartLoad()

	if r.Resolve(first, 1, nil) {
		t.Fatal("stale epoch must not apply")
	}
	if r.Phase() != Loading {
		t.Fatalf("expected still Loading, got %v", r.Phase())
	}

	if !r.Resolve(second, 2, nil) {
		t.Fatal("current epoch should apply")
	}
	if r.Value() != 2 {
		t.Fatalf("expected 2, got %d", r.Value())
	}
}

func TestResolveFailureKeepsPriorValue(t *testing.T) {
	var r Resource[int]
	epoch := r.StartLoad()
	r.Resolve(epoch, 7, nil)

	epoch = r.StartLoad()
	if r.Value() != 7 {
		t.Fatal("prior value should survive a reload start")
	}
	r.Resolve(epoch, 0, errors.New("boom"))
	if r.Phase() != Failed {
		t.Fatalf("expected Failed, got %v", r.Phase())
	}
	if r.Err() == nil {
		t.Fatal("expected error to be recorded")
	}
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	var r Resource[int]
	epoch := r.StartLoad()
	r.Reset()

	if r.Resolve(epoch, 9, nil) {
		t.Fatal("pre-reset result must not apply")
	}
	if r.Phase() != Idle {
		t.Fatalf("expected Idle, got %v", r.Phase())
	}
	if r.Value() != 0 {
		t.Fatalf("expected zero value, got %d", r.Value())
	}
}
