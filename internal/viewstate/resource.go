// Package viewstate tracks the lifecycle of asynchronously fetched view data.
// A Resource moves Idle -> Loading -> Loaded or Failed, and every load carries
// an epoch so that a result arriving after a newer load started is discarded
// instead of overwriting fresher state.
package viewstate

// Phase is the lifecycle position of a Resource.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resource holds one view's fetched payload with its lifecycle phase.
type Resource[T any] struct {
	phase Phase
	epoch int
	value T
	err   error
}

// Phase returns the current lifecycle phase.
func (r *Resource[T]) Phase() Phase { return r.phase }

// Epoch returns the current load generation. The value of the most recent
// StartLoad must be carried alongside the fetch and passed back to Resolve.
func (r *Resource[T]) Epoch() int { return r.epoch }

// Value returns the loaded payload. Only meaningful when Phase() == Loaded.
func (r *Resource[T]) Value() T { return r.value }

// Err returns the failure. Only meaningful when Phase() == Failed.
func (r *Resource[T]) Err() error { return r.err }

// StartLoad moves the resource into Loading and returns the new epoch.
// A previously loaded value is kept until the new result resolves, so views
// can keep rendering stale-but-valid data behind a spinner.
func (r *Resource[T]) StartLoad() int {
	r.epoch++
	r.phase = Loading
	r.err = nil
	return r.epoch
}

// Resolve delivers the outcome of the load started at the given epoch.
// Results from an older epoch are ignored: the reported bool says whether the
// resource changed.
func (r *Resource[T]) Resolve(epoch int, value T, err error) bool {
	if epoch != r.epoch {
		return false
	}
	if err != nil {
		r.phase = Failed
		r.err = err
		return true
	}
	r.phase = Loaded
	r.value = value
	r.err = nil
	return true
}

// Reset returns the resource to Idle and clears the payload. The epoch keeps
// counting so in-flight results from before the reset stay discarded.
func (r *Resource[T]) Reset() {
	var zero T
	r.phase = Idle
	r.value = zero
	r.err = nil
	r.epoch++
}
