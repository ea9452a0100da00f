package registry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/artifact"
)

// State represents the lifecycle state of the registry's model slot.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
	StateFailed   State = "failed"
)

// LoaderFunc builds an artifact from a path. The default is artifact.Load;
// tests substitute their own.
type LoaderFunc func(path string) (*artifact.Artifact, error)

// Registry owns the single active model artifact for the process.
//
// The active artifact is published through an atomic pointer: readers call
// Current without taking any lock and always see either the previous or the
// next fully-constructed artifact, never a partial one. The mutex guards
// only the lifecycle state and bookkeeping; it is never held across an
// artifact build and never touched on the inference hot path.
type Registry struct {
	log    zerolog.Logger
	loader LoaderFunc

	active atomic.Pointer[artifact.Artifact]

	mu      sync.Mutex
	state   State
	lastErr string
	loads   uint64
	reloads uint64
}

// Snapshot is a read-only projection of the registry state.
type Snapshot struct {
	State        State
	Artifact     *artifact.Artifact
	LastError    string
	LoadsTotal   uint64
	ReloadsTotal uint64
}

// New constructs an empty registry in the unloaded state.
func New(log zerolog.Logger) *Registry {
	return &Registry{
		log:    log.With().Str("component", "registry").Logger(),
		loader: artifact.Load,
		state:  StateUnloaded,
	}
}

// SetLoader overrides the artifact loader. Must be called before any Load.
func (r *Registry) SetLoader(fn LoaderFunc) {
	if fn != nil {
		r.loader = fn
	}
}

// Load loads the artifact at path and publishes it as the active model.
// A failed load leaves the registry in the failed state only when no prior
// artifact was active; otherwise the prior artifact keeps serving.
// Returns a load-in-progress error when another load or reload is underway.
func (r *Registry) Load(ctx context.Context, path string) error {
	return r.load(ctx, path, false)
}

// Reload builds a replacement artifact and publishes it with a single atomic
// swap. In-flight inference calls complete against the artifact they started
// with; calls starting after the swap see the new one. A failed reload never
// unpublishes the active artifact and never degrades readiness.
func (r *Registry) Reload(ctx context.Context, path string) error {
	return r.load(ctx, path, true)
}

func (r *Registry) load(ctx context.Context, path string, isReload bool) error {
	r.mu.Lock()
	if r.state == StateLoading {
		r.mu.Unlock()
		return loadInProgressError{}
	}
	r.state = StateLoading
	if isReload {
		r.reloads++
	}
	r.mu.Unlock()

	r.log.Info().Str("path", path).Bool("reload", isReload).Msg("loading model artifact")

	art, err := r.buildArtifact(ctx, path)
	if err != nil {
		r.mu.Lock()
		r.lastErr = err.Error()
		if r.active.Load() != nil {
			// The prior artifact stays published and serving.
			r.state = StateLoaded
		} else {
			r.state = StateFailed
		}
		r.mu.Unlock()
		r.log.Error().Err(err).Str("path", path).Msg("model load failed")
		return loadError{path: path, err: err}
	}

	r.active.Store(art)
	r.mu.Lock()
	r.state = StateLoaded
	r.lastErr = ""
	r.loads++
	r.mu.Unlock()
	r.log.Info().
		Str("version", art.Version).
		Int("feature_count", art.FeatureCount).
		Str("path", path).
		Msg("model artifact active")
	return nil
}

func (r *Registry) buildArtifact(ctx context.Context, path string) (*artifact.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	art, err := r.loader(path)
	if err != nil {
		return nil, err
	}
	// A canceled context between build and publish counts as a failed load.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return art, nil
}

// Current returns the active artifact, or false when none has ever been
// published. It inspects only the atomic pointer so readers never block on
// a concurrent load or reload, and the returned reference stays valid for
// the duration of one inference call even if a reload swaps the active
// artifact underneath it.
func (r *Registry) Current() (*artifact.Artifact, bool) {
	art := r.active.Load()
	if art == nil {
		return nil, false
	}
	return art, true
}

// Loaded reports whether an artifact is published and serving. Unlike State,
// it stays true during a reload of a working model, so readiness never flaps
// while the previous artifact keeps serving.
func (r *Registry) Loaded() bool {
	return r.active.Load() != nil
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Snapshot returns a consistent view of state and counters.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		State:        r.state,
		Artifact:     r.active.Load(),
		LastError:    r.lastErr,
		LoadsTotal:   r.loads,
		ReloadsTotal: r.reloads,
	}
}

// LoadedAt reports when the active artifact was loaded, zero when none.
func (r *Registry) LoadedAt() time.Time {
	if art := r.active.Load(); art != nil {
		return art.LoadedAt
	}
	return time.Time{}
}
