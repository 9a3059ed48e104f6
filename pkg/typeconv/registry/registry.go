package registry

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/randalmurphal/typeconv/pkg/typeconv/observability"
	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
)

// Registry is a thread-safe, ordered collection of conversion records.
// Writers are serialized by a mutex; readers load the current Snapshot
// without locking.
type Registry struct {
	id uuid.UUID

	mu      sync.Mutex // serializes writers
	version uint64     // guarded by mu
	current atomic.Pointer[Snapshot]

	initMu sync.Mutex
	inits  map[reflect.Type]*initEntry

	seed      func() []*record.Record
	autoReset bool
	logger    *slog.Logger
	metrics observability.MetricsRecorder
}

// initEntry tracks one owner's bootstrap run.
type initEntry struct {
	once sync.Once
	done atomic.Bool
	err  error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSeed sets the records Reset registers after clearing (the built-ins).
func WithSeed(seed func() []*record.Record) Option {
	return func(r *Registry) {
		r.seed = seed
	}
}

// WithAutoReset makes New call Reset, seeding the registry immediately.
// Without it a new registry starts empty and only accumulates what is added.
func WithAutoReset(enabled bool) Option {
	return func(r *Registry) {
		r.autoReset = enabled
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.New(),
		inits:   make(map[reflect.Type]*initEntry),
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
	}
	r.current.Store(emptySnapshot)
	for _, opt := range opts {
		opt(r)
	}
	if r.autoReset {
		if err := r.Reset(context.Background()); err != nil && r.logger != nil {
			r.logger.Error("seeding converter registry failed",
				slog.String("registry_id", r.id.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return r
}

// ID returns the registry's unique identifier.
func (r *Registry) ID() uuid.UUID { return r.id }

// Snapshot returns the current immutable view.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// publish stores next as the current snapshot. Caller must hold r.mu.
func (r *Registry) publish(ctx context.Context, next *Snapshot) {
	r.current.Store(next)
	r.metrics.RecordRegistrySize(ctx, r.id.String(), int64(next.Count()))
}

// nextVersion returns a fresh version number. Caller must hold r.mu.
func (r *Registry) nextVersion() uint64 {
	r.version++
	return r.version
}

// Add registers rec. It fails with a *DuplicateConverterError when a record
// with the same signature exists and rec does not allow disambiguation.
//
// Cancellation is checked before and after acquiring the write lock; a
// cancelled Add leaves the registry unchanged.
func (r *Registry) Add(ctx context.Context, rec *record.Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	cur := r.current.Load()
	if err := cur.conflict(rec); err != nil {
		observability.LogDuplicate(r.logger, r.id.String(), rec.String())
		r.metrics.RecordRegistration(ctx, rec.String(), err)
		return err
	}

	next := cur.with(rec, r.nextVersion())
	r.publish(ctx, next)

	observability.LogRegistered(r.logger, r.id.String(), rec.String(), next.Count())
	r.metrics.RecordRegistration(ctx, rec.String(), nil)
	return nil
}

// AddAll adds each record in order. A failure does not stop later records;
// all failures are returned joined. Cancellation stops the batch, keeping
// records already added.
func (r *Registry) AddAll(ctx context.Context, recs ...*record.Record) error {
	var errs []error
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := r.Add(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Remove unregisters rec. Returns false if rec was not registered.
func (r *Registry) Remove(rec *record.Record) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, ok := r.current.Load().without(rec, r.version+1)
	if !ok {
		return false
	}
	r.version++
	r.publish(context.Background(), next)
	return true
}

// Clear removes all records. The initialized-owner set is kept.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.publish(context.Background(), &Snapshot{
		version: r.nextVersion(),
		index:   map[record.Key][]*record.Record{},
	})
}

// Reset removes all records, forgets initialized owners and registers the
// seed records. The cleared and seeded state is published at once.
// Seed records that collide are skipped and reported in the returned error.
func (r *Registry) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.initMu.Lock()
	r.inits = make(map[reflect.Type]*initEntry)
	r.initMu.Unlock()

	var seeds []*record.Record
	if r.seed != nil {
		seeds = r.seed()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	next := &Snapshot{index: map[record.Key][]*record.Record{}}
	for _, rec := range seeds {
		if rec == nil {
			continue
		}
		if err := next.conflict(rec); err != nil {
			errs = append(errs, err)
			continue
		}
		next = next.with(rec, 0)
	}
	next.version = r.nextVersion()
	r.publish(ctx, next)

	observability.LogReset(r.logger, r.id.String(), next.Count())
	return errors.Join(errs...)
}

// Initialize runs fn for owner unless it already ran successfully.
// Concurrent calls for the same owner wait for the first run and share
// its result. A failed run may be retried. fn must not call Initialize
// for the same owner.
//
// Returns true if this call ran fn.
func (r *Registry) Initialize(ctx context.Context, owner reflect.Type, fn func(context.Context, *Registry) error) (bool, error) {
	r.initMu.Lock()
	entry, ok := r.inits[owner]
	if !ok {
		entry = &initEntry{}
		r.inits[owner] = entry
	}
	r.initMu.Unlock()

	ran := false
	entry.once.Do(func() {
		ran = true
		entry.err = fn(ctx, r)
		if entry.err == nil {
			entry.done.Store(true)
		}
	})
	if entry.err != nil && ran {
		r.initMu.Lock()
		if r.inits[owner] == entry {
			delete(r.inits, owner)
		}
		r.initMu.Unlock()
	}
	return ran, entry.err
}

// Initialized reports whether owner's bootstrap completed successfully.
func (r *Registry) Initialized(owner reflect.Type) bool {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	entry, ok := r.inits[owner]
	return ok && entry.done.Load()
}

// Count returns the number of records.
func (r *Registry) Count() int { return r.Snapshot().Count() }

// All iterates over the current records in insertion order.
func (r *Registry) All() iter.Seq[*record.Record] { return r.Snapshot().All() }

// Records returns a copy of the current records in insertion order.
func (r *Registry) Records() []*record.Record { return r.Snapshot().Records() }

// Contains reports whether rec is registered.
func (r *Registry) Contains(rec *record.Record) bool { return r.Snapshot().Contains(rec) }

// Query iterates over the records matching q in the current snapshot.
// Each range over the returned sequence sees a fresh snapshot.
func (r *Registry) Query(q Query) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		r.Snapshot().Query(q)(yield)
	}
}

// WithBaseType iterates over records declared by t or a type assignable to t.
func (r *Registry) WithBaseType(t reflect.Type) iter.Seq[*record.Record] {
	return r.Snapshot().WithBaseType(t)
}

// WithFrom iterates over records converting from t.
func (r *Registry) WithFrom(t reflect.Type) iter.Seq[*record.Record] {
	return r.Snapshot().WithFrom(t)
}

// WithTo iterates over records converting to t.
func (r *Registry) WithTo(t reflect.Type) iter.Seq[*record.Record] {
	return r.Snapshot().WithTo(t)
}

// WithArgument iterates over records taking an argument of type t.
func (r *Registry) WithArgument(t reflect.Type) iter.Seq[*record.Record] {
	return r.Snapshot().WithArgument(t)
}
