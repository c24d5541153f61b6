package live

import (
	"context"
	"errors"
	"sync"

	"github.com/flathive/flathive/internal/events"
	"github.com/flathive/flathive/internal/model"
)

// FetchFunc loads the full current result set for a subscription. The
// subscriber applies the query on top of the returned slice.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// CollectionSubscriber keeps a query's result set current: it fetches once on
// start and refetches whenever the broker signals the collection changed.
//
// A nil query is the idle state: no data and not loading, no watch held.
// Setting a query with a different Key tears down the running watch and
// starts over; setting a structurally equal query is a no-op. A fetch error
// is escalated on the bus as a *PermissionError and the subscription stops
// delivering until the query changes.
//
// OnChange callbacks run with the subscriber's lock held, so they must return
// promptly and must not call back into the subscriber.
type CollectionSubscriber[T any] struct {
	broker   *Broker
	bus      *events.Bus
	fetch    FetchFunc[T]
	onChange func([]T)

	mu      sync.Mutex
	query   *Query
	key     string
	data    []T
	loading bool
	failed  bool
	gen     int
	cancel  func() // stops the current watch goroutine, nil when idle
	closed  bool
}

// NewCollectionSubscriber constructs an idle subscriber. onChange may be nil;
// state is then read through Snapshot.
func NewCollectionSubscriber[T any](broker *Broker, bus *events.Bus, fetch FetchFunc[T], onChange func([]T)) *CollectionSubscriber[T] {
	return &CollectionSubscriber[T]{broker: broker, bus: bus, fetch: fetch, onChange: onChange}
}

// SetQuery replaces the subscription target. Equality is structural: a query
// whose Key matches the current one is ignored.
func (s *CollectionSubscriber[T]) SetQuery(q *Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	key := q.Key()
	if key == s.key && (q == nil) == (s.query == nil) {
		return
	}
	s.stopLocked()
	s.query = q
	s.key = key
	if q == nil {
		s.data = nil
		s.loading = false
		s.failed = false
		return
	}
	s.startLocked(q)
}

// Snapshot returns the current result set and whether the initial fetch for
// the active query is still in flight.
func (s *CollectionSubscriber[T]) Snapshot() (data []T, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.loading
}

// Failed reports whether the active subscription stopped on an error.
func (s *CollectionSubscriber[T]) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Close stops the watch. No OnChange call is delivered after Close returns.
func (s *CollectionSubscriber[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.closed = true
	s.data = nil
	s.loading = false
}

func (s *CollectionSubscriber[T]) stopLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *CollectionSubscriber[T]) startLocked(q *Query) {
	s.data = nil
	s.loading = true
	s.failed = false

	gen := s.gen
	signals, cancelWatch := s.broker.Watch(q.Collection)
	ctx, cancelCtx := context.WithCancel(context.Background())
	s.cancel = func() {
		cancelWatch()
		cancelCtx()
	}

	go func() {
		s.refresh(ctx, gen, q)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				s.refresh(ctx, gen, q)
			}
		}
	}()
}

// refresh fetches, applies the query, and publishes the new state unless the
// subscription has been superseded in the meantime.
func (s *CollectionSubscriber[T]) refresh(ctx context.Context, gen int, q *Query) {
	items, err := s.fetch(ctx)
	if err == nil {
		items, err = Apply(q, items)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.closed {
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.stopLocked()
		s.cancel = nil
		s.data = nil
		s.loading = false
		s.failed = true
		s.bus.Publish(events.TopicPermissionError, permissionError(q.Collection, "list", err))
		return
	}
	s.data = items
	s.loading = false
	if s.onChange != nil {
		s.onChange(items)
	}
}

// permissionError wraps err, preserving an existing *PermissionError.
func permissionError(path, op string, err error) *PermissionError {
	var pe *PermissionError
	if errors.As(err, &pe) {
		return pe
	}
	return &PermissionError{Path: path, Op: op, Err: err}
}

// DocumentSubscriber tracks a single record by ID. Absence is a valid state,
// not an error: a fetch that returns model.ErrNotFound yields Exists false.
type DocumentSubscriber[T any] struct {
	broker   *Broker
	bus      *events.Bus
	fetch    func(ctx context.Context) (T, error)
	onChange func(doc T, exists bool)

	mu         sync.Mutex
	collection string
	path       string
	data       T
	exists     bool
	loading    bool
	failed     bool
	gen        int
	cancel     func()
	closed     bool
}

func NewDocumentSubscriber[T any](broker *Broker, bus *events.Bus, fetch func(ctx context.Context) (T, error), onChange func(T, bool)) *DocumentSubscriber[T] {
	return &DocumentSubscriber[T]{broker: broker, bus: bus, fetch: fetch, onChange: onChange}
}

// SetPath points the subscriber at collection/id. An empty collection is the
// idle state. Re-setting the same path is a no-op.
func (s *DocumentSubscriber[T]) SetPath(collection, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	path := ""
	if collection != "" {
		path = collection + "/" + id
	}
	if path == s.path {
		return
	}
	s.stopLocked()
	s.collection = collection
	s.path = path
	var zero T
	s.data = zero
	s.exists = false
	s.failed = false
	if collection == "" {
		s.loading = false
		return
	}
	s.startLocked(collection)
}

// Snapshot returns the current document, whether it exists, and whether the
// initial fetch is still in flight.
func (s *DocumentSubscriber[T]) Snapshot() (doc T, exists, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.exists, s.loading
}

func (s *DocumentSubscriber[T]) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Close stops the watch. No OnChange call is delivered after Close returns.
func (s *DocumentSubscriber[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.closed = true
	var zero T
	s.data = zero
	s.exists = false
	s.loading = false
}

func (s *DocumentSubscriber[T]) stopLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *DocumentSubscriber[T]) startLocked(collection string) {
	s.loading = true

	gen := s.gen
	signals, cancelWatch := s.broker.Watch(collection)
	ctx, cancelCtx := context.WithCancel(context.Background())
	s.cancel = func() {
		cancelWatch()
		cancelCtx()
	}

	go func() {
		s.refresh(ctx, gen)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				s.refresh(ctx, gen)
			}
		}
	}()
}

func (s *DocumentSubscriber[T]) refresh(ctx context.Context, gen int) {
	doc, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.closed {
		return
	}
	switch {
	case err == nil:
		s.data = doc
		s.exists = true
	case errors.Is(err, model.ErrNotFound):
		var zero T
		s.data = zero
		s.exists = false
	case errors.Is(err, context.Canceled):
		return
	default:
		s.stopLocked()
		s.cancel = nil
		var zero T
		s.data = zero
		s.exists = false
		s.loading = false
		s.failed = true
		s.bus.Publish(events.TopicPermissionError, permissionError(s.path, "get", err))
		return
	}
	s.loading = false
	if s.onChange != nil {
		s.onChange(s.data, s.exists)
	}
}
