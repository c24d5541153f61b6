// Package memstore is the in-memory implementation of store.Store used when
// no database is configured. It holds one ordered collection per entity type
// for the lifetime of the session and is discarded on restart.
//
// By design none of its mutations can fail: there is no network and no
// permission layer, so the store trades consistency guarantees for
// always-succeeds simplicity. IDs are timestamp-based tokens rather than the
// backend-assigned UUIDs of the SQL stores.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store"
)

// Notifier receives the user-visible confirmation emitted after every
// mutation. Notifications are fire-and-forget: no retry, never blocking a
// mutation.
type Notifier interface {
	Confirm(message string)
}

type noopNotifier struct{}

func (noopNotifier) Confirm(string) {}

// Option configures a Store.
type Option func(*Store)

// WithNotifier routes mutation confirmations to n.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithClock overrides the time source. Tests use this to pin IDs and
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed populates the store with the demo fixtures before first use.
func WithSeed() Option {
	return func(s *Store) { s.seed = true }
}

// Store implements store.Store entirely in memory. All collections share one
// mutex; every method copies records on the way in and out so callers never
// alias internal state.
type Store struct {
	mu       sync.Mutex
	seq      uint64
	now      func() time.Time
	notifier Notifier
	seed     bool

	flatmates []*model.Flatmate
	expenses  []*model.Expense
	groceries []*model.GroceryItem
	chores    []*model.Chore
	events    []*model.Event
	polls     []*model.Poll
	notes     []*model.Note
	moods     []*model.MoodEntry
	services  []*model.Service
	tasks     []*model.Task
	classes   []*model.ClassSlot
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now, notifier: noopNotifier{}}
	for _, o := range opts {
		o(s)
	}
	if s.seed {
		s.loadFixtures()
	}
	return s
}

// newID synthesizes a timestamp-based token; the sequence suffix keeps IDs
// unique when two mutations land in the same nanosecond.
func (s *Store) newID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d-%d", prefix, s.now().UnixNano(), s.seq)
}

func (s *Store) confirm(message string) {
	s.notifier.Confirm(message)
}

func (s *Store) Flatmates() store.Flatmates { return flatmates{s} }
func (s *Store) Expenses() store.Expenses   { return expenses{s} }
func (s *Store) Groceries() store.Groceries { return groceries{s} }
func (s *Store) Chores() store.Chores       { return chores{s} }
func (s *Store) Events() store.Events       { return eventsRepo{s} }
func (s *Store) Polls() store.Polls         { return polls{s} }
func (s *Store) Notes() store.Notes         { return notes{s} }
func (s *Store) Moods() store.Moods         { return moods{s} }
func (s *Store) Services() store.Services   { return services{s} }
func (s *Store) Tasks() store.Tasks         { return tasks{s} }
func (s *Store) Classes() store.Classes     { return classes{s} }

// HealthPing implements health.HealthPinger; the in-memory store is always
// reachable.
func (s *Store) HealthPing(ctx context.Context) error { return nil }

// --- Flatmates ---

type flatmates struct{ s *Store }

func (r flatmates) Create(ctx context.Context, f *model.Flatmate) (*model.Flatmate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *f
	if out.ID == "" {
		out.ID = r.s.newID("mate")
	}
	if out.CreationTime.IsZero() {
		out.CreationTime = r.s.now()
	}
	r.s.flatmates = append(r.s.flatmates, &out)
	cp := out
	return &cp, nil
}

func (r flatmates) Get(ctx context.Context, id string) (*model.Flatmate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.flatmates {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r flatmates) GetByEmail(ctx context.Context, email string) (*model.Flatmate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.flatmates {
		if f.Email == email {
			cp := *f
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r flatmates) List(ctx context.Context) ([]*model.Flatmate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Flatmate, 0, len(r.s.flatmates))
	for _, f := range r.s.flatmates {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

func (r flatmates) Update(ctx context.Context, f *model.Flatmate) (*model.Flatmate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.flatmates {
		if cur.ID == f.ID {
			cp := *f
			r.s.flatmates[i] = &cp
			out := cp
			r.s.confirm("Profile updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r flatmates) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, f := range r.s.flatmates {
		if f.ID == id {
			r.s.flatmates = append(r.s.flatmates[:i], r.s.flatmates[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- Expenses ---

type expenses struct{ s *Store }

func (r expenses) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *e
	if out.ID == "" {
		out.ID = r.s.newID("exp")
	}
	if out.Date.IsZero() {
		out.Date = r.s.now()
	}
	r.s.expenses = append(r.s.expenses, &out)
	r.s.confirm("Expense Added!")
	cp := out
	return &cp, nil
}

func (r expenses) Get(ctx context.Context, id string) (*model.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.expenses {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r expenses) List(ctx context.Context) ([]*model.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Expense, 0, len(r.s.expenses))
	for _, e := range r.s.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r expenses) Update(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.expenses {
		if cur.ID == e.ID {
			cp := *e
			r.s.expenses[i] = &cp
			out := cp
			r.s.confirm("Expense updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r expenses) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.expenses {
		if e.ID == id {
			r.s.expenses = append(r.s.expenses[:i], r.s.expenses[i+1:]...)
			r.s.confirm("Expense Deleted")
			return nil
		}
	}
	return nil
}

// --- Groceries ---

type groceries struct{ s *Store }

func (r groceries) Create(ctx context.Context, g *model.GroceryItem) (*model.GroceryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *g
	if out.ID == "" {
		out.ID = r.s.newID("groc")
	}
	out.Purchased = false
	r.s.groceries = append(r.s.groceries, &out)
	r.s.confirm("Grocery item added!")
	cp := out
	return &cp, nil
}

func (r groceries) Get(ctx context.Context, id string) (*model.GroceryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groceries {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r groceries) List(ctx context.Context) ([]*model.GroceryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.GroceryItem, 0, len(r.s.groceries))
	for _, g := range r.s.groceries {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (r groceries) Update(ctx context.Context, g *model.GroceryItem) (*model.GroceryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.groceries {
		if cur.ID == g.ID {
			cp := *g
			r.s.groceries[i] = &cp
			out := cp
			r.s.confirm("Grocery item updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r groceries) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, g := range r.s.groceries {
		if g.ID == id {
			r.s.groceries = append(r.s.groceries[:i], r.s.groceries[i+1:]...)
			r.s.confirm("Grocery item deleted.")
			return nil
		}
	}
	return nil
}

func (r groceries) TogglePurchased(ctx context.Context, id string) (*model.GroceryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groceries {
		if g.ID == id {
			g.Purchased = !g.Purchased
			r.s.confirm("Grocery item updated!")
			cp := *g
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

// --- Chores ---

type chores struct{ s *Store }

func (r chores) Create(ctx context.Context, c *model.Chore) (*model.Chore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *c
	if out.ID == "" {
		out.ID = r.s.newID("ch")
	}
	if out.AssignedTo == "" {
		out.AssignedTo = model.ChoreUnassigned
	}
	out.Completed = false
	r.s.chores = append(r.s.chores, &out)
	r.s.confirm("Chore added!")
	cp := out
	return &cp, nil
}

func (r chores) Get(ctx context.Context, id string) (*model.Chore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.chores {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r chores) List(ctx context.Context) ([]*model.Chore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Chore, 0, len(r.s.chores))
	for _, c := range r.s.chores {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r chores) Update(ctx context.Context, c *model.Chore) (*model.Chore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.chores {
		if cur.ID == c.ID {
			cp := *c
			r.s.chores[i] = &cp
			out := cp
			r.s.confirm("Chore updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r chores) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.chores {
		if c.ID == id {
			r.s.chores = append(r.s.chores[:i], r.s.chores[i+1:]...)
			r.s.confirm("Chore deleted.")
			return nil
		}
	}
	return nil
}

func (r chores) ToggleCompleted(ctx context.Context, id string) (*model.Chore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.chores {
		if c.ID == id {
			c.Completed = !c.Completed
			r.s.confirm("Chore updated!")
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}
