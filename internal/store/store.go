// Package store defines the persistence contract shared by the remote-backed
// SQL implementations and the in-memory session store. Implementations live
// under internal/store/<driver>/ (postgres, sqlite, memstore).
package store

import (
	"context"

	"github.com/flathive/flathive/internal/model"
)

// Store exposes one repository per collection. All repositories share the
// same flat trust model: any authenticated flatmate may read or mutate any
// record.
type Store interface {
	Flatmates() Flatmates
	Expenses() Expenses
	Groceries() Groceries
	Chores() Chores
	Events() Events
	Polls() Polls
	Notes() Notes
	Moods() Moods
	Services() Services
	Tasks() Tasks
	Classes() Classes
}

// Repository conventions:
//   - Create assigns the ID when the caller left it empty and returns the
//     stored record.
//   - Get returns model.ErrNotFound for an absent ID; absence is never a
//     panic or a nil-nil pair.
//   - Delete of an absent ID is a no-op so deletes are idempotent.
//   - Toggle* flips the designated boolean; calling twice restores the
//     original value. Toggling an absent ID returns model.ErrNotFound.

type Flatmates interface {
	Create(ctx context.Context, f *model.Flatmate) (*model.Flatmate, error)
	Get(ctx context.Context, id string) (*model.Flatmate, error)
	GetByEmail(ctx context.Context, email string) (*model.Flatmate, error)
	List(ctx context.Context) ([]*model.Flatmate, error)
	Update(ctx context.Context, f *model.Flatmate) (*model.Flatmate, error)
	Delete(ctx context.Context, id string) error
}

type Expenses interface {
	Create(ctx context.Context, e *model.Expense) (*model.Expense, error)
	Get(ctx context.Context, id string) (*model.Expense, error)
	List(ctx context.Context) ([]*model.Expense, error)
	Update(ctx context.Context, e *model.Expense) (*model.Expense, error)
	Delete(ctx context.Context, id string) error
}

type Groceries interface {
	Create(ctx context.Context, g *model.GroceryItem) (*model.GroceryItem, error)
	Get(ctx context.Context, id string) (*model.GroceryItem, error)
	List(ctx context.Context) ([]*model.GroceryItem, error)
	Update(ctx context.Context, g *model.GroceryItem) (*model.GroceryItem, error)
	Delete(ctx context.Context, id string) error
	TogglePurchased(ctx context.Context, id string) (*model.GroceryItem, error)
}

type Chores interface {
	Create(ctx context.Context, c *model.Chore) (*model.Chore, error)
	Get(ctx context.Context, id string) (*model.Chore, error)
	List(ctx context.Context) ([]*model.Chore, error)
	Update(ctx context.Context, c *model.Chore) (*model.Chore, error)
	Delete(ctx context.Context, id string) error
	ToggleCompleted(ctx context.Context, id string) (*model.Chore, error)
}

type Events interface {
	Create(ctx context.Context, e *model.Event) (*model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, e *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

type Polls interface {
	Create(ctx context.Context, p *model.Poll) (*model.Poll, error)
	Get(ctx context.Context, id string) (*model.Poll, error)
	List(ctx context.Context) ([]*model.Poll, error)
	Update(ctx context.Context, p *model.Poll) (*model.Poll, error)
	Delete(ctx context.Context, id string) error

	// Vote records one changeable vote per flatmate per poll: the voter is
	// removed from whichever option currently holds them, then added to
	// optionIndex. Voting for the currently held option again is a no-op.
	// The whole update is atomic per poll.
	Vote(ctx context.Context, pollID string, optionIndex int, flatmateID string) (*model.Poll, error)
}

type Notes interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	Get(ctx context.Context, id string) (*model.Note, error)
	List(ctx context.Context) ([]*model.Note, error)
	Update(ctx context.Context, n *model.Note) (*model.Note, error)
	Delete(ctx context.Context, id string) error
}

type Moods interface {
	Create(ctx context.Context, m *model.MoodEntry) (*model.MoodEntry, error)
	Get(ctx context.Context, id string) (*model.MoodEntry, error)
	List(ctx context.Context) ([]*model.MoodEntry, error)
	Update(ctx context.Context, m *model.MoodEntry) (*model.MoodEntry, error)
	Delete(ctx context.Context, id string) error
}

type Services interface {
	Create(ctx context.Context, s *model.Service) (*model.Service, error)
	Get(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	Update(ctx context.Context, s *model.Service) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

type Tasks interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context) ([]*model.Task, error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	ToggleCompleted(ctx context.Context, id string) (*model.Task, error)
}

type Classes interface {
	Create(ctx context.Context, c *model.ClassSlot) (*model.ClassSlot, error)
	Get(ctx context.Context, id string) (*model.ClassSlot, error)
	List(ctx context.Context) ([]*model.ClassSlot, error)
	Update(ctx context.Context, c *model.ClassSlot) (*model.ClassSlot, error)
	Delete(ctx context.Context, id string) error
}

// Collection names as used in paths, watch queries, and broker topics.
const (
	CollectionFlatmates = "flatmates"
	CollectionExpenses  = "expenses"
	CollectionGroceries = "groceries"
	CollectionChores    = "chores"
	CollectionEvents    = "events"
	CollectionPolls     = "polls"
	CollectionNotes     = "notes"
	CollectionMoods     = "moods"
	CollectionServices  = "services"
	CollectionTasks     = "tasks"
	CollectionClasses   = "classes"
)

// Collections lists every collection name.
var Collections = []string{
	CollectionFlatmates, CollectionExpenses, CollectionGroceries,
	CollectionChores, CollectionEvents, CollectionPolls, CollectionNotes,
	CollectionMoods, CollectionServices, CollectionTasks, CollectionClasses,
}
