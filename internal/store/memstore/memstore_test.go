package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store"
	"github.com/flathive/flathive/internal/store/storetest"
)

func TestMemstoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Confirm(msg string) { n.messages = append(n.messages, msg) }

func TestMutationsEmitConfirmations(t *testing.T) {
	n := &recordingNotifier{}
	s := New(WithNotifier(n))
	ctx := context.Background()

	e, err := s.Expenses().Create(ctx, &model.Expense{Name: "Coffee", Amount: 150, Category: model.CategoryFood})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Expenses().Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"Expense Added!", "Expense Deleted"}
	if len(n.messages) != len(want) {
		t.Fatalf("messages = %v, want %v", n.messages, want)
	}
	for i := range want {
		if n.messages[i] != want[i] {
			t.Fatalf("messages[%d] = %q, want %q", i, n.messages[i], want[i])
		}
	}
}

func TestTogglesEmitConfirmations(t *testing.T) {
	n := &recordingNotifier{}
	s := New(WithNotifier(n))
	ctx := context.Background()

	g, err := s.Groceries().Create(ctx, &model.GroceryItem{Name: "Milk", Quantity: 2})
	if err != nil {
		t.Fatalf("create grocery: %v", err)
	}
	c, err := s.Chores().Create(ctx, &model.Chore{Name: "Dishes"})
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}
	tk, err := s.Tasks().Create(ctx, &model.Task{Title: "Pay rent"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	n.messages = nil

	if _, err := s.Groceries().TogglePurchased(ctx, g.ID); err != nil {
		t.Fatalf("toggle grocery: %v", err)
	}
	if _, err := s.Chores().ToggleCompleted(ctx, c.ID); err != nil {
		t.Fatalf("toggle chore: %v", err)
	}
	if _, err := s.Tasks().ToggleCompleted(ctx, tk.ID); err != nil {
		t.Fatalf("toggle task: %v", err)
	}

	want := []string{"Grocery item updated!", "Chore updated!", "Task updated!"}
	if len(n.messages) != len(want) {
		t.Fatalf("messages = %v, want %v", n.messages, want)
	}
	for i := range want {
		if n.messages[i] != want[i] {
			t.Fatalf("messages[%d] = %q, want %q", i, n.messages[i], want[i])
		}
	}
}

func TestVoteEmitsConfirmation(t *testing.T) {
	n := &recordingNotifier{}
	s := New(WithNotifier(n))
	ctx := context.Background()

	p, err := s.Polls().Create(ctx, &model.Poll{Question: "Q?", Options: []model.PollOption{{Text: "a"}, {Text: "b"}}})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	n.messages = nil

	if _, err := s.Polls().Vote(ctx, p.ID, 0, "user-1"); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if len(n.messages) != 1 || n.messages[0] != "Vote recorded!" {
		t.Fatalf("messages = %v, want [Vote recorded!]", n.messages)
	}
}

func TestDeleteAbsentEmitsNothing(t *testing.T) {
	n := &recordingNotifier{}
	s := New(WithNotifier(n))

	if err := s.Expenses().Delete(context.Background(), "absent"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if len(n.messages) != 0 {
		t.Fatalf("no-op delete emitted %v", n.messages)
	}
}

func TestAddThenDeleteLeavesCollectionEmpty(t *testing.T) {
	s := New()
	ctx := context.Background()

	g, _ := s.Groceries().Create(ctx, &model.GroceryItem{Name: "Milk", Quantity: 2})
	if err := s.Groceries().Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	lst, _ := s.Groceries().List(ctx)
	if len(lst) != 0 {
		t.Fatalf("collection not empty after add+delete: %v", lst)
	}
	// Idempotent second delete.
	if err := s.Groceries().Delete(ctx, g.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestIDsAreTimestampTokens(t *testing.T) {
	fixed := time.Date(2024, 7, 25, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	a, _ := s.Expenses().Create(ctx, &model.Expense{Name: "a"})
	b, _ := s.Expenses().Create(ctx, &model.Expense{Name: "b"})
	if a.ID == b.ID {
		t.Fatalf("two creates in the same instant produced equal IDs: %s", a.ID)
	}
	if a.ID[:4] != "exp-" {
		t.Fatalf("expense ID %q missing collection prefix", a.ID)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	g, _ := s.Groceries().Create(ctx, &model.GroceryItem{Name: "Milk", Quantity: 2})
	lst, _ := s.Groceries().List(ctx)
	lst[0].Name = "mutated"

	got, _ := s.Groceries().Get(ctx, g.ID)
	if got.Name != "Milk" {
		t.Fatalf("caller mutation leaked into store: %q", got.Name)
	}
}

func TestSeedFixtures(t *testing.T) {
	s := New(WithSeed())
	ctx := context.Background()

	exps, _ := s.Expenses().List(ctx)
	if len(exps) != 5 {
		t.Fatalf("seeded expenses = %d, want 5", len(exps))
	}
	mates, _ := s.Flatmates().List(ctx)
	if len(mates) != 3 {
		t.Fatalf("seeded flatmates = %d, want 3", len(mates))
	}
	if _, err := s.Flatmates().GetByEmail(ctx, "alex@flathive.test"); err != nil {
		t.Fatalf("seeded flatmate missing: %v", err)
	}
}

func TestVoteMovesBetweenOptions(t *testing.T) {
	s := New(WithSeed())
	ctx := context.Background()

	p, err := s.Polls().Vote(ctx, "poll-1", 0, "user-1")
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if p.Options[0].Votes != 1 {
		t.Fatalf("votes = %d, want 1", p.Options[0].Votes)
	}
	// Same option again is a no-op on the tally.
	p, _ = s.Polls().Vote(ctx, "poll-1", 0, "user-1")
	if p.Options[0].Votes != 1 || p.TotalVotes() != 1 {
		t.Fatalf("repeat vote changed tallies: %+v", p.Options)
	}
	// Second voter lands on the other option.
	p, _ = s.Polls().Vote(ctx, "poll-1", 1, "user-2")
	if p.Options[0].Votes != 1 || p.Options[1].Votes != 1 {
		t.Fatalf("tallies after two voters: %+v", p.Options)
	}
	if got := p.Share(0); got != 0.5 {
		t.Fatalf("Share(0) = %v, want 0.5", got)
	}
}
