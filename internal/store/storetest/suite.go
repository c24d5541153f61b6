package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Flatmates
	mate := &model.Flatmate{Name: "Alex", Email: "alex-" + uuid.New().String() + "@example.test"}
	mate, err := s.Flatmates().Create(ctx, mate)
	if err != nil {
		t.Fatalf("CreateFlatmate: %v", err)
	}
	if mate.ID == "" {
		t.Fatalf("CreateFlatmate: empty id")
	}
	if got, err := s.Flatmates().Get(ctx, mate.ID); err != nil || got.Name != "Alex" {
		t.Fatalf("GetFlatmate: got=%v err=%v", got, err)
	}
	if got, err := s.Flatmates().GetByEmail(ctx, mate.Email); err != nil || got.ID != mate.ID {
		t.Fatalf("GetFlatmateByEmail: got=%v err=%v", got, err)
	}

	// Expenses: create, list, update, idempotent delete
	exp, err := s.Expenses().Create(ctx, &model.Expense{
		Name: "Coffee", Amount: 150, Category: model.CategoryFood,
		Date: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), PaidBy: "Alex", FlatmateID: mate.ID,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if lst, err := s.Expenses().List(ctx); err != nil || len(lst) == 0 {
		t.Fatalf("ListExpenses: n=%d err=%v", len(lst), err)
	}
	exp.Amount = 175
	if upd, err := s.Expenses().Update(ctx, exp); err != nil || upd.Amount != 175 {
		t.Fatalf("UpdateExpense: got=%v err=%v", upd, err)
	}
	if err := s.Expenses().Delete(ctx, exp.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, err := s.Expenses().Get(ctx, exp.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetExpense after delete: err=%v, want ErrNotFound", err)
	}
	// Second delete is a no-op.
	if err := s.Expenses().Delete(ctx, exp.ID); err != nil {
		t.Fatalf("DeleteExpense twice: %v", err)
	}

	// Groceries: created unpurchased, toggle twice is an involution
	g, err := s.Groceries().Create(ctx, &model.GroceryItem{Name: "Milk", Quantity: 2, Purchased: true, FlatmateID: mate.ID})
	if err != nil {
		t.Fatalf("CreateGrocery: %v", err)
	}
	if g.Purchased {
		t.Fatalf("CreateGrocery: item must start unpurchased")
	}
	g1, err := s.Groceries().TogglePurchased(ctx, g.ID)
	if err != nil || !g1.Purchased {
		t.Fatalf("TogglePurchased: got=%v err=%v", g1, err)
	}
	g2, err := s.Groceries().TogglePurchased(ctx, g.ID)
	if err != nil || g2.Purchased {
		t.Fatalf("TogglePurchased twice: got=%v err=%v", g2, err)
	}
	if _, err := s.Groceries().TogglePurchased(ctx, "absent"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("TogglePurchased absent: err=%v, want ErrNotFound", err)
	}

	// Chores
	c, err := s.Chores().Create(ctx, &model.Chore{Name: "Clean Kitchen", AssignedTo: "Alex", FlatmateID: mate.ID})
	if err != nil {
		t.Fatalf("CreateChore: %v", err)
	}
	c1, err := s.Chores().ToggleCompleted(ctx, c.ID)
	if err != nil || !c1.Completed {
		t.Fatalf("ToggleCompleted: got=%v err=%v", c1, err)
	}
	c.AssignedTo = "Ben"
	if upd, err := s.Chores().Update(ctx, c); err != nil || upd.AssignedTo != "Ben" {
		t.Fatalf("UpdateChore: got=%v err=%v", upd, err)
	}

	// Events
	ev, err := s.Events().Create(ctx, &model.Event{
		Title: "Movie Night", Date: time.Date(2024, 8, 1, 20, 0, 0, 0, time.UTC),
		Type: model.EventMovieNight, FlatmateID: mate.ID,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if got, err := s.Events().Get(ctx, ev.ID); err != nil || got.Title != "Movie Night" {
		t.Fatalf("GetEvent: got=%v err=%v", got, err)
	}

	// Polls: one changeable vote per flatmate
	p, err := s.Polls().Create(ctx, &model.Poll{
		Question: "Pizza night or game night?",
		Options: []model.PollOption{
			{Text: "Pizza Night", Voters: []string{}},
			{Text: "Game Night", Voters: []string{}},
		},
		FlatmateID: mate.ID,
	})
	if err != nil {
		t.Fatalf("CreatePoll: %v", err)
	}
	p1, err := s.Polls().Vote(ctx, p.ID, 0, mate.ID)
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if p1.Options[0].Votes != 1 || p1.Options[1].Votes != 0 {
		t.Fatalf("Vote tallies: %+v", p1.Options)
	}
	// Changing the vote moves it rather than double counting.
	p2, err := s.Polls().Vote(ctx, p.ID, 1, mate.ID)
	if err != nil {
		t.Fatalf("Vote change: %v", err)
	}
	if p2.Options[0].Votes != 0 || p2.Options[1].Votes != 1 {
		t.Fatalf("Vote change tallies: %+v", p2.Options)
	}
	if p2.TotalVotes() != 1 {
		t.Fatalf("TotalVotes = %d, want 1", p2.TotalVotes())
	}
	for i, o := range p2.Options {
		if o.Votes != len(o.Voters) {
			t.Fatalf("option %d: votes=%d voters=%d", i, o.Votes, len(o.Voters))
		}
	}
	if _, err := s.Polls().Vote(ctx, p.ID, 7, mate.ID); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("Vote out of range: err=%v, want ErrValidation", err)
	}

	// Notes
	n, err := s.Notes().Create(ctx, &model.Note{Content: "Pay electricity bill", Color: "yellow", Author: "Alex", AuthorID: mate.ID})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if n.CreatedAt.IsZero() {
		t.Fatalf("CreateNote: zero CreatedAt not stamped")
	}

	// Moods
	if _, err := s.Moods().Create(ctx, &model.MoodEntry{
		Date: time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC),
		Mood: model.MoodHappy, SleepHours: 8, Productivity: model.ProductivityHigh, FlatmateID: mate.ID,
	}); err != nil {
		t.Fatalf("CreateMood: %v", err)
	}

	// Services
	sv, err := s.Services().Create(ctx, &model.Service{Name: "Sparkle Laundry", Type: model.ServiceLaundry, Rating: 4.2, Distance: "1.2 km"})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if got, err := s.Services().Get(ctx, sv.ID); err != nil || got.Rating != 4.2 {
		t.Fatalf("GetService: got=%v err=%v", got, err)
	}

	// Tasks
	due := time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC)
	tk, err := s.Tasks().Create(ctx, &model.Task{Title: "Submit assignment", DueDate: &due, FlatmateID: mate.ID})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if tk.Completed {
		t.Fatalf("CreateTask: task must start incomplete")
	}
	if tk1, err := s.Tasks().ToggleCompleted(ctx, tk.ID); err != nil || !tk1.Completed {
		t.Fatalf("ToggleTask: got=%v err=%v", tk1, err)
	}

	// Classes
	if _, err := s.Classes().Create(ctx, &model.ClassSlot{Name: "Data Structures", Time: "09:00 - 10:00", Day: model.Monday, FlatmateID: mate.ID}); err != nil {
		t.Fatalf("CreateClass: %v", err)
	}

	// Absent gets surface ErrNotFound across collections.
	if _, err := s.Notes().Get(ctx, "absent"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetNote absent: err=%v", err)
	}
	if _, err := s.Polls().Get(ctx, "absent"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetPoll absent: err=%v", err)
	}
}
