package model

import (
	"testing"
	"time"
)

func TestEventIsPast(t *testing.T) {
	now := time.Date(2024, 7, 25, 12, 0, 0, 0, time.UTC)
	e := &Event{Title: "Movie Night", Date: now.Add(24 * time.Hour), Type: EventMovieNight}

	if e.IsPast(now) {
		t.Fatalf("event dated tomorrow reported as past")
	}
	// Advancing the clock flips the derived flag without touching the record.
	if !e.IsPast(now.Add(48 * time.Hour)) {
		t.Fatalf("event not past after its date")
	}
	if !e.Date.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("record mutated by IsPast")
	}
}

func TestPollShare(t *testing.T) {
	p := &Poll{
		Question: "Pizza night or game night?",
		Options: []PollOption{
			{Text: "Pizza Night", Votes: 8},
			{Text: "Game Night", Votes: 2},
		},
	}

	if got := p.Share(0); got != 0.8 {
		t.Fatalf("Share(0) = %v, want 0.8", got)
	}
	if got := p.Share(1); got != 0.2 {
		t.Fatalf("Share(1) = %v, want 0.2", got)
	}
	if got := p.Share(5); got != 0 {
		t.Fatalf("Share out of range = %v, want 0", got)
	}

	empty := &Poll{Options: []PollOption{{Text: "a"}, {Text: "b"}}}
	if got := empty.Share(0); got != 0 {
		t.Fatalf("Share with zero total = %v, want 0", got)
	}
}

func TestNewExpenseDefaults(t *testing.T) {
	now := time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC)
	by := &Flatmate{ID: "user-1", Name: "Alex"}

	e := NewExpense("Coffee", 150, CategoryFood, time.Time{}, by, now)
	if e.PaidBy != "Alex" || e.FlatmateID != "user-1" {
		t.Fatalf("payer defaults not applied: %+v", e)
	}
	if !e.Date.Equal(now) {
		t.Fatalf("zero date not stamped with now")
	}
}

func TestNewGroceryItemStartsUnpurchased(t *testing.T) {
	g := NewGroceryItem("Milk", 2, &Flatmate{ID: "user-1"})
	if g.Purchased {
		t.Fatalf("new grocery item must start unpurchased")
	}
}

func TestNewChoreUnassignedSentinel(t *testing.T) {
	c := NewChore("Clean Bathroom", "", nil)
	if c.AssignedTo != ChoreUnassigned {
		t.Fatalf("empty assignee = %q, want %q", c.AssignedTo, ChoreUnassigned)
	}
}

func TestNewPollZeroesTallies(t *testing.T) {
	p := NewPoll("Q?", []string{"a", "b"}, nil)
	for i, o := range p.Options {
		if o.Votes != 0 || len(o.Voters) != 0 {
			t.Fatalf("option %d not zeroed: %+v", i, o)
		}
	}
}

func TestNewNoteColorRotation(t *testing.T) {
	now := time.Now()
	by := &Flatmate{ID: "user-1", Name: "Alex"}
	seen := map[string]bool{}
	for i := 0; i < len(NoteColors); i++ {
		n := NewNote("hi", by, i, now)
		seen[n.Color] = true
		if n.Author != "Alex" || n.AuthorID != "user-1" {
			t.Fatalf("author not denormalized: %+v", n)
		}
	}
	if len(seen) != len(NoteColors) {
		t.Fatalf("rotation covered %d colors, want %d", len(seen), len(NoteColors))
	}
	// Negative seeds must not panic or index out of range.
	_ = NewNote("hi", by, -3, now)
}

func TestEnumValidators(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
		got  bool
	}{
		{"category known", true, ValidExpenseCategory(CategoryFood)},
		{"category unknown", false, ValidExpenseCategory("Snacks")},
		{"event type known", true, ValidEventType(EventBirthday)},
		{"event type unknown", false, ValidEventType("Concert")},
		{"mood known", true, ValidMood(MoodCalm)},
		{"mood unknown", false, ValidMood("Bored")},
		{"productivity known", true, ValidProductivity(ProductivityLow)},
		{"productivity unknown", false, ValidProductivity("None")},
		{"service type known", true, ValidServiceType(ServiceLaundry)},
		{"service type unknown", false, ValidServiceType("Plumber")},
		{"weekday known", true, ValidWeekday(Friday)},
		{"weekday unknown", false, ValidWeekday("Funday")},
	}
	for _, c := range cases {
		if c.got != c.ok {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.ok)
		}
	}
}
