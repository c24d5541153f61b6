package validate

import (
	"testing"
	"time"

	"github.com/flathive/flathive/internal/model"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"alex@flat.test", true},
		{"", false},
		{"not-an-email", false},
		{"two@@flat.test", false},
	}
	for _, c := range cases {
		if err := Email(c.in); (err == nil) != c.ok {
			t.Errorf("Email(%q): ok=%v err=%v", c.in, c.ok, err)
		}
	}
}

func TestRegister(t *testing.T) {
	if err := Register("alex@flat.test", "Alex", "some password"); err != nil {
		t.Fatalf("valid register rejected: %v", err)
	}
	if err := Register("alex@flat.test", "", "some password"); err == nil {
		t.Fatalf("missing name accepted")
	}
	if err := Register("bad", "Alex", "some password"); err == nil {
		t.Fatalf("bad email accepted")
	}
}

func TestCreateExpense(t *testing.T) {
	ok := &model.Expense{Name: "Rent", Amount: 1200, Category: model.CategoryRent}
	if err := CreateExpense(ok); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}
	if err := CreateExpense(&model.Expense{Name: "", Amount: 1, Category: model.CategoryRent}); err == nil {
		t.Fatalf("empty name accepted")
	}
	if err := CreateExpense(&model.Expense{Name: "x", Amount: -1, Category: model.CategoryRent}); err == nil {
		t.Fatalf("negative amount accepted")
	}
	if err := CreateExpense(&model.Expense{Name: "x", Amount: 1, Category: "Gadgets"}); err == nil {
		t.Fatalf("unknown category accepted")
	}
}

func TestCreatePoll(t *testing.T) {
	ok := &model.Poll{Question: "Pizza?", Options: []model.PollOption{{Text: "Yes"}, {Text: "No"}}}
	if err := CreatePoll(ok); err != nil {
		t.Fatalf("valid poll rejected: %v", err)
	}
	if err := CreatePoll(&model.Poll{Question: "Pizza?", Options: []model.PollOption{{Text: "Yes"}}}); err == nil {
		t.Fatalf("single-option poll accepted")
	}
	if err := CreatePoll(&model.Poll{Question: "Pizza?", Options: []model.PollOption{{Text: "Yes"}, {}}}); err == nil {
		t.Fatalf("empty option text accepted")
	}
}

func TestCreateMoodEntry(t *testing.T) {
	ok := &model.MoodEntry{Mood: model.MoodCalm, SleepHours: 7.5, Productivity: model.ProductivityMedium}
	if err := CreateMoodEntry(ok); err != nil {
		t.Fatalf("valid mood entry rejected: %v", err)
	}
	if err := CreateMoodEntry(&model.MoodEntry{Mood: "Over the moon", SleepHours: 7, Productivity: model.ProductivityLow}); err == nil {
		t.Fatalf("unknown mood accepted")
	}
	if err := CreateMoodEntry(&model.MoodEntry{Mood: model.MoodCalm, SleepHours: 30, Productivity: model.ProductivityLow}); err == nil {
		t.Fatalf("sleep hours out of range accepted")
	}
}

func TestCreateEvent(t *testing.T) {
	ok := &model.Event{Title: "Game night", Date: time.Now(), Type: model.EventOuting}
	if err := CreateEvent(ok); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
	if err := CreateEvent(&model.Event{Title: "x", Type: model.EventOuting}); err == nil {
		t.Fatalf("zero date accepted")
	}
}

func TestCreateClassSlot(t *testing.T) {
	ok := &model.ClassSlot{Name: "Data Structures", Time: "09:00 - 10:00", Day: model.Monday}
	if err := CreateClassSlot(ok); err != nil {
		t.Fatalf("valid class slot rejected: %v", err)
	}
	if err := CreateClassSlot(&model.ClassSlot{Name: "x", Time: "09:00", Day: "Funday"}); err == nil {
		t.Fatalf("unknown weekday accepted")
	}
}
