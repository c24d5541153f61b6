package memstore

import (
	"time"

	"github.com/flathive/flathive/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// loadFixtures seeds the demo household: three flatmates and a spread of
// records across every collection. Called once from New when seeding is
// enabled; IDs are fixed so demos and docs stay stable.
func (s *Store) loadFixtures() {
	s.flatmates = []*model.Flatmate{
		{ID: "user-1", Name: "Alex", Email: "alex@flathive.test"},
		{ID: "user-2", Name: "Ben", Email: "ben@flathive.test"},
		{ID: "user-3", Name: "Chloe", Email: "chloe@flathive.test"},
	}

	s.expenses = []*model.Expense{
		{ID: "exp-1", Name: "Monthly Rent", Amount: 12000, Category: model.CategoryRent, Date: date(2024, 7, 1), PaidBy: "Alex", FlatmateID: "user-1"},
		{ID: "exp-2", Name: "Electricity Bill", Amount: 1500, Category: model.CategoryBills, Date: date(2024, 7, 5), PaidBy: "Ben", FlatmateID: "user-2"},
		{ID: "exp-3", Name: "Weekly Groceries", Amount: 2500, Category: model.CategoryGroceries, Date: date(2024, 7, 8), PaidBy: "Chloe", FlatmateID: "user-3"},
		{ID: "exp-4", Name: "Pizza Night", Amount: 800, Category: model.CategoryFood, Date: date(2024, 7, 10), PaidBy: "Alex", FlatmateID: "user-1"},
		{ID: "exp-5", Name: "Internet Bill", Amount: 999, Category: model.CategoryBills, Date: date(2024, 7, 12), PaidBy: "Ben", FlatmateID: "user-2"},
	}

	s.groceries = []*model.GroceryItem{
		{ID: "groc-1", Name: "Milk", Quantity: 2, Purchased: false, FlatmateID: "user-1"},
		{ID: "groc-2", Name: "Bread", Quantity: 1, Purchased: true, FlatmateID: "user-2"},
		{ID: "groc-3", Name: "Eggs", Quantity: 12, Purchased: false, FlatmateID: "user-3"},
		{ID: "groc-4", Name: "Coffee", Quantity: 1, Purchased: false, FlatmateID: "user-1"},
	}

	s.chores = []*model.Chore{
		{ID: "ch-1", Name: "Clean Kitchen", AssignedTo: "Alex", Completed: false, FlatmateID: "user-1"},
		{ID: "ch-2", Name: "Take out trash", AssignedTo: "Ben", Completed: true, FlatmateID: "user-2"},
		{ID: "ch-3", Name: "Water plants", AssignedTo: "Chloe", Completed: false, FlatmateID: "user-3"},
		{ID: "ch-4", Name: "Clean Bathroom", AssignedTo: model.ChoreUnassigned, Completed: false, FlatmateID: "user-1"},
	}

	s.events = []*model.Event{
		{ID: "evt-1", Title: "Project Zenith Presentation", Date: date(2024, 8, 5), Type: model.EventCollegeFest, FlatmateID: "user-1"},
		{ID: "evt-2", Title: "Alex's Birthday Bash", Date: date(2024, 8, 15), Type: model.EventBirthday, FlatmateID: "user-2"},
		{ID: "evt-3", Title: "Movie Marathon: Sci-Fi Classics", Date: date(2024, 7, 27), Type: model.EventMovieNight, FlatmateID: "user-3"},
	}

	s.polls = []*model.Poll{
		{
			ID:       "poll-1",
			Question: "Pizza night or game night?",
			Options: []model.PollOption{
				{Text: "Pizza Night", Votes: 0, Voters: []string{}},
				{Text: "Game Night", Votes: 0, Voters: []string{}},
			},
			FlatmateID: "user-1",
		},
	}

	s.notes = []*model.Note{
		{ID: "note-1", Content: "Pay electricity bill by Friday!", Color: "yellow", Author: "Alex", AuthorID: "user-1", CreatedAt: ts("2024-07-22T10:00:00Z")},
		{ID: "note-2", Content: "Weekend movie plan: Anyone up for a horror movie?", Color: "green", Author: "Ben", AuthorID: "user-2", CreatedAt: ts("2024-07-21T14:30:00Z")},
		{ID: "note-3", Content: "Remember to buy groceries for the party.", Color: "blue", Author: "Chloe", AuthorID: "user-3", CreatedAt: ts("2024-07-20T09:00:00Z")},
	}

	s.moods = []*model.MoodEntry{
		{ID: "mood-1", Date: date(2024, 7, 18), Mood: model.MoodHappy, SleepHours: 8, Productivity: model.ProductivityHigh, FlatmateID: "user-1"},
		{ID: "mood-2", Date: date(2024, 7, 19), Mood: model.MoodStressed, SleepHours: 6, Productivity: model.ProductivityMedium, FlatmateID: "user-1"},
		{ID: "mood-3", Date: date(2024, 7, 20), Mood: model.MoodStressed, SleepHours: 5, Productivity: model.ProductivityLow, FlatmateID: "user-1"},
		{ID: "mood-4", Date: date(2024, 7, 21), Mood: model.MoodStressed, SleepHours: 6, Productivity: model.ProductivityMedium, FlatmateID: "user-1"},
		{ID: "mood-5", Date: date(2024, 7, 22), Mood: model.MoodCalm, SleepHours: 7, Productivity: model.ProductivityMedium, FlatmateID: "user-1"},
		{ID: "mood-6", Date: date(2024, 7, 23), Mood: model.MoodProductive, SleepHours: 8, Productivity: model.ProductivityHigh, FlatmateID: "user-1"},
		{ID: "mood-7", Date: date(2024, 7, 24), Mood: model.MoodHappy, SleepHours: 7, Productivity: model.ProductivityHigh, FlatmateID: "user-1"},
	}

	s.services = []*model.Service{
		{ID: "svc-1", Name: "Annapurna Tiffins", Type: model.ServiceTiffin, Rating: 4.5, Distance: "0.5 km"},
		{ID: "svc-2", Name: "Sparkle Laundry", Type: model.ServiceLaundry, Rating: 4.2, Distance: "1.2 km"},
		{ID: "svc-3", Name: "Daily Needs Mart", Type: model.ServiceGroceryStore, Rating: 4.0, Distance: "0.8 km"},
		{ID: "svc-4", Name: "Cafe Coastal", Type: model.ServiceRestaurant, Rating: 4.7, Distance: "2.0 km"},
	}

	s.tasks = []*model.Task{
		{ID: "task-1", Title: "Submit Physics Assignment", Completed: false, DueDate: ptr(date(2024, 7, 25)), FlatmateID: "user-1"},
		{ID: "task-2", Title: "Prepare for Chemistry Mid-term", Completed: false, DueDate: ptr(date(2024, 7, 28)), FlatmateID: "user-1"},
		{ID: "task-3", Title: "Buy new notebook", Completed: true, DueDate: ptr(date(2024, 7, 20)), FlatmateID: "user-1"},
		{ID: "task-4", Title: "Group study session for Math", Completed: false, DueDate: ptr(date(2024, 7, 26)), FlatmateID: "user-1"},
	}

	s.classes = []*model.ClassSlot{
		{ID: "cls-1", Name: "Data Structures", Time: "09:00 - 10:00", Day: model.Monday, FlatmateID: "user-1"},
		{ID: "cls-2", Name: "Algorithms", Time: "10:00 - 11:00", Day: model.Monday, FlatmateID: "user-1"},
		{ID: "cls-3", Name: "Database Systems", Time: "09:00 - 10:00", Day: model.Tuesday, FlatmateID: "user-1"},
		{ID: "cls-4", Name: "Operating Systems", Time: "10:00 - 11:00", Day: model.Wednesday, FlatmateID: "user-1"},
		{ID: "cls-5", Name: "Computer Networks", Time: "11:00 - 12:00", Day: model.Thursday, FlatmateID: "user-1"},
		{ID: "cls-6", Name: "Lab Session", Time: "14:00 - 16:00", Day: model.Friday, FlatmateID: "user-1"},
	}
}

func ptr(t time.Time) *time.Time { return &t }
