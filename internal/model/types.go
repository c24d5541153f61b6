// Package model defines the flat entity records shared by the store,
// realtime, and API layers. Every entity is keyed by an opaque string ID
// assigned at creation time.
package model

import "time"

// ExpenseCategory enumerates the fixed expense categories.
type ExpenseCategory string

const (
	CategoryRent      ExpenseCategory = "Rent"
	CategoryBills     ExpenseCategory = "Bills"
	CategoryGroceries ExpenseCategory = "Groceries"
	CategoryFood      ExpenseCategory = "Food"
	CategoryOther     ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category, in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryRent, CategoryBills, CategoryGroceries, CategoryFood, CategoryOther,
}

// Flatmate is a member of the household. PasswordHash never crosses the API
// boundary.
type Flatmate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	PasswordHash string    `json:"-"`
	CreationTime time.Time `json:"creationTime"`
}

// Expense is a shared household expense.
type Expense struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     float64         `json:"amount"`
	Category   ExpenseCategory `json:"category"`
	Date       time.Time       `json:"date"`
	PaidBy     string          `json:"paidBy"`
	FlatmateID string          `json:"flatmateId,omitempty"`
}

// GroceryItem is a single line on the shared grocery list. Items are created
// unpurchased and toggled by any flatmate.
type GroceryItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Purchased  bool   `json:"purchased"`
	FlatmateID string `json:"flatmateId,omitempty"`
}

// ChoreUnassigned is the sentinel assignee for chores nobody has claimed.
const ChoreUnassigned = "Unassigned"

// Chore is a recurring household task.
type Chore struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AssignedTo string `json:"assignedTo"`
	Completed  bool   `json:"completed"`
	FlatmateID string `json:"flatmateId,omitempty"`
}

// EventType enumerates the four event categories.
type EventType string

const (
	EventMovieNight  EventType = "Movie Night"
	EventBirthday    EventType = "Birthday"
	EventCollegeFest EventType = "College Fest"
	EventOuting      EventType = "Outing"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{EventMovieNight, EventBirthday, EventCollegeFest, EventOuting}

// Event is a planned household event.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Type       EventType `json:"type"`
	FlatmateID string    `json:"flatmateId,omitempty"`
}

// IsPast reports whether the event date is strictly before now. The flag is
// derived at read time and never stored.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}

// PollOption is one choice on a poll. Votes always equals len(Voters); the
// store maintains that invariant under the one-active-vote policy.
type PollOption struct {
	Text   string   `json:"text"`
	Votes  int      `json:"votes"`
	Voters []string `json:"voters"`
}

// Poll is a household vote.
type Poll struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	FlatmateID string       `json:"flatmateId,omitempty"`
}

// TotalVotes returns the sum of option vote counts.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Share returns option i's fraction of the total vote count, or 0 when no
// votes have been cast or i is out of range.
func (p *Poll) Share(i int) float64 {
	if i < 0 || i >= len(p.Options) {
		return 0
	}
	total := p.TotalVotes()
	if total == 0 {
		return 0
	}
	return float64(p.Options[i].Votes) / float64(total)
}

// ApplyVote records one changeable vote: the flatmate is removed from
// whichever option currently holds them, then appended to optionIndex.
// Voting again for the currently held option is a tally no-op. Votes is kept
// equal to len(Voters) for every option. Returns ErrValidation when
// optionIndex is out of range.
func (p *Poll) ApplyVote(optionIndex int, flatmateID string) error {
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return ErrValidation
	}
	for i := range p.Options {
		o := &p.Options[i]
		for j, v := range o.Voters {
			if v == flatmateID {
				o.Voters = append(o.Voters[:j], o.Voters[j+1:]...)
				o.Votes = len(o.Voters)
				break
			}
		}
	}
	o := &p.Options[optionIndex]
	o.Voters = append(o.Voters, flatmateID)
	o.Votes = len(o.Voters)
	return nil
}

// Note is a pinboard note. Author is denormalized from the session flatmate
// at creation; any flatmate may edit or delete it.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Mood enumerates the five tracked moods.
type Mood string

const (
	MoodHappy      Mood = "Happy"
	MoodStressed   Mood = "Stressed"
	MoodSad        Mood = "Sad"
	MoodCalm       Mood = "Calm"
	MoodProductive Mood = "Productive"
)

// Moods lists every valid mood value.
var Moods = []Mood{MoodHappy, MoodStressed, MoodSad, MoodCalm, MoodProductive}

// Productivity enumerates the three productivity levels.
type Productivity string

const (
	ProductivityHigh   Productivity = "High"
	ProductivityMedium Productivity = "Medium"
	ProductivityLow    Productivity = "Low"
)

// ProductivityLevels lists every valid productivity level.
var ProductivityLevels = []Productivity{ProductivityHigh, ProductivityMedium, ProductivityLow}

// MoodEntry is one day of wellness tracking.
type MoodEntry struct {
	ID           string       `json:"id"`
	Date         time.Time    `json:"date"`
	Mood         Mood         `json:"mood"`
	SleepHours   float64      `json:"sleepHours"`
	Productivity Productivity `json:"productivity"`
	FlatmateID   string       `json:"flatmateId,omitempty"`
}

// ServiceType enumerates the directory categories.
type ServiceType string

const (
	ServiceTiffin       ServiceType = "Tiffin"
	ServiceLaundry      ServiceType = "Laundry"
	ServiceGroceryStore ServiceType = "Grocery Store"
	ServiceRestaurant   ServiceType = "Restaurant"
	ServiceElectronics  ServiceType = "Electronics"
	ServiceFurniture    ServiceType = "Furniture"
)

// ServiceTypes lists every valid service type.
var ServiceTypes = []ServiceType{
	ServiceTiffin, ServiceLaundry, ServiceGroceryStore,
	ServiceRestaurant, ServiceElectronics, ServiceFurniture,
}

// Service is a nearby service listing. Distance is a display string, not a
// structured unit.
type Service struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     ServiceType `json:"type"`
	Rating   float64     `json:"rating"`
	Distance string      `json:"distance"`
}

// Task is a personal planner item.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Completed  bool       `json:"completed"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	FlatmateID string     `json:"flatmateId,omitempty"`
}

// Weekday enumerates timetable days.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists every timetable day, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ClassSlot is one timetable entry, e.g. "Data Structures, 09:00 - 10:00, Monday".
type ClassSlot struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Time       string  `json:"time"`
	Day        Weekday `json:"day"`
	FlatmateID string  `json:"flatmateId,omitempty"`
}
