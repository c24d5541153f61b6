package model

import "time"

// NoteColors is the palette rotated through at note creation.
var NoteColors = []string{"yellow", "green", "blue", "pink", "purple"}

// NewExpense builds an expense with write-time defaults applied: the payer
// display name and flatmate ID come from the session, and a zero date is
// stamped with now.
func NewExpense(name string, amount float64, category ExpenseCategory, date time.Time, by *Flatmate, now time.Time) *Expense {
	if date.IsZero() {
		date = now
	}
	e := &Expense{Name: name, Amount: amount, Category: category, Date: date}
	if by != nil {
		e.PaidBy = by.Name
		e.FlatmateID = by.ID
	}
	return e
}

// NewGroceryItem builds a grocery item; items always start unpurchased.
func NewGroceryItem(name string, quantity int, by *Flatmate) *GroceryItem {
	g := &GroceryItem{Name: name, Quantity: quantity, Purchased: false}
	if by != nil {
		g.FlatmateID = by.ID
	}
	return g
}

// NewChore builds a chore; an empty assignee becomes the Unassigned sentinel.
func NewChore(name, assignedTo string, by *Flatmate) *Chore {
	if assignedTo == "" {
		assignedTo = ChoreUnassigned
	}
	c := &Chore{Name: name, AssignedTo: assignedTo, Completed: false}
	if by != nil {
		c.FlatmateID = by.ID
	}
	return c
}

// NewEvent builds an event.
func NewEvent(title string, date time.Time, typ EventType, by *Flatmate) *Event {
	e := &Event{Title: title, Date: date, Type: typ}
	if by != nil {
		e.FlatmateID = by.ID
	}
	return e
}

// NewPoll builds a poll with zeroed tallies regardless of what the caller
// supplied for votes or voters.
func NewPoll(question string, optionTexts []string, by *Flatmate) *Poll {
	opts := make([]PollOption, 0, len(optionTexts))
	for _, t := range optionTexts {
		opts = append(opts, PollOption{Text: t, Votes: 0, Voters: []string{}})
	}
	p := &Poll{Question: question, Options: opts}
	if by != nil {
		p.FlatmateID = by.ID
	}
	return p
}

// NewNote builds a note, denormalizing the author from the session flatmate
// and picking a palette color from the rotation seed.
func NewNote(content string, by *Flatmate, seq int, now time.Time) *Note {
	n := &Note{
		Content:   content,
		Color:     NoteColors[((seq%len(NoteColors))+len(NoteColors))%len(NoteColors)],
		CreatedAt: now,
	}
	if by != nil {
		n.Author = by.Name
		n.AuthorID = by.ID
	}
	return n
}

// NewMoodEntry builds a wellness entry; a zero date is stamped with now.
func NewMoodEntry(date time.Time, mood Mood, sleepHours float64, productivity Productivity, by *Flatmate, now time.Time) *MoodEntry {
	if date.IsZero() {
		date = now
	}
	m := &MoodEntry{Date: date, Mood: mood, SleepHours: sleepHours, Productivity: productivity}
	if by != nil {
		m.FlatmateID = by.ID
	}
	return m
}

// NewTask builds a planner task; tasks always start incomplete.
func NewTask(title string, dueDate *time.Time, by *Flatmate) *Task {
	t := &Task{Title: title, Completed: false, DueDate: dueDate}
	if by != nil {
		t.FlatmateID = by.ID
	}
	return t
}

// ValidExpenseCategory reports whether c is one of the fixed categories.
func ValidExpenseCategory(c ExpenseCategory) bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidEventType reports whether t is one of the four event types.
func ValidEventType(t EventType) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidMood reports whether m is a tracked mood.
func ValidMood(m Mood) bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// ValidProductivity reports whether p is a known productivity level.
func ValidProductivity(p Productivity) bool {
	for _, v := range ProductivityLevels {
		if v == p {
			return true
		}
	}
	return false
}

// ValidServiceType reports whether t is a directory category.
func ValidServiceType(t ServiceType) bool {
	for _, v := range ServiceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidWeekday reports whether d is a timetable day.
func ValidWeekday(d Weekday) bool {
	for _, v := range Weekdays {
		if v == d {
			return true
		}
	}
	return false
}
