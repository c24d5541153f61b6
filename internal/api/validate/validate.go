// Package validate holds the request-payload validation rules. Each helper
// returns an error describing the first violated rule.
package validate

import (
	"fmt"
	"regexp"

	"github.com/flathive/flathive/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field, v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// -------- Request specific helpers ----------

func Register(email, name, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if err := MaxLen("name", name, 100); err != nil {
		return err
	}
	return NonEmpty("password", password)
}

func CreateExpense(e *model.Expense) error {
	if err := NonEmpty("name", e.Name); err != nil {
		return err
	}
	if err := MaxLen("name", e.Name, 200); err != nil {
		return err
	}
	if e.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if !model.ValidExpenseCategory(e.Category) {
		return fmt.Errorf("unknown category %q", e.Category)
	}
	return nil
}

func CreateGroceryItem(g *model.GroceryItem) error {
	if err := NonEmpty("name", g.Name); err != nil {
		return err
	}
	if g.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return nil
}

func CreateChore(c *model.Chore) error {
	if err := NonEmpty("name", c.Name); err != nil {
		return err
	}
	return MaxLen("name", c.Name, 200)
}

func CreateEvent(e *model.Event) error {
	if err := NonEmpty("title", e.Title); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if !model.ValidEventType(e.Type) {
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}

func CreatePoll(p *model.Poll) error {
	if err := NonEmpty("question", p.Question); err != nil {
		return err
	}
	if len(p.Options) < 2 {
		return fmt.Errorf("a poll needs at least 2 options")
	}
	for i, o := range p.Options {
		if o.Text == "" {
			return fmt.Errorf("option %d text is required", i)
		}
	}
	return nil
}

func CreateNote(n *model.Note) error {
	if err := NonEmpty("content", n.Content); err != nil {
		return err
	}
	return MaxLen("content", n.Content, 2000)
}

func CreateMoodEntry(m *model.MoodEntry) error {
	if !model.ValidMood(m.Mood) {
		return fmt.Errorf("unknown mood %q", m.Mood)
	}
	if !model.ValidProductivity(m.Productivity) {
		return fmt.Errorf("unknown productivity level %q", m.Productivity)
	}
	if m.SleepHours < 0 || m.SleepHours > 24 {
		return fmt.Errorf("sleep hours must be between 0 and 24")
	}
	return nil
}

func CreateService(s *model.Service) error {
	if err := NonEmpty("name", s.Name); err != nil {
		return err
	}
	if !model.ValidServiceType(s.Type) {
		return fmt.Errorf("unknown service type %q", s.Type)
	}
	if s.Rating < 0 || s.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

func CreateTask(t *model.Task) error {
	if err := NonEmpty("title", t.Title); err != nil {
		return err
	}
	return MaxLen("title", t.Title, 200)
}

func CreateClassSlot(c *model.ClassSlot) error {
	if err := NonEmpty("name", c.Name); err != nil {
		return err
	}
	if err := NonEmpty("time", c.Time); err != nil {
		return err
	}
	if !model.ValidWeekday(c.Day) {
		return fmt.Errorf("unknown day %q", c.Day)
	}
	return nil
}
