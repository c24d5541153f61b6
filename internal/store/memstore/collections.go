package memstore

import (
	"context"

	"github.com/flathive/flathive/internal/model"
)

// --- Events ---

type eventsRepo struct{ s *Store }

func (r eventsRepo) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *e
	if out.ID == "" {
		out.ID = r.s.newID("evt")
	}
	r.s.events = append(r.s.events, &out)
	r.s.confirm("Event Created!")
	cp := out
	return &cp, nil
}

func (r eventsRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r eventsRepo) List(ctx context.Context) ([]*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r eventsRepo) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.events {
		if cur.ID == e.ID {
			cp := *e
			r.s.events[i] = &cp
			out := cp
			r.s.confirm("Event updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r eventsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.events {
		if e.ID == id {
			r.s.events = append(r.s.events[:i], r.s.events[i+1:]...)
			r.s.confirm("Event deleted.")
			return nil
		}
	}
	return nil
}

// --- Polls ---

type polls struct{ s *Store }

func clonePoll(p *model.Poll) *model.Poll {
	cp := *p
	cp.Options = make([]model.PollOption, len(p.Options))
	for i, o := range p.Options {
		oc := o
		oc.Voters = append([]string(nil), o.Voters...)
		cp.Options[i] = oc
	}
	return &cp
}

func (r polls) Create(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := clonePoll(p)
	if out.ID == "" {
		out.ID = r.s.newID("poll")
	}
	r.s.polls = append(r.s.polls, out)
	r.s.confirm("Poll created!")
	return clonePoll(out), nil
}

func (r polls) Get(ctx context.Context, id string) (*model.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.polls {
		if p.ID == id {
			return clonePoll(p), nil
		}
	}
	return nil, model.ErrNotFound
}

func (r polls) List(ctx context.Context) ([]*model.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Poll, 0, len(r.s.polls))
	for _, p := range r.s.polls {
		out = append(out, clonePoll(p))
	}
	return out, nil
}

func (r polls) Update(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.polls {
		if cur.ID == p.ID {
			r.s.polls[i] = clonePoll(p)
			r.s.confirm("Poll updated!")
			return clonePoll(p), nil
		}
	}
	return nil, model.ErrNotFound
}

func (r polls) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.polls {
		if p.ID == id {
			r.s.polls = append(r.s.polls[:i], r.s.polls[i+1:]...)
			r.s.confirm("Poll deleted.")
			return nil
		}
	}
	return nil
}

func (r polls) Vote(ctx context.Context, pollID string, optionIndex int, flatmateID string) (*model.Poll, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.polls {
		if p.ID != pollID {
			continue
		}
		if err := p.ApplyVote(optionIndex, flatmateID); err != nil {
			return nil, err
		}
		r.s.confirm("Vote recorded!")
		return clonePoll(p), nil
	}
	return nil, model.ErrNotFound
}

// --- Notes ---

type notes struct{ s *Store }

func (r notes) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *n
	if out.ID == "" {
		out.ID = r.s.newID("note")
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = r.s.now()
	}
	r.s.notes = append(r.s.notes, &out)
	r.s.confirm("Note added!")
	cp := out
	return &cp, nil
}

func (r notes) Get(ctx context.Context, id string) (*model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notes {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r notes) List(ctx context.Context) ([]*model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Note, 0, len(r.s.notes))
	for _, n := range r.s.notes {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (r notes) Update(ctx context.Context, n *model.Note) (*model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.notes {
		if cur.ID == n.ID {
			cp := *n
			r.s.notes[i] = &cp
			out := cp
			r.s.confirm("Note updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r notes) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, n := range r.s.notes {
		if n.ID == id {
			r.s.notes = append(r.s.notes[:i], r.s.notes[i+1:]...)
			r.s.confirm("Note deleted.")
			return nil
		}
	}
	return nil
}

// --- Moods ---

type moods struct{ s *Store }

func (r moods) Create(ctx context.Context, m *model.MoodEntry) (*model.MoodEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *m
	if out.ID == "" {
		out.ID = r.s.newID("mood")
	}
	if out.Date.IsZero() {
		out.Date = r.s.now()
	}
	r.s.moods = append(r.s.moods, &out)
	r.s.confirm("Mood logged!")
	cp := out
	return &cp, nil
}

func (r moods) Get(ctx context.Context, id string) (*model.MoodEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.moods {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r moods) List(ctx context.Context) ([]*model.MoodEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.MoodEntry, 0, len(r.s.moods))
	for _, m := range r.s.moods {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r moods) Update(ctx context.Context, m *model.MoodEntry) (*model.MoodEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.moods {
		if cur.ID == m.ID {
			cp := *m
			r.s.moods[i] = &cp
			out := cp
			r.s.confirm("Mood entry updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r moods) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.moods {
		if m.ID == id {
			r.s.moods = append(r.s.moods[:i], r.s.moods[i+1:]...)
			r.s.confirm("Mood entry deleted.")
			return nil
		}
	}
	return nil
}

// --- Services ---

type services struct{ s *Store }

func (r services) Create(ctx context.Context, sv *model.Service) (*model.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *sv
	if out.ID == "" {
		out.ID = r.s.newID("svc")
	}
	r.s.services = append(r.s.services, &out)
	r.s.confirm("Service added!")
	cp := out
	return &cp, nil
}

func (r services) Get(ctx context.Context, id string) (*model.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sv := range r.s.services {
		if sv.ID == id {
			cp := *sv
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r services) List(ctx context.Context) ([]*model.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Service, 0, len(r.s.services))
	for _, sv := range r.s.services {
		cp := *sv
		out = append(out, &cp)
	}
	return out, nil
}

func (r services) Update(ctx context.Context, sv *model.Service) (*model.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.services {
		if cur.ID == sv.ID {
			cp := *sv
			r.s.services[i] = &cp
			out := cp
			r.s.confirm("Service updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r services) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sv := range r.s.services {
		if sv.ID == id {
			r.s.services = append(r.s.services[:i], r.s.services[i+1:]...)
			r.s.confirm("Service removed.")
			return nil
		}
	}
	return nil
}

// --- Tasks ---

type tasks struct{ s *Store }

func (r tasks) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *t
	if out.ID == "" {
		out.ID = r.s.newID("task")
	}
	out.Completed = false
	r.s.tasks = append(r.s.tasks, &out)
	r.s.confirm("Task added!")
	cp := out
	return &cp, nil
}

func (r tasks) Get(ctx context.Context, id string) (*model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r tasks) List(ctx context.Context) ([]*model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.Task, 0, len(r.s.tasks))
	for _, t := range r.s.tasks {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r tasks) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.tasks {
		if cur.ID == t.ID {
			cp := *t
			r.s.tasks[i] = &cp
			out := cp
			r.s.confirm("Task updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r tasks) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.tasks {
		if t.ID == id {
			r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
			r.s.confirm("Task deleted.")
			return nil
		}
	}
	return nil
}

func (r tasks) ToggleCompleted(ctx context.Context, id string) (*model.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tasks {
		if t.ID == id {
			t.Completed = !t.Completed
			r.s.confirm("Task updated!")
			cp := *t
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

// --- Classes ---

type classes struct{ s *Store }

func (r classes) Create(ctx context.Context, c *model.ClassSlot) (*model.ClassSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *c
	if out.ID == "" {
		out.ID = r.s.newID("cls")
	}
	r.s.classes = append(r.s.classes, &out)
	r.s.confirm("Class added!")
	cp := out
	return &cp, nil
}

func (r classes) Get(ctx context.Context, id string) (*model.ClassSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.classes {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r classes) List(ctx context.Context) ([]*model.ClassSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*model.ClassSlot, 0, len(r.s.classes))
	for _, c := range r.s.classes {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r classes) Update(ctx context.Context, c *model.ClassSlot) (*model.ClassSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.classes {
		if cur.ID == c.ID {
			cp := *c
			r.s.classes[i] = &cp
			out := cp
			r.s.confirm("Timetable updated!")
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r classes) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.classes {
		if c.ID == id {
			r.s.classes = append(r.s.classes[:i], r.s.classes[i+1:]...)
			r.s.confirm("Class removed.")
			return nil
		}
	}
	return nil
}
