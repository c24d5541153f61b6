// Package postgres is the store.Store implementation for shared deployments,
// built on the pgx stdlib driver. Poll options live in a JSONB column; list
// order follows a BIGSERIAL seq column, i.e. insertion order.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, applies the schema, and returns the store.
func New(dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB constructs a Postgres store over an existing connection. Callers
// own the connection's lifecycle.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

// Bootstrap verifies Postgres is reachable and the schema exists. Safe to run
// on every start.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := EnsureSchema(db); err != nil {
		return err
	}
	return db.PingContext(ctx)
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Flatmates() store.Flatmates { return &flatmates{db: s.db} }
func (s *pgStore) Expenses() store.Expenses   { return &expenses{db: s.db} }
func (s *pgStore) Groceries() store.Groceries { return &groceries{db: s.db} }
func (s *pgStore) Chores() store.Chores       { return &chores{db: s.db} }
func (s *pgStore) Events() store.Events       { return &eventsRepo{db: s.db} }
func (s *pgStore) Polls() store.Polls         { return &polls{db: s.db} }
func (s *pgStore) Notes() store.Notes         { return &notes{db: s.db} }
func (s *pgStore) Moods() store.Moods         { return &moods{db: s.db} }
func (s *pgStore) Services() store.Services   { return &services{db: s.db} }
func (s *pgStore) Tasks() store.Tasks         { return &tasks{db: s.db} }
func (s *pgStore) Classes() store.Classes     { return &classes{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

type scanner interface{ Scan(...interface{}) error }

// --- Flatmates ---

type flatmates struct{ db *sql.DB }

func (r *flatmates) Create(ctx context.Context, f *model.Flatmate) (*model.Flatmate, error) {
	out := *f
	out.ID = newID(f.ID)
	if out.CreationTime.IsZero() {
		out.CreationTime = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO flatmates (id, name, email, avatar_url, password_hash, creation_time)
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ID, out.Name, out.Email, out.AvatarURL, out.PasswordHash, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanFlatmate(row scanner) (*model.Flatmate, error) {
	var f model.Flatmate
	if err := row.Scan(&f.ID, &f.Name, &f.Email, &f.AvatarURL, &f.PasswordHash, &f.CreationTime); err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *flatmates) Get(ctx context.Context, id string) (*model.Flatmate, error) {
	return scanFlatmate(r.db.QueryRowContext(ctx, `
        SELECT id, name, email, avatar_url, password_hash, creation_time FROM flatmates WHERE id=$1
    `, id))
}

func (r *flatmates) GetByEmail(ctx context.Context, email string) (*model.Flatmate, error) {
	return scanFlatmate(r.db.QueryRowContext(ctx, `
        SELECT id, name, email, avatar_url, password_hash, creation_time FROM flatmates WHERE email=$1
    `, email))
}

func (r *flatmates) List(ctx context.Context) ([]*model.Flatmate, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, email, avatar_url, password_hash, creation_time FROM flatmates ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Flatmate
	for rows.Next() {
		f, err := scanFlatmate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *flatmates) Update(ctx context.Context, f *model.Flatmate) (*model.Flatmate, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE flatmates SET name=$1, email=$2, avatar_url=$3, password_hash=$4 WHERE id=$5
    `, f.Name, f.Email, f.AvatarURL, f.PasswordHash, f.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, f.ID)
}

func (r *flatmates) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM flatmates WHERE id=$1`, id)
	return err
}

// --- Expenses ---

type expenses struct{ db *sql.DB }

func (r *expenses) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	out := *e
	out.ID = newID(e.ID)
	if out.Date.IsZero() {
		out.Date = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO expenses (id, name, amount, category, date, paid_by, flatmate_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.ID, out.Name, out.Amount, string(out.Category), out.Date, out.PaidBy, out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanExpense(row scanner) (*model.Expense, error) {
	var e model.Expense
	if err := row.Scan(&e.ID, &e.Name, &e.Amount, &e.Category, &e.Date, &e.PaidBy, &e.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *expenses) Get(ctx context.Context, id string) (*model.Expense, error) {
	return scanExpense(r.db.QueryRowContext(ctx, `
        SELECT id, name, amount, category, date, paid_by, flatmate_id FROM expenses WHERE id=$1
    `, id))
}

func (r *expenses) List(ctx context.Context) ([]*model.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, amount, category, date, paid_by, flatmate_id FROM expenses ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *expenses) Update(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE expenses SET name=$1, amount=$2, category=$3, date=$4, paid_by=$5, flatmate_id=$6 WHERE id=$7
    `, e.Name, e.Amount, string(e.Category), e.Date, e.PaidBy, e.FlatmateID, e.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, e.ID)
}

func (r *expenses) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	return err
}

// --- Groceries ---

type groceries struct{ db *sql.DB }

func (r *groceries) Create(ctx context.Context, g *model.GroceryItem) (*model.GroceryItem, error) {
	out := *g
	out.ID = newID(g.ID)
	out.Purchased = false
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO groceries (id, name, quantity, purchased, flatmate_id) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Name, out.Quantity, out.Purchased, out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanGrocery(row scanner) (*model.GroceryItem, error) {
	var g model.GroceryItem
	if err := row.Scan(&g.ID, &g.Name, &g.Quantity, &g.Purchased, &g.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *groceries) Get(ctx context.Context, id string) (*model.GroceryItem, error) {
	return scanGrocery(r.db.QueryRowContext(ctx, `
        SELECT id, name, quantity, purchased, flatmate_id FROM groceries WHERE id=$1
    `, id))
}

func (r *groceries) List(ctx context.Context) ([]*model.GroceryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, quantity, purchased, flatmate_id FROM groceries ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.GroceryItem
	for rows.Next() {
		g, err := scanGrocery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *groceries) Update(ctx context.Context, g *model.GroceryItem) (*model.GroceryItem, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE groceries SET name=$1, quantity=$2, purchased=$3, flatmate_id=$4 WHERE id=$5
    `, g.Name, g.Quantity, g.Purchased, g.FlatmateID, g.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, g.ID)
}

func (r *groceries) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groceries WHERE id=$1`, id)
	return err
}

func (r *groceries) TogglePurchased(ctx context.Context, id string) (*model.GroceryItem, error) {
	return scanGrocery(r.db.QueryRowContext(ctx, `
        UPDATE groceries SET purchased = NOT purchased WHERE id=$1
        RETURNING id, name, quantity, purchased, flatmate_id
    `, id))
}

// --- Chores ---

type chores struct{ db *sql.DB }

func (r *chores) Create(ctx context.Context, c *model.Chore) (*model.Chore, error) {
	out := *c
	out.ID = newID(c.ID)
	if out.AssignedTo == "" {
		out.AssignedTo = model.ChoreUnassigned
	}
	out.Completed = false
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO chores (id, name, assigned_to, completed, flatmate_id) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Name, out.AssignedTo, out.Completed, out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanChore(row scanner) (*model.Chore, error) {
	var c model.Chore
	if err := row.Scan(&c.ID, &c.Name, &c.AssignedTo, &c.Completed, &c.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *chores) Get(ctx context.Context, id string) (*model.Chore, error) {
	return scanChore(r.db.QueryRowContext(ctx, `
        SELECT id, name, assigned_to, completed, flatmate_id FROM chores WHERE id=$1
    `, id))
}

func (r *chores) List(ctx context.Context) ([]*model.Chore, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, assigned_to, completed, flatmate_id FROM chores ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *chores) Update(ctx context.Context, c *model.Chore) (*model.Chore, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE chores SET name=$1, assigned_to=$2, completed=$3, flatmate_id=$4 WHERE id=$5
    `, c.Name, c.AssignedTo, c.Completed, c.FlatmateID, c.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

func (r *chores) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chores WHERE id=$1`, id)
	return err
}

func (r *chores) ToggleCompleted(ctx context.Context, id string) (*model.Chore, error) {
	return scanChore(r.db.QueryRowContext(ctx, `
        UPDATE chores SET completed = NOT completed WHERE id=$1
        RETURNING id, name, assigned_to, completed, flatmate_id
    `, id))
}

// --- Events ---

type eventsRepo struct{ db *sql.DB }

func (r *eventsRepo) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	out := *e
	out.ID = newID(e.ID)
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO events (id, title, date, type, flatmate_id) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Title, out.Date, string(out.Type), out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanEvent(row scanner) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Type, &e.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *eventsRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx, `
        SELECT id, title, date, type, flatmate_id FROM events WHERE id=$1
    `, id))
}

func (r *eventsRepo) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, date, type, flatmate_id FROM events ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventsRepo) Update(ctx context.Context, e *model.Event) (*model.Event, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE events SET title=$1, date=$2, type=$3, flatmate_id=$4 WHERE id=$5
    `, e.Title, e.Date, string(e.Type), e.FlatmateID, e.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, e.ID)
}

func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id)
	return err
}

// --- Polls ---

type polls struct{ db *sql.DB }

func encodeOptions(opts []model.PollOption) ([]byte, error) {
	if opts == nil {
		opts = []model.PollOption{}
	}
	return json.Marshal(opts)
}

func scanPoll(row scanner) (*model.Poll, error) {
	var p model.Poll
	var raw []byte
	if err := row.Scan(&p.ID, &p.Question, &raw, &p.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal(raw, &p.Options); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *polls) Create(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	out := *p
	out.ID = newID(p.ID)
	raw, err := encodeOptions(out.Options)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO polls (id, question, options, flatmate_id) VALUES ($1,$2,$3,$4)
    `, out.ID, out.Question, raw, out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *polls) Get(ctx context.Context, id string) (*model.Poll, error) {
	return scanPoll(r.db.QueryRowContext(ctx, `
        SELECT id, question, options, flatmate_id FROM polls WHERE id=$1
    `, id))
}

func (r *polls) List(ctx context.Context) ([]*model.Poll, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, question, options, flatmate_id FROM polls ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Poll
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *polls) Update(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	raw, err := encodeOptions(p.Options)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, `
        UPDATE polls SET question=$1, options=$2, flatmate_id=$3 WHERE id=$4
    `, p.Question, raw, p.FlatmateID, p.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

func (r *polls) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id=$1`, id)
	return err
}

// Vote locks the poll row for the read-modify-write so concurrent votes on
// the same poll serialize.
func (r *polls) Vote(ctx context.Context, pollID string, optionIndex int, flatmateID string) (*model.Poll, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := scanPoll(tx.QueryRowContext(ctx, `
        SELECT id, question, options, flatmate_id FROM polls WHERE id=$1 FOR UPDATE
    `, pollID))
	if err != nil {
		return nil, err
	}
	if err := p.ApplyVote(optionIndex, flatmateID); err != nil {
		return nil, err
	}
	raw, err := encodeOptions(p.Options)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE polls SET options=$1 WHERE id=$2`, raw, pollID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// --- Notes ---

type notes struct{ db *sql.DB }

func (r *notes) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	out := *n
	out.ID = newID(n.ID)
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO notes (id, content, color, author, author_id, created_at) VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ID, out.Content, out.Color, out.Author, out.AuthorID, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanNote(row scanner) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(&n.ID, &n.Content, &n.Color, &n.Author, &n.AuthorID, &n.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

func (r *notes) Get(ctx context.Context, id string) (*model.Note, error) {
	return scanNote(r.db.QueryRowContext(ctx, `
        SELECT id, content, color, author, author_id, created_at FROM notes WHERE id=$1
    `, id))
}

func (r *notes) List(ctx context.Context) ([]*model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, content, color, author, author_id, created_at FROM notes ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notes) Update(ctx context.Context, n *model.Note) (*model.Note, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE notes SET content=$1, color=$2 WHERE id=$3
    `, n.Content, n.Color, n.ID)
	if err != nil {
		return nil, err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, n.ID)
}

func (r *notes) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id=$1`, id)
	return err
}

// --- Moods ---

type moods struct{ db *sql.DB }

func (r *moods) Create(ctx context.Context, m *model.MoodEntry) (*model.MoodEntry, error) {
	out := *m
	out.ID = newID(m.ID)
	if out.Date.IsZero() {
		out.Date = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO moods (id, date, mood, sleep_hours, productivity, flatmate_id) VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ID, out.Date, string(out.Mood), out.SleepHours, string(out.Productivity), out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanMood(row scanner) (*model.MoodEntry, error) {
	var m model.MoodEntry
	if err := row.Scan(&m.ID, &m.Date, &m.Mood, &m.SleepHours, &m.Productivity, &m.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *moods) Get(ctx context.Context, id string) (*model.MoodEntry, error) {
	return scanMood(r.db.QueryRowContext(ctx, `
        SELECT id, date, mood, sleep_hours, productivity, flatmate_id FROM moods WHERE id=$1
    `, id))
}

func (r *moods) List(ctx context.Context) ([]*model.MoodEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, date, mood, sleep_hours, productivity, flatmate_id FROM moods ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.MoodEntry
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *moods) Update(ctx context.Context, m *model.MoodEntry) (*model.MoodEntry, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE moods SET date=$1, mood=$2, sleep_hours=$3, productivity=$4, flatmate_id=$5 WHERE id=$6
    `, m.Date, string(m.Mood), m.SleepHours, string(m.Productivity), m.FlatmateID, m.ID)
	if err != nil {
		return nil, err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, m.ID)
}

func (r *moods) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM moods WHERE id=$1`, id)
	return err
}

// --- Services ---

type services struct{ db *sql.DB }

func (r *services) Create(ctx context.Context, s *model.Service) (*model.Service, error) {
	out := *s
	out.ID = newID(s.ID)
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO services (id, name, type, rating, distance) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Name, string(out.Type), out.Rating, out.Distance)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanService(row scanner) (*model.Service, error) {
	var s model.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Type, &s.Rating, &s.Distance); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *services) Get(ctx context.Context, id string) (*model.Service, error) {
	return scanService(r.db.QueryRowContext(ctx, `
        SELECT id, name, type, rating, distance FROM services WHERE id=$1
    `, id))
}

func (r *services) List(ctx context.Context) ([]*model.Service, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, type, rating, distance FROM services ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *services) Update(ctx context.Context, s *model.Service) (*model.Service, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE services SET name=$1, type=$2, rating=$3, distance=$4 WHERE id=$5
    `, s.Name, string(s.Type), s.Rating, s.Distance, s.ID)
	if err != nil {
		return nil, err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, s.ID)
}

func (r *services) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id=$1`, id)
	return err
}

// --- Tasks ---

type tasks struct{ db *sql.DB }

func (r *tasks) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	out := *t
	out.ID = newID(t.ID)
	out.Completed = false
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO tasks (id, title, completed, due_date, flatmate_id) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Title, out.Completed, out.DueDate, out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanTask(row scanner) (*model.Task, error) {
	var t model.Task
	var due sql.NullTime
	if err := row.Scan(&t.ID, &t.Title, &t.Completed, &due, &t.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return &t, nil
}

func (r *tasks) Get(ctx context.Context, id string) (*model.Task, error) {
	return scanTask(r.db.QueryRowContext(ctx, `
        SELECT id, title, completed, due_date, flatmate_id FROM tasks WHERE id=$1
    `, id))
}

func (r *tasks) List(ctx context.Context) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, completed, due_date, flatmate_id FROM tasks ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tasks) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE tasks SET title=$1, completed=$2, due_date=$3, flatmate_id=$4 WHERE id=$5
    `, t.Title, t.Completed, t.DueDate, t.FlatmateID, t.ID)
	if err != nil {
		return nil, err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, t.ID)
}

func (r *tasks) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	return err
}

func (r *tasks) ToggleCompleted(ctx context.Context, id string) (*model.Task, error) {
	return scanTask(r.db.QueryRowContext(ctx, `
        UPDATE tasks SET completed = NOT completed WHERE id=$1
        RETURNING id, title, completed, due_date, flatmate_id
    `, id))
}

// --- Classes ---

type classes struct{ db *sql.DB }

func (r *classes) Create(ctx context.Context, c *model.ClassSlot) (*model.ClassSlot, error) {
	out := *c
	out.ID = newID(c.ID)
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO classes (id, name, slot_time, day, flatmate_id) VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.Name, out.Time, string(out.Day), out.FlatmateID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanClass(row scanner) (*model.ClassSlot, error) {
	var c model.ClassSlot
	if err := row.Scan(&c.ID, &c.Name, &c.Time, &c.Day, &c.FlatmateID); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *classes) Get(ctx context.Context, id string) (*model.ClassSlot, error) {
	return scanClass(r.db.QueryRowContext(ctx, `
        SELECT id, name, slot_time, day, flatmate_id FROM classes WHERE id=$1
    `, id))
}

func (r *classes) List(ctx context.Context) ([]*model.ClassSlot, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, slot_time, day, flatmate_id FROM classes ORDER BY seq
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.ClassSlot
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *classes) Update(ctx context.Context, c *model.ClassSlot) (*model.ClassSlot, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE classes SET name=$1, slot_time=$2, day=$3, flatmate_id=$4 WHERE id=$5
    `, c.Name, c.Time, string(c.Day), c.FlatmateID, c.ID)
	if err != nil {
		return nil, err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

func (r *classes) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id=$1`, id)
	return err
}
