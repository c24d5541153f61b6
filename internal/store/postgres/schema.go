package postgres

import "database/sql"

// EnsureSchema creates the collection tables if they do not exist. The seq
// BIGSERIAL column fixes list order at insertion order.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS flatmates (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            avatar_url TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL DEFAULT '',
            creation_time TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS expenses (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
            category TEXT NOT NULL,
            date TIMESTAMPTZ NOT NULL,
            paid_by TEXT NOT NULL DEFAULT '',
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS groceries (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            quantity INTEGER NOT NULL DEFAULT 1,
            purchased BOOLEAN NOT NULL DEFAULT FALSE,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS chores (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            assigned_to TEXT NOT NULL DEFAULT 'Unassigned',
            completed BOOLEAN NOT NULL DEFAULT FALSE,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS events (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            date TIMESTAMPTZ NOT NULL,
            type TEXT NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS polls (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            question TEXT NOT NULL,
            options JSONB NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS notes (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            content TEXT NOT NULL,
            color TEXT NOT NULL DEFAULT '',
            author TEXT NOT NULL DEFAULT '',
            author_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS moods (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            date TIMESTAMPTZ NOT NULL,
            mood TEXT NOT NULL,
            sleep_hours DOUBLE PRECISION NOT NULL,
            productivity TEXT NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS services (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            type TEXT NOT NULL,
            rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            distance TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            completed BOOLEAN NOT NULL DEFAULT FALSE,
            due_date TIMESTAMPTZ,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS classes (
            seq BIGSERIAL,
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            slot_time TEXT NOT NULL,
            day TEXT NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
