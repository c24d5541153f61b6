package sqlite

import "database/sql"

// EnsureSchema creates the collection tables if they do not exist. Poll
// options are stored as a JSON array in a TEXT column; list order follows
// rowid, i.e. insertion order.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS flatmates (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            avatar_url TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL DEFAULT '',
            creation_time TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS expenses (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            amount REAL NOT NULL CHECK (amount >= 0),
            category TEXT NOT NULL,
            date TIMESTAMP NOT NULL,
            paid_by TEXT NOT NULL DEFAULT '',
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS groceries (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            quantity INTEGER NOT NULL DEFAULT 1,
            purchased BOOLEAN NOT NULL DEFAULT 0,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS chores (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            assigned_to TEXT NOT NULL DEFAULT 'Unassigned',
            completed BOOLEAN NOT NULL DEFAULT 0,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS events (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            date TIMESTAMP NOT NULL,
            type TEXT NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS polls (
            id TEXT PRIMARY KEY,
            question TEXT NOT NULL,
            options TEXT NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS notes (
            id TEXT PRIMARY KEY,
            content TEXT NOT NULL,
            color TEXT NOT NULL DEFAULT '',
            author TEXT NOT NULL DEFAULT '',
            author_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS moods (
            id TEXT PRIMARY KEY,
            date TIMESTAMP NOT NULL,
            mood TEXT NOT NULL,
            sleep_hours REAL NOT NULL,
            productivity TEXT NOT NULL,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS services (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            type TEXT NOT NULL,
            rating REAL NOT NULL DEFAULT 0,
            distance TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            completed BOOLEAN NOT NULL DEFAULT 0,
            due_date TIMESTAMP,
            flatmate_id TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS classes (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            time TEXT NOT NULL,
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
