package db

import (
	"database/sql"
	"fmt"

	"cardbox/internal/deck"
)

// ReplaceEntries overwrites the snapshot with the given deck in one
// transaction. An empty slice leaves zero rows, which is the "no snapshot"
// state read back as an empty deck.
func ReplaceEntries(database *sql.DB, entries []deck.Entry) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot write: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (position, id, kind, title, prompt, response)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i, e.ID, string(e.Kind), e.Title, e.Prompt, e.Response); err != nil {
			return fmt.Errorf("failed to write snapshot entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadEntries reads the snapshot back in deck order.
// An absent snapshot yields an empty slice, not an error.
func LoadEntries(database *sql.DB) ([]deck.Entry, error) {
	rows, err := database.Query(`
		SELECT id, kind, title, prompt, response
		FROM entries
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer rows.Close()

	var entries []deck.Entry
	for rows.Next() {
		var e deck.Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Title, &e.Prompt, &e.Response); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot entry: %w", err)
		}
		e.Kind = deck.Kind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return entries, nil
}

// CountEntries returns the number of snapshot rows.
func CountEntries(database *sql.DB) (int, error) {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshot entries: %w", err)
	}
	return count, nil
}
