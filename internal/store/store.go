// Package store owns the in-memory deck and its durable snapshot. All deck
// mutations go through the Store so that each append is applied to the
// latest deck value, which is what keeps concurrently-completing ingestion
// operations from losing entries.
package store

import (
	"database/sql"
	"sync"

	"cardbox/internal/db"
	"cardbox/internal/deck"
	"cardbox/internal/errors"
)

// Confirmer answers a yes/no question before a destructive operation.
type Confirmer interface {
	Confirm(message string) bool
}

// Notifier receives non-fatal failure reports (e.g. a snapshot write that
// could not complete).
type Notifier interface {
	Notify(message string)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(message string) bool

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(message string) bool { return f(message) }

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// NopNotifier discards all notifications.
var NopNotifier = NotifierFunc(func(string) {})

// Store holds the deck and writes it through to the SQLite snapshot on
// every mutation. The deck is append-only during ingestion; the only other
// mutations are Clear and the snapshot load at construction.
type Store struct {
	mu       sync.Mutex
	database *sql.DB
	notifier Notifier
	entries  []deck.Entry
}

// Open creates a Store backed by the given database and rehydrates the deck
// from the snapshot. Absent, empty, or unreadable snapshots all start an
// empty deck; no error is surfaced (fail-open).
func Open(database *sql.DB, notifier Notifier) *Store {
	if notifier == nil {
		notifier = NopNotifier
	}

	s := &Store{
		database: database,
		notifier: notifier,
	}

	entries, err := db.LoadEntries(database)
	if err == nil {
		s.entries = entries
	}

	return s
}

// Append adds entries to the end of the deck and writes the snapshot.
// The append is computed against the deck value at call time, under the
// store lock, so interleaved appends from concurrently-completing sources
// are serialized and none is lost. A snapshot write failure is reported to
// the notifier; the in-memory deck is not rolled back.
func (s *Store) Append(entries ...deck.Entry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entries...)
	s.writeSnapshotLocked()
}

// Clear asks the confirmer before replacing the deck with the empty
// sequence and emptying the snapshot. Returns true if the deck was cleared,
// false if the confirmer refused.
func (s *Store) Clear(confirmer Confirmer) bool {
	if confirmer == nil || !confirmer.Confirm("Delete all cards?") {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.writeSnapshotLocked()
	return true
}

// Entries returns a copy of the current deck in order.
func (s *Store) Entries() []deck.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]deck.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries in the deck.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// writeSnapshotLocked projects the current deck into the snapshot.
// Callers must hold s.mu.
func (s *Store) writeSnapshotLocked() {
	if err := db.ReplaceEntries(s.database, s.entries); err != nil {
		s.notifier.Notify(errors.NewSnapshotFailed(err).Error())
	}
}
