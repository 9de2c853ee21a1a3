package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/maze-chase/internal/persist"
)

// ErrNoSlot is returned when a named save slot does not exist.
var ErrNoSlot = errors.New("storage: no such save slot")

// SlotInfo describes a stored save slot.
type SlotInfo struct {
	Name      string
	Size      int
	UpdatedAt time.Time
}

// Slot is a named BLOB addressed like a small non-volatile memory.
// A slot that was never written reads as empty.
type Slot struct {
	store *Store
	name  string
}

var _ persist.Medium = (*Slot)(nil)

// Slot returns the save slot with the given name. Nothing is created until
// the first write.
func (s *Store) Slot(name string) *Slot {
	return &Slot{store: s, name: name}
}

// Name returns the slot name.
func (sl *Slot) Name() string { return sl.name }

// ReadAt implements io.ReaderAt.
func (sl *Slot) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("storage: slot %q: negative offset %d", sl.name, off)
	}
	data, err := sl.store.slotData(sl.store.db, sl.name)
	if err != nil {
		return 0, err
	}
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. The slot grows as needed.
func (sl *Slot) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("storage: slot %q: negative offset %d", sl.name, off)
	}
	tx, err := sl.store.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: slot %q: begin: %w", sl.name, err)
	}
	defer tx.Rollback()

	data, err := sl.store.slotData(tx, sl.name)
	if err != nil {
		return 0, err
	}
	if end := off + int64(len(p)); end > int64(len(data)) {
		grown := make([]byte, end)
		copy(grown, data)
		data = grown
	}
	copy(data[off:], p)

	_, err = tx.Exec(
		`INSERT INTO save_slots (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		sl.name, data,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: slot %q: write: %w", sl.name, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: slot %q: commit: %w", sl.name, err)
	}
	return len(p), nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// slotData returns the slot contents, or nil when the slot does not exist.
func (s *Store) slotData(q querier, name string) ([]byte, error) {
	var data []byte
	err := q.QueryRow("SELECT data FROM save_slots WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: slot %q: read: %w", name, err)
	}
	return data, nil
}

// SlotBytes returns a copy of the named slot's contents.
func (s *Store) SlotBytes(name string) ([]byte, error) {
	data, err := s.slotData(s.db, name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSlot, name)
	}
	return data, nil
}

// ListSlots returns every stored slot ordered by name.
func (s *Store) ListSlots() ([]SlotInfo, error) {
	rows, err := s.db.Query(
		`SELECT name, LENGTH(data), updated_at FROM save_slots ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list slots: %w", err)
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var updatedAt any
		if err := rows.Scan(&info.Name, &info.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan slot: %w", err)
		}
		info.UpdatedAt = parseTimestamp(updatedAt)
		slots = append(slots, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSlot removes the named slot.
func (s *Store) DeleteSlot(name string) error {
	res, err := s.db.Exec("DELETE FROM save_slots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNoSlot, name)
	}
	return nil
}
