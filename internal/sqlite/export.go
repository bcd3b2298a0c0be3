package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/duckbook/internal/book"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// Stats counts the rows written by Export.
type Stats struct {
	Contacts int `json:"contacts"`
	Phones   int `json:"phones"`
	Notes    int `json:"notes"`
	Tags     int `json:"tags"`
}

// sqliteHeader opens every SQLite 3 database file.
const sqliteHeader = "SQLite format 3\x00"

// Export writes contacts and notes into a fresh SQLite database at path.
// An existing SQLite database or empty file at path is replaced; any other
// file is left alone and the export fails with ErrInvalidArgument. All
// rows go in one transaction.
func Export(ctx context.Context, path string, contacts *book.AddressBook, notes *book.NotesBook) (Stats, error) {
	if path == "" {
		return Stats{}, fmt.Errorf("%w: export path must not be empty", types.ErrInvalidArgument)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Stats{}, fmt.Errorf("creating export directory: %w", err)
	}
	if err := checkReplaceable(path); err != nil {
		return Stats{}, err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Stats{}, fmt.Errorf("removing old export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	for _, ddl := range slices.Concat(schemaDDL, indexDDL) {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return Stats{}, fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var stats Stats
	if err := insertContacts(ctx, tx, contacts, &stats); err != nil {
		return Stats{}, err
	}
	if err := insertNotes(ctx, tx, notes, &stats); err != nil {
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit transaction: %w", err)
	}
	return stats, nil
}

func insertContacts(ctx context.Context, tx *sql.Tx, contacts *book.AddressBook, stats *Stats) error {
	for pos, r := range contacts.All() {
		contactID, err := newID()
		if err != nil {
			return err
		}
		s := r.Snapshot()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO contacts (contact_id, name, email, birthday, address, position) VALUES (?, ?, ?, ?, ?, ?)`,
			contactID, r.Name().Value(), nullable(s.Email), nullable(s.Birthday), nullable(s.Address), pos,
		)
		if err != nil {
			return fmt.Errorf("insert contact %s: %w", r.Name(), err)
		}
		stats.Contacts++

		for i, phone := range s.Phones {
			phoneID, err := newID()
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO phones (phone_id, contact_id, phone, ordinal) VALUES (?, ?, ?, ?)`,
				phoneID, contactID, phone, i,
			)
			if err != nil {
				return fmt.Errorf("insert phone %s: %w", phone, err)
			}
			stats.Phones++
		}
	}
	return nil
}

func insertNotes(ctx context.Context, tx *sql.Tx, notes *book.NotesBook, stats *Stats) error {
	for _, n := range notes.All() {
		num, err := types.ParseNoteID(n.ID())
		if err != nil {
			return err
		}
		s := n.Snapshot()
		if _, err := tx.ExecContext(ctx, `INSERT INTO notes (note_id, body) VALUES (?, ?)`, num, s.Note); err != nil {
			return fmt.Errorf("insert note %s: %w", n.ID(), err)
		}
		stats.Notes++

		for i, tag := range s.Tags {
			tagID, err := newID()
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO note_tags (tag_id, note_id, tag, ordinal) VALUES (?, ?, ?, ?)`,
				tagID, num, tag, i,
			)
			if err != nil {
				return fmt.Errorf("insert tag %s: %w", tag, err)
			}
			stats.Tags++
		}
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// newID returns a time-ordered UUID v7 row id.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating row id: %w", err)
	}
	return id.String(), nil
}

// checkReplaceable fails unless path is missing, empty, or already a
// SQLite database.
func checkReplaceable(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", types.ErrInvalidArgument, path)
	}
	if info.Size() == 0 {
		return nil
	}
	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err != nil || string(header) != sqliteHeader {
		return fmt.Errorf("%w: refusing to overwrite %s, it is not a SQLite database", types.ErrInvalidArgument, path)
	}
	return nil
}
