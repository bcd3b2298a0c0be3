// Package store persists the address book and the notes book as one JSON
// document each inside a data directory. The documents are the source of
// truth: Open loads both, Save and Close write both back atomically.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/duckbook/internal/book"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// Data file names inside the data directory.
const (
	AddressBookFile = "address_book.json"
	NotesBookFile   = "notes_book.json"
)

// Store owns the two collections loaded from a data directory. It is not
// safe for concurrent use.
type Store struct {
	cfg      types.Config
	log      *zap.Logger
	contacts *book.AddressBook
	notes    *book.NotesBook
	closed   bool
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	bookOpts []book.Option
}

// WithBookOptions passes options through to the address book.
func WithBookOptions(opts ...book.Option) Option {
	return func(o *openOptions) { o.bookOpts = append(o.bookOpts, opts...) }
}

// Open validates cfg, creates the data directory if needed, and loads both
// documents. A missing document is created as an empty object. A document
// that fails to load aborts Open.
func Open(cfg types.Config, log *zap.Logger, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{
		cfg:      cfg,
		log:      log,
		contacts: book.NewAddressBook(o.bookOpts...),
		notes:    book.NewNotesBook(),
	}
	if err := s.load(AddressBookFile, s.contacts.Deserialize); err != nil {
		return nil, err
	}
	if err := s.load(NotesBookFile, s.notes.Deserialize); err != nil {
		return nil, err
	}
	log.Debug("store opened",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("contacts", s.contacts.Len()),
		zap.Int("notes", s.notes.Len()),
	)
	return s, nil
}

func (s *Store) load(name string, deserialize func([]byte) error) error {
	path := filepath.Join(s.cfg.DataDir, name)
	data, created, err := readOrCreate(path)
	if err != nil {
		return err
	}
	if created {
		s.log.Info("created data file", zap.String("path", path))
	}
	if err := deserialize(data); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Contacts returns the address book.
func (s *Store) Contacts() *book.AddressBook { return s.contacts }

// Notes returns the notes book.
func (s *Store) Notes() *book.NotesBook { return s.notes }

// Config returns the configuration the store was opened with.
func (s *Store) Config() types.Config { return s.cfg }

// PageSize returns the configured page size, or the default when unset.
func (s *Store) PageSize() int {
	if s.cfg.PageSize > 0 {
		return s.cfg.PageSize
	}
	return book.DefaultPageSize
}

// Save writes both documents. It fails with ErrStoreClosed after Close.
func (s *Store) Save() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if err := s.save(AddressBookFile, s.contacts.Serialize()); err != nil {
		return err
	}
	return s.save(NotesBookFile, s.notes.Serialize())
}

func (s *Store) save(name string, doc any) error {
	path := filepath.Join(s.cfg.DataDir, name)
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	s.log.Debug("saved data file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// Close saves both documents and marks the store closed. Closing a closed
// store is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	if err := s.Save(); err != nil {
		return err
	}
	s.closed = true
	return nil
}
