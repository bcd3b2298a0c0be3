package book

import (
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// NotesBook maps note ids to notes, preserving insertion order. It owns the
// id counter: nextID is the highest numeric id the book has seen.
type NotesBook struct {
	order  []string
	notes  map[string]*types.Note
	nextID int
}

// NewNotesBook returns an empty notes book.
func NewNotesBook() *NotesBook {
	return &NotesBook{notes: make(map[string]*types.Note)}
}

// Len returns the number of notes.
func (b *NotesBook) Len() int { return len(b.order) }

// LastID returns the highest note id assigned or restored so far.
func (b *NotesBook) LastID() int { return b.nextID }

// Add stores n and returns the stored note. A note without an id is
// assigned the next free id. A note with an id keeps it and fails with
// ErrDuplicateKey if the id is taken; the counter advances past it so
// later assigned ids never collide.
func (b *NotesBook) Add(n *types.Note) (*types.Note, error) {
	id := n.ID()
	var num int
	if id == "" {
		num = b.nextID + 1
		stored, err := n.WithID(strconv.Itoa(num))
		if err != nil {
			return nil, err
		}
		n, id = stored, stored.ID()
	} else {
		var err error
		if num, err = types.ParseNoteID(id); err != nil {
			return nil, err
		}
		if _, ok := b.notes[id]; ok {
			return nil, fmt.Errorf("%w: note %s", types.ErrDuplicateKey, id)
		}
	}
	b.notes[id] = n
	b.order = append(b.order, id)
	b.nextID = max(b.nextID, num)
	return n, nil
}

// Get returns the note stored under id.
func (b *NotesBook) Get(id string) (*types.Note, error) {
	n, ok := b.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, types.ErrNotFound)
	}
	return n, nil
}

// Delete removes the note stored under id. The counter is not rewound.
func (b *NotesBook) Delete(id string) error {
	if _, ok := b.notes[id]; !ok {
		return fmt.Errorf("note %s: %w", id, types.ErrNotFound)
	}
	delete(b.notes, id)
	if i := slices.Index(b.order, id); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
	return nil
}

// FindByTag returns the notes carrying tag. The query is validated as a
// note tag first.
func (b *NotesBook) FindByTag(tag string) ([]*types.Note, error) {
	t, err := types.NewNoteTag(tag)
	if err != nil {
		return nil, err
	}
	var found []*types.Note
	for _, n := range b.All() {
		if n.HasTag(t) {
			found = append(found, n)
		}
	}
	return found, nil
}

// AddTag adds tag to the note stored under id.
func (b *NotesBook) AddTag(id, tag string) error {
	n, err := b.Get(id)
	if err != nil {
		return err
	}
	return n.AddTag(tag)
}

// RemoveTag removes tag from the note stored under id.
func (b *NotesBook) RemoveTag(id, tag string) error {
	n, err := b.Get(id)
	if err != nil {
		return err
	}
	return n.RemoveTag(tag)
}

// SetBody replaces the body of the note stored under id.
func (b *NotesBook) SetBody(id, body string) error {
	n, err := b.Get(id)
	if err != nil {
		return err
	}
	return n.SetBody(body)
}

// All returns every note in insertion order.
func (b *NotesBook) All() []*types.Note {
	out := make([]*types.Note, len(b.order))
	for i, id := range b.order {
		out[i] = b.notes[id]
	}
	return out
}

// Paginate yields the notes in batches of n. It fails with
// ErrInvalidArgument when n <= 0.
func (b *NotesBook) Paginate(n int) (iter.Seq[[]*types.Note], error) {
	return paginate(b.All(), n)
}
