package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Note is one notes-book entry: an ordered, duplicate-free tag list and a
// single replaceable body. ID is empty until the note is added to a book.
type Note struct {
	id   string
	tags []Field
	body Field
}

// NoteSnapshot is the persisted form of a Note, keyed by id in the
// notes-book document.
type NoteSnapshot struct {
	Note string   `json:"Note"`
	Tags []string `json:"Tags"`
}

// NewNote builds an unsaved note. Tags may be empty here; requiring at
// least one is left to the command layer.
func NewNote(body string, tags []string) (*Note, error) {
	b, err := NewNoteBody(body)
	if err != nil {
		return nil, err
	}
	n := &Note{body: b, tags: make([]Field, 0, len(tags))}
	for _, raw := range tags {
		if err := n.AddTag(raw); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// RestoreNote builds a note with a known id, as read back from storage.
func RestoreNote(id, body string, tags []string) (*Note, error) {
	n, err := NewNote(body, tags)
	if err != nil {
		return nil, err
	}
	return n.WithID(id)
}

// RestoreNoteSnapshot rebuilds a note from its persisted form.
func RestoreNoteSnapshot(id string, s NoteSnapshot) (*Note, error) {
	return RestoreNote(id, s.Note, s.Tags)
}

// ParseNoteID returns the numeric value of a note id. Ids are positive
// decimal integers; anything else fails with ErrValidation.
func ParseNoteID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 || strconv.Itoa(n) != id {
		return 0, fmt.Errorf("%w: note id %q must be a positive integer", ErrValidation, id)
	}
	return n, nil
}

// WithID returns a copy of the note carrying id.
func (n *Note) WithID(id string) (*Note, error) {
	if _, err := ParseNoteID(id); err != nil {
		return nil, err
	}
	cp := &Note{id: id, body: n.body, tags: n.Tags()}
	return cp, nil
}

func (n *Note) ID() string  { return n.id }
func (n *Note) Body() Field { return n.body }

// Tags returns a copy of the tag list in insertion order.
func (n *Note) Tags() []Field {
	out := make([]Field, len(n.tags))
	copy(out, n.tags)
	return out
}

// HasTag reports whether the note carries tag.
func (n *Note) HasTag(tag Field) bool { return n.tagIndex(tag) >= 0 }

func (n *Note) tagIndex(tag Field) int {
	for i, t := range n.tags {
		if t.Equal(tag) {
			return i
		}
	}
	return -1
}

// AddTag appends a tag. Returns ErrDuplicate if the note already has it.
func (n *Note) AddTag(raw string) error {
	tag, err := NewNoteTag(raw)
	if err != nil {
		return err
	}
	if n.HasTag(tag) {
		return fmt.Errorf("%w: tag %s is already on the note", ErrDuplicate, tag)
	}
	n.tags = append(n.tags, tag)
	return nil
}

// RemoveTag deletes a tag. Returns ErrNotFound if the note does not have it.
func (n *Note) RemoveTag(raw string) error {
	tag, err := NewNoteTag(raw)
	if err != nil {
		return err
	}
	i := n.tagIndex(tag)
	if i < 0 {
		return fmt.Errorf("tag %s is not on note %s: %w", tag, n.id, ErrNotFound)
	}
	n.tags = append(n.tags[:i:i], n.tags[i+1:]...)
	return nil
}

// SetBody replaces the note body wholesale.
func (n *Note) SetBody(raw string) error {
	b, err := NewNoteBody(raw)
	if err != nil {
		return err
	}
	n.body = b
	return nil
}

// Snapshot returns the persisted form of the note.
func (n *Note) Snapshot() NoteSnapshot {
	tags := make([]string, len(n.tags))
	for i, t := range n.tags {
		tags[i] = t.Value()
	}
	return NoteSnapshot{Tags: tags, Note: n.body.Value()}
}

func (n *Note) String() string {
	tags := make([]string, len(n.tags))
	for i, t := range n.tags {
		tags[i] = t.Value()
	}
	return fmt.Sprintf("\tID: %s\n\tNote tags: %s\n\t%s\n", n.id, strings.Join(tags, " "), n.body)
}
