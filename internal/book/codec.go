package book

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// Serialize returns the persisted form of every contact keyed by name, in
// insertion order.
func (b *AddressBook) Serialize() Document[types.ContactSnapshot] {
	out := make(Document[types.ContactSnapshot], 0, len(b.order))
	for _, name := range b.order {
		out = append(out, Member[types.ContactSnapshot]{Key: name, Value: b.records[name].Snapshot()})
	}
	return out
}

// Deserialize loads contacts from a JSON object keyed by name. Each entry
// goes through the validating constructors; the first failure aborts the
// load and leaves the book unchanged. Contacts are added in document order.
func (b *AddressBook) Deserialize(data []byte) error {
	entries, err := decodeObject(data)
	if err != nil {
		return err
	}

	staged := make([]*types.Record, 0, len(entries))
	for _, e := range entries {
		var s types.ContactSnapshot
		if err := json.Unmarshal(e.Value, &s); err != nil {
			return fmt.Errorf("%w: contact %s: %v", types.ErrInvalidData, e.Key, err)
		}
		r, err := types.RecordFromSnapshot(e.Key, s)
		if err != nil {
			return fmt.Errorf("loading contact %s: %w", e.Key, err)
		}
		if _, ok := b.records[e.Key]; ok {
			return fmt.Errorf("%w: contact %s", types.ErrDuplicateKey, e.Key)
		}
		staged = append(staged, r)
	}

	for _, r := range staged {
		if err := b.Create(r); err != nil {
			return err
		}
	}
	return nil
}

// Serialize returns the persisted form of every note keyed by id, in
// insertion order.
func (b *NotesBook) Serialize() Document[types.NoteSnapshot] {
	out := make(Document[types.NoteSnapshot], 0, len(b.order))
	for _, id := range b.order {
		out = append(out, Member[types.NoteSnapshot]{Key: id, Value: b.notes[id].Snapshot()})
	}
	return out
}

// Deserialize loads notes from a JSON object keyed by id. Notes are added
// in document order and advance the id counter. The first failure aborts
// the load and leaves the book unchanged.
func (b *NotesBook) Deserialize(data []byte) error {
	entries, err := decodeObject(data)
	if err != nil {
		return err
	}

	staged := make([]*types.Note, 0, len(entries))
	for _, e := range entries {
		if _, err := types.ParseNoteID(e.Key); err != nil {
			return fmt.Errorf("loading note %s: %w", e.Key, err)
		}
		var s types.NoteSnapshot
		if err := json.Unmarshal(e.Value, &s); err != nil {
			return fmt.Errorf("%w: note %s: %v", types.ErrInvalidData, e.Key, err)
		}
		n, err := types.RestoreNoteSnapshot(e.Key, s)
		if err != nil {
			return fmt.Errorf("loading note %s: %w", e.Key, err)
		}
		if _, ok := b.notes[e.Key]; ok {
			return fmt.Errorf("%w: note %s", types.ErrDuplicateKey, e.Key)
		}
		staged = append(staged, n)
	}

	for _, n := range staged {
		if _, err := b.Add(n); err != nil {
			return err
		}
	}
	return nil
}
