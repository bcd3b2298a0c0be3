package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

func mustNote(t *testing.T, body string, tags ...string) *types.Note {
	t.Helper()
	n, err := types.NewNote(body, tags)
	require.NoError(t, err)
	return n
}

func ids(notes []*types.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID())
	}
	return out
}

func TestNotesBookScenario(t *testing.T) {
	b := NewNotesBook()
	n, err := b.Add(mustNote(t, "Buy milk", "#chore"))
	require.NoError(t, err)
	assert.Equal(t, "1", n.ID())

	found, err := b.FindByTag("#chore")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, n, found[0])

	require.NoError(t, b.Delete(n.ID()))
	_, err = b.Get(n.ID())
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, b.Delete(n.ID()), types.ErrNotFound)
}

func TestNotesBookAssignsIDs(t *testing.T) {
	b := NewNotesBook()
	first, err := b.Add(mustNote(t, "one", "#a1"))
	require.NoError(t, err)
	second, err := b.Add(mustNote(t, "two", "#a1"))
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID())
	assert.Equal(t, "2", second.ID())

	require.NoError(t, b.Delete("2"))
	third, err := b.Add(mustNote(t, "three", "#a1"))
	require.NoError(t, err)
	assert.Equal(t, "3", third.ID(), "deleted ids are not reused")
}

func TestNotesBookRestoredIDsAdvanceCounter(t *testing.T) {
	b := NewNotesBook()
	restored, err := types.RestoreNote("10", "old note", []string{"#old"})
	require.NoError(t, err)
	_, err = b.Add(restored)
	require.NoError(t, err)
	assert.Equal(t, 10, b.LastID())

	fresh, err := b.Add(mustNote(t, "new note", "#new"))
	require.NoError(t, err)
	assert.Equal(t, "11", fresh.ID())

	lower, err := types.RestoreNote("4", "older note", []string{"#old"})
	require.NoError(t, err)
	_, err = b.Add(lower)
	require.NoError(t, err)
	assert.Equal(t, 11, b.LastID(), "a lower id never rewinds the counter")

	dup, err := types.RestoreNote("10", "clash", []string{"#old"})
	require.NoError(t, err)
	_, err = b.Add(dup)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
	assert.Equal(t, 3, b.Len())
}

func TestNotesBookFindByTag(t *testing.T) {
	b := NewNotesBook()
	for _, n := range []*types.Note{
		mustNote(t, "Buy milk", "#chore", "#home"),
		mustNote(t, "Call mom", "#family"),
		mustNote(t, "Fix sink", "#home"),
	} {
		_, err := b.Add(n)
		require.NoError(t, err)
	}

	found, err := b.FindByTag("#home")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(found))

	found, err = b.FindByTag("#work")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = b.FindByTag("home")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestNotesBookEdits(t *testing.T) {
	b := NewNotesBook()
	_, err := b.Add(mustNote(t, "Buy milk", "#chore"))
	require.NoError(t, err)

	require.NoError(t, b.AddTag("1", "#urgent"))
	assert.ErrorIs(t, b.AddTag("1", "#urgent"), types.ErrDuplicate)
	require.NoError(t, b.RemoveTag("1", "#chore"))
	assert.ErrorIs(t, b.RemoveTag("1", "#chore"), types.ErrNotFound)
	require.NoError(t, b.SetBody("1", "Buy oat milk"))

	n, err := b.Get("1")
	require.NoError(t, err)
	assert.Equal(t, types.NoteSnapshot{Tags: []string{"#urgent"}, Note: "Buy oat milk"}, n.Snapshot())

	assert.ErrorIs(t, b.AddTag("9", "#x1"), types.ErrNotFound)
	assert.ErrorIs(t, b.SetBody("9", "x"), types.ErrNotFound)
}

func TestNotesBookPaginate(t *testing.T) {
	b := NewNotesBook()
	for range 5 {
		_, err := b.Add(mustNote(t, "body", "#t1"))
		require.NoError(t, err)
	}
	pages, err := b.Paginate(2)
	require.NoError(t, err)

	var got [][]string
	for page := range pages {
		got = append(got, ids(page))
	}
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}, {"5"}}, got)

	_, err = b.Paginate(0)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
