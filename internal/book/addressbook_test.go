package book

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/duckbook/pkg/types"
)

func fixedClock(y int, m time.Month, d int) Option {
	return WithClock(func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) })
}

func mustRecord(t *testing.T, name string, phones []string, opts ...types.RecordOption) *types.Record {
	t.Helper()
	r, err := types.NewRecord(name, phones, opts...)
	require.NoError(t, err)
	return r
}

func names(records []*types.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name().Value())
	}
	return out
}

func TestAddressBookCreateRead(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567"})))

	r, err := b.Read("Alice Smith")
	require.NoError(t, err)
	require.Len(t, r.Phones(), 1)
	assert.Equal(t, "+380671234567", r.Phones()[0].Value())

	err = b.Create(mustRecord(t, "Alice Smith", []string{"0501112233"}))
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
	assert.Equal(t, 1, b.Len())

	_, err = b.Read("Bob Stone")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddressBookDelete(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", nil)))
	require.NoError(t, b.Create(mustRecord(t, "Bob Stone", nil)))

	require.NoError(t, b.Delete("Alice Smith"))
	assert.ErrorIs(t, b.Delete("Alice Smith"), types.ErrNotFound)
	assert.Equal(t, []string{"Bob Stone"}, names(b.All()))
}

func TestAddressBookUpdateRename(t *testing.T) {
	b := NewAddressBook()
	for _, n := range []string{"Alice Smith", "Bob Stone", "Carol King"} {
		require.NoError(t, b.Create(mustRecord(t, n, []string{"0671234567"})))
	}

	rename, err := types.NewChangeName("Alicia Smith")
	require.NoError(t, err)
	change, err := b.Update("Alice Smith", rename)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", change.Old)
	assert.Equal(t, "Alicia Smith", change.New)

	_, err = b.Read("Alice Smith")
	assert.ErrorIs(t, err, types.ErrNotFound)
	r, err := b.Read("Alicia Smith")
	require.NoError(t, err)
	assert.Equal(t, "Alicia Smith", r.Name().Value())
	assert.Equal(t, []string{"Bob Stone", "Carol King", "Alicia Smith"}, names(b.All()))
	assert.Equal(t, 3, b.Len())
}

func TestAddressBookUpdateRenameCollision(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", nil)))
	require.NoError(t, b.Create(mustRecord(t, "Bob Stone", nil)))

	rename, err := types.NewChangeName("Bob Stone")
	require.NoError(t, err)
	_, err = b.Update("Alice Smith", rename)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)

	r, err := b.Read("Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", r.Name().Value(), "failed rename leaves the record untouched")
	assert.Equal(t, []string{"Alice Smith", "Bob Stone"}, names(b.All()))
}

func TestAddressBookUpdateRenameToSameName(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", nil)))
	require.NoError(t, b.Create(mustRecord(t, "Bob Stone", nil)))

	rename, err := types.NewChangeName("Alice Smith")
	require.NoError(t, err)
	_, err = b.Update("Alice Smith", rename)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith", "Bob Stone"}, names(b.All()))
}

func TestAddressBookUpdateRenameByPointer(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567"})))
	require.NoError(t, b.Create(mustRecord(t, "Carol King", nil)))

	rename, err := types.NewChangeName("Bob Stone")
	require.NoError(t, err)
	_, err = b.Update("Alice Smith", &rename)
	require.NoError(t, err)

	_, err = b.Read("Alice Smith")
	assert.ErrorIs(t, err, types.ErrNotFound)
	r, err := b.Read("Bob Stone")
	require.NoError(t, err)
	assert.Equal(t, "Bob Stone", r.Name().Value())
	assert.Equal(t, []string{"Carol King", "Bob Stone"}, names(b.All()))

	taken, err := types.NewChangeName("Carol King")
	require.NoError(t, err)
	_, err = b.Update("Bob Stone", &taken)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
}

func TestAddressBookUpdateZeroValueUpdaters(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567"})))

	for _, u := range []types.Updater{types.AddPhone{}, types.ChangeName{}, &types.ChangeName{}, types.AddChangeEmail{}} {
		_, err := b.Update("Alice Smith", u)
		assert.ErrorIs(t, err, types.ErrValidation, "%T", u)
	}

	r, err := b.Read("Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, types.ContactSnapshot{Phones: []string{"+380671234567"}}, r.Snapshot())
	assert.Equal(t, []string{"Alice Smith"}, names(b.All()))

	data, err := json.Marshal(b.Serialize())
	require.NoError(t, err)
	require.NoError(t, NewAddressBook().Deserialize(data), "saved document still loads")
}

func TestAddressBookAddThenRemovePhoneRestores(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567", "0501112233", "0939998877"})))
	before, err := b.Read("Alice Smith")
	require.NoError(t, err)
	want := before.Snapshot().Phones

	for _, p := range []string{"0661110000", "+380 (63) 222-33-44"} {
		add, err := types.NewAddPhone(p)
		require.NoError(t, err)
		remove, err := types.NewRemovePhone(p)
		require.NoError(t, err)

		_, err = b.Update("Alice Smith", add)
		require.NoError(t, err)
		_, err = b.Update("Alice Smith", remove)
		require.NoError(t, err)

		r, err := b.Read("Alice Smith")
		require.NoError(t, err)
		assert.Equal(t, want, r.Snapshot().Phones)
	}
}

func TestAddressBookFailedUpdateLeavesContact(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567", "0501112233"})))

	change, err := types.NewChangePhone("0671234567", "0501112233")
	require.NoError(t, err)
	_, err = b.Update("Alice Smith", change)
	assert.ErrorIs(t, err, types.ErrDuplicate)

	r, err := b.Read("Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, []string{"+380671234567", "+380501112233"}, r.Snapshot().Phones)
}

func TestAddressBookUpdateErrors(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567"})))

	add, err := types.NewAddPhone("0671234567")
	require.NoError(t, err)
	_, err = b.Update("Alice Smith", add)
	assert.ErrorIs(t, err, types.ErrDuplicate)

	_, err = b.Update("Bob Stone", add)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddressBookPaginate(t *testing.T) {
	b := NewAddressBook()
	all := []string{"Anna Li", "Boris Po", "Clara Oz", "Denis Ur", "Elena Ya", "Fedir Ko", "Galyna Yu"}
	for _, n := range all {
		require.NoError(t, b.Create(mustRecord(t, n, nil)))
	}

	tests := []struct {
		size     int
		wantLens []int
	}{
		{size: 1, wantLens: []int{1, 1, 1, 1, 1, 1, 1}},
		{size: 3, wantLens: []int{3, 3, 1}},
		{size: 7, wantLens: []int{7}},
		{size: 100, wantLens: []int{7}},
	}
	for _, tt := range tests {
		pages, err := b.Paginate(tt.size)
		require.NoError(t, err)

		var lens []int
		var flat []string
		for page := range pages {
			lens = append(lens, len(page))
			flat = append(flat, names(page)...)
		}
		assert.Equal(t, tt.wantLens, lens, "page size %d", tt.size)
		assert.Equal(t, all, flat, "page size %d preserves order", tt.size)
	}

	for _, bad := range []int{0, -2} {
		_, err := b.Paginate(bad)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	}
}

func TestAddressBookPaginateEmpty(t *testing.T) {
	pages, err := NewAddressBook().Paginate(5)
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(pages))
}

func TestAddressBookPaginateEarlyStop(t *testing.T) {
	b := NewAddressBook()
	for _, n := range []string{"Anna Li", "Boris Po", "Clara Oz"} {
		require.NoError(t, b.Create(mustRecord(t, n, nil)))
	}
	pages, err := b.Paginate(1)
	require.NoError(t, err)

	seen := 0
	for range pages {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestAddressBookSearch(t *testing.T) {
	b := NewAddressBook()
	require.NoError(t, b.Create(mustRecord(t, "Alice Smith", []string{"0671234567"}, types.WithEmail("alice@mail.com"))))
	require.NoError(t, b.Create(mustRecord(t, "Bob Stone", []string{"0501112233"}, types.WithAddress("Kyiv, Main st 1"))))

	assert.Equal(t, []string{"Alice Smith"}, names(b.Search("ALICE")))
	assert.Equal(t, []string{"Bob Stone"}, names(b.Search("kyiv")))
	assert.Equal(t, []string{"Alice Smith", "Bob Stone"}, names(b.Search("+380")))
	assert.Empty(t, b.Search("nobody"))
}

func TestAddressBookFindByAnniversaryWindow(t *testing.T) {
	b := NewAddressBook(fixedClock(2026, time.October, 14))
	require.NoError(t, b.Create(mustRecord(t, "Today Born", nil, types.WithBirthday("1990-10-14"))))
	require.NoError(t, b.Create(mustRecord(t, "Soon Born", nil, types.WithBirthday("1995-10-18"))))
	require.NoError(t, b.Create(mustRecord(t, "No Birthday", nil)))
	require.NoError(t, b.Create(mustRecord(t, "Past Born", nil, types.WithBirthday("1980-10-01"))))

	assert.Equal(t, []string{"Today Born"}, names(b.FindByAnniversaryWindow(0)))
	assert.Equal(t, []string{"Today Born", "Soon Born"}, names(b.FindByAnniversaryWindow(4)))
	assert.Empty(t, b.FindByAnniversaryWindow(-1))
}

func TestAddressBookDaysToAnniversary(t *testing.T) {
	b := NewAddressBook(fixedClock(2026, time.October, 14))
	require.NoError(t, b.Create(mustRecord(t, "Soon Born", nil, types.WithBirthday("1995-10-18"))))
	require.NoError(t, b.Create(mustRecord(t, "No Birthday", nil)))

	days, err := b.DaysToAnniversary("Soon Born")
	require.NoError(t, err)
	assert.Equal(t, 4, days)

	_, err = b.DaysToAnniversary("No Birthday")
	assert.ErrorIs(t, err, types.ErrMissingField)

	_, err = b.DaysToAnniversary("Ghost")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
