package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name    string
		give    func() (*Record, error)
		wantErr error
	}{
		{
			name: "name and phone only",
			give: func() (*Record, error) { return NewRecord("Alice Smith", []string{"0671234567"}) },
		},
		{
			name: "all fields",
			give: func() (*Record, error) {
				return NewRecord("Alice Smith", []string{"0671234567", "0501112233"},
					WithEmail("alice@mail.com"), WithBirthday("1990-05-17"), WithAddress("Kyiv, Main st 1"))
			},
		},
		{
			name:    "short name",
			give:    func() (*Record, error) { return NewRecord("Al", []string{"0671234567"}) },
			wantErr: ErrValidation,
		},
		{
			name:    "invalid phone",
			give:    func() (*Record, error) { return NewRecord("Alice", []string{"123"}) },
			wantErr: ErrValidation,
		},
		{
			name: "duplicate phone after normalization",
			give: func() (*Record, error) {
				return NewRecord("Alice", []string{"0671234567", "+380 67 123 45 67"})
			},
			wantErr: ErrDuplicate,
		},
		{
			name:    "invalid email",
			give:    func() (*Record, error) { return NewRecord("Alice", nil, WithEmail("nope")) },
			wantErr: ErrValidation,
		},
		{
			name:    "invalid address",
			give:    func() (*Record, error) { return NewRecord("Alice", nil, WithAddress("abc")) },
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.give()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}

func TestRecordPhonesIsCopy(t *testing.T) {
	r, err := NewRecord("Alice", []string{"0671234567"})
	require.NoError(t, err)

	phones := r.Phones()
	phones[0] = Field{}
	assert.Equal(t, "+380671234567", r.Phones()[0].Value())
}

func TestRecordSnapshot(t *testing.T) {
	r, err := NewRecord("Alice Smith", []string{"0671234567"}, WithBirthday("1990-05-17"))
	require.NoError(t, err)

	s := r.Snapshot()
	assert.Equal(t, []string{"+380671234567"}, s.Phones)
	assert.Nil(t, s.Email)
	assert.Nil(t, s.Address)
	require.NotNil(t, s.Birthday)
	assert.Equal(t, "1990-05-17", *s.Birthday)

	back, err := RecordFromSnapshot("Alice Smith", s)
	require.NoError(t, err)
	assert.Equal(t, s, back.Snapshot())
}

func TestRecordString(t *testing.T) {
	r, err := NewRecord("Alice Smith", []string{"0671234567", "0501112233"})
	require.NoError(t, err)

	out := r.String()
	assert.Contains(t, out, "name: Alice Smith")
	assert.Contains(t, out, "phones: +380671234567, +380501112233")
	assert.Contains(t, out, "email: Empty")
	assert.Contains(t, out, "birthday: Empty")
	assert.Contains(t, out, "address: Empty")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestRecordSearchText(t *testing.T) {
	r, err := NewRecord("Alice Smith", []string{"0671234567"}, WithEmail("alice@mail.com"))
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith +380671234567 alice@mail.com  ", r.SearchText())
}

func TestRecordDaysToAnniversary(t *testing.T) {
	today := time.Date(2026, time.October, 14, 15, 30, 0, 0, time.Local)

	r, err := NewRecord("Alice", nil, WithBirthday("1990-10-20"))
	require.NoError(t, err)
	days, err := r.DaysToAnniversary(today)
	require.NoError(t, err)
	assert.Equal(t, 6, days)

	noBirthday, err := NewRecord("Bob Stone", nil)
	require.NoError(t, err)
	_, err = noBirthday.DaysToAnniversary(today)
	assert.ErrorIs(t, err, ErrMissingField)
}
