package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/duckbook/internal/calendar"
)

// emptyPlaceholder is rendered for optional fields that are not set.
const emptyPlaceholder = "Empty"

// Record is one address-book contact. Name is the collection key. The
// optional fields are zero Fields when unset. Records have no exported
// mutators; changes go through an Updater.
type Record struct {
	name     Field
	phones   []Field
	email    Field
	birthday Field
	address  Field
}

// ContactSnapshot is the persisted form of a Record, keyed by name in the
// address-book document. Unset optional fields serialize as null.
type ContactSnapshot struct {
	Address  *string  `json:"address"`
	Birthday *string  `json:"birthday"`
	Email    *string  `json:"email"`
	Phones   []string `json:"phones"`
}

// RecordOption sets an optional field during NewRecord.
type RecordOption func(*recordInput)

type recordInput struct {
	email, birthday, address *string
}

// WithEmail sets the contact email.
func WithEmail(raw string) RecordOption {
	return func(in *recordInput) { in.email = &raw }
}

// WithBirthday sets the contact birthday (YYYY-MM-DD).
func WithBirthday(raw string) RecordOption {
	return func(in *recordInput) { in.birthday = &raw }
}

// WithAddress sets the contact address.
func WithAddress(raw string) RecordOption {
	return func(in *recordInput) { in.address = &raw }
}

// NewRecord builds a contact from raw strings. Any invalid field fails the
// whole construction with ErrValidation; two phones that normalize to the
// same number fail with ErrDuplicate.
func NewRecord(name string, phones []string, opts ...RecordOption) (*Record, error) {
	var in recordInput
	for _, opt := range opts {
		opt(&in)
	}

	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	r := &Record{name: n, phones: make([]Field, 0, len(phones))}
	for _, raw := range phones {
		p, err := NewPhone(raw)
		if err != nil {
			return nil, err
		}
		if r.phoneIndex(p) >= 0 {
			return nil, fmt.Errorf("%w: phone %s listed twice for %s", ErrDuplicate, p, n)
		}
		r.phones = append(r.phones, p)
	}
	if r.email, err = optionalField(KindEmail, in.email); err != nil {
		return nil, err
	}
	if r.birthday, err = optionalField(KindBirthday, in.birthday); err != nil {
		return nil, err
	}
	if r.address, err = optionalField(KindAddress, in.address); err != nil {
		return nil, err
	}
	return r, nil
}

// RecordFromSnapshot rebuilds a contact from its persisted form.
func RecordFromSnapshot(name string, s ContactSnapshot) (*Record, error) {
	var opts []RecordOption
	if s.Email != nil {
		opts = append(opts, WithEmail(*s.Email))
	}
	if s.Birthday != nil {
		opts = append(opts, WithBirthday(*s.Birthday))
	}
	if s.Address != nil {
		opts = append(opts, WithAddress(*s.Address))
	}
	return NewRecord(name, s.Phones, opts...)
}

func optionalField(kind FieldKind, raw *string) (Field, error) {
	if raw == nil {
		return Field{}, nil
	}
	return NewField(kind, *raw)
}

func (r *Record) Name() Field     { return r.name }
func (r *Record) Email() Field    { return r.email }
func (r *Record) Birthday() Field { return r.birthday }
func (r *Record) Address() Field  { return r.address }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Field {
	out := make([]Field, len(r.phones))
	copy(out, r.phones)
	return out
}

// Clone returns a copy of the contact that shares no state with r.
func (r *Record) Clone() *Record {
	cp := *r
	cp.phones = r.Phones()
	return &cp
}

// HasPhone reports whether p is one of the contact's phones.
func (r *Record) HasPhone(p Field) bool { return r.phoneIndex(p) >= 0 }

func (r *Record) phoneIndex(p Field) int {
	for i, ph := range r.phones {
		if ph.Equal(p) {
			return i
		}
	}
	return -1
}

// AnniversaryDate returns the parsed birthday, or false when unset.
func (r *Record) AnniversaryDate() (time.Time, bool) {
	d, err := r.birthday.Date()
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DaysToAnniversary returns the days from today until the contact's next
// birthday. It fails with ErrMissingField when no birthday is set.
func (r *Record) DaysToAnniversary(today time.Time) (int, error) {
	d, ok := r.AnniversaryDate()
	if !ok {
		return 0, fmt.Errorf("contact %s has no birthday: %w", r.name, ErrMissingField)
	}
	return calendar.DaysToAnniversary(d, today), nil
}

// Snapshot returns the persisted form of the contact.
func (r *Record) Snapshot() ContactSnapshot {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.Value()
	}
	return ContactSnapshot{
		Phones:   phones,
		Email:    optionalValue(r.email),
		Birthday: optionalValue(r.birthday),
		Address:  optionalValue(r.address),
	}
}

func optionalValue(f Field) *string {
	if f.IsZero() {
		return nil
	}
	v := f.Value()
	return &v
}

// SearchText joins every field's string form with spaces; unset fields
// contribute an empty string.
func (r *Record) SearchText() string {
	parts := []string{r.name.Value()}
	for _, p := range r.phones {
		parts = append(parts, p.Value())
	}
	parts = append(parts, r.email.Value(), r.birthday.Value(), r.address.Value())
	return strings.Join(parts, " ")
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.Value()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\tname: %s\n", r.name)
	fmt.Fprintf(&b, "\tphones: %s\n", orEmpty(strings.Join(phones, ", ")))
	fmt.Fprintf(&b, "\temail: %s\n", orEmpty(r.email.Value()))
	fmt.Fprintf(&b, "\tbirthday: %s\n", orEmpty(r.birthday.Value()))
	fmt.Fprintf(&b, "\taddress: %s\n", orEmpty(r.address.Value()))
	return b.String()
}

func orEmpty(s string) string {
	if s == "" {
		return emptyPlaceholder
	}
	return s
}
