package book

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/duckbook/internal/calendar"
	"github.com/mesh-intelligence/duckbook/pkg/types"
)

// Option configures a collection.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the function collections use for today's date.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AddressBook maps contact names to records, preserving insertion order.
type AddressBook struct {
	order   []string
	records map[string]*types.Record
	now     func() time.Time
}

// NewAddressBook returns an empty address book.
func NewAddressBook(opts ...Option) *AddressBook {
	o := applyOptions(opts)
	return &AddressBook{
		records: make(map[string]*types.Record),
		now:     o.now,
	}
}

// Len returns the number of contacts.
func (b *AddressBook) Len() int { return len(b.order) }

// Create adds r under its name. Returns ErrDuplicateKey if the name is taken.
func (b *AddressBook) Create(r *types.Record) error {
	name := r.Name().Value()
	if _, ok := b.records[name]; ok {
		return fmt.Errorf("%w: contact %s", types.ErrDuplicateKey, name)
	}
	b.records[name] = r
	b.order = append(b.order, name)
	return nil
}

// Read returns the contact stored under name.
func (b *AddressBook) Read(name string) (*types.Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", name, types.ErrNotFound)
	}
	return r, nil
}

// Update applies u to the contact stored under name. The updater runs on a
// copy that replaces the stored contact only on success. When the contact
// comes out under a different name it is re-keyed: the new name must not
// belong to another contact, and the renamed contact moves to the end of
// the order.
func (b *AddressBook) Update(name string, u types.Updater) (types.Change, error) {
	r, err := b.Read(name)
	if err != nil {
		return types.Change{}, err
	}

	next := r.Clone()
	change, err := u.ExecuteTo(next)
	if err != nil {
		return types.Change{}, err
	}

	newName := next.Name().Value()
	if newName != name {
		if _, taken := b.records[newName]; taken {
			return types.Change{}, fmt.Errorf("%w: contact %s", types.ErrDuplicateKey, newName)
		}
		b.remove(name)
		b.order = append(b.order, newName)
	}
	*r = *next
	b.records[newName] = r
	return change, nil
}

// Delete removes the contact stored under name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("contact %s: %w", name, types.ErrNotFound)
	}
	b.remove(name)
	return nil
}

func (b *AddressBook) remove(name string) {
	delete(b.records, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// All returns every contact in insertion order.
func (b *AddressBook) All() []*types.Record {
	out := make([]*types.Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// Paginate yields the contacts in batches of n. It fails with
// ErrInvalidArgument when n <= 0.
func (b *AddressBook) Paginate(n int) (iter.Seq[[]*types.Record], error) {
	return paginate(b.All(), n)
}

// Search returns the contacts whose text form contains term, ignoring case.
func (b *AddressBook) Search(term string) []*types.Record {
	needle := strings.ToLower(term)
	var found []*types.Record
	for _, r := range b.All() {
		if strings.Contains(strings.ToLower(r.SearchText()), needle) {
			found = append(found, r)
		}
	}
	return found
}

// FindByAnniversaryWindow returns the contacts whose birthday, re-anchored
// to the current year, falls within [today, today+deltaDays]. Contacts
// without a birthday are skipped.
func (b *AddressBook) FindByAnniversaryWindow(deltaDays int) []*types.Record {
	return calendar.FindInDayInterval(b.All(), deltaDays, b.now())
}

// DaysToAnniversary returns the days until the next birthday of the contact
// stored under name.
func (b *AddressBook) DaysToAnniversary(name string) (int, error) {
	r, err := b.Read(name)
	if err != nil {
		return 0, err
	}
	return r.DaysToAnniversary(b.now())
}

// String renders every contact, one block per contact.
func (b *AddressBook) String() string {
	var sb strings.Builder
	for _, r := range b.All() {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
