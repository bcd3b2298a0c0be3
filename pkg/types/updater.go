package types

import "fmt"

// Change operations reported by an Updater.
const (
	OpAdd    = "add"
	OpChange = "change"
	OpRemove = "remove"
	OpSet    = "set"
)

// Updater applies one mutation to a contact. Updaters are immutable values:
// ExecuteTo keeps no reference to the record and can be called again on
// another record. On error the record is left unchanged.
type Updater interface {
	ExecuteTo(r *Record) (Change, error)
}

// Change describes a mutation an Updater applied.
type Change struct {
	Op      string    // One of the Op constants.
	Field   FieldKind // Field that changed.
	Contact string    // Contact name after the change.
	Old     string    // Previous value; empty when there was none.
	New     string    // New value; empty for removals.
}

// Info renders a human-readable summary of the change.
func (c Change) Info() string {
	switch {
	case c.Field == KindName:
		return fmt.Sprintf("contact name %q has been changed to %q", c.Old, c.New)
	case c.Op == OpAdd:
		return fmt.Sprintf("%s %s has been added to contact: %s", c.Field, c.New, c.Contact)
	case c.Op == OpChange:
		return fmt.Sprintf("%s %s has been changed to %s at contact: %s", c.Field, c.Old, c.New, c.Contact)
	case c.Op == OpRemove:
		return fmt.Sprintf("%s %s has been removed from contact: %s", c.Field, orEmpty(c.Old), c.Contact)
	default:
		return fmt.Sprintf("%s %s has been added/changed at contact: %s", c.Field, c.New, c.Contact)
	}
}

// ChangeName renames a contact. The owning collection re-keys the record.
type ChangeName struct{ name Field }

func NewChangeName(raw string) (ChangeName, error) {
	n, err := NewName(raw)
	if err != nil {
		return ChangeName{}, err
	}
	return ChangeName{name: n}, nil
}

func (u ChangeName) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.name, KindName); err != nil {
		return Change{}, err
	}
	old := r.name
	r.name = u.name
	return Change{Op: OpChange, Field: KindName, Contact: u.name.Value(), Old: old.Value(), New: u.name.Value()}, nil
}

// AddPhone appends a phone that the contact does not already have.
type AddPhone struct{ phone Field }

func NewAddPhone(raw string) (AddPhone, error) {
	p, err := NewPhone(raw)
	if err != nil {
		return AddPhone{}, err
	}
	return AddPhone{phone: p}, nil
}

func (u AddPhone) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.phone, KindPhone); err != nil {
		return Change{}, err
	}
	if r.HasPhone(u.phone) {
		return Change{}, fmt.Errorf("%w: phone %s is already in contact %s", ErrDuplicate, u.phone, r.name)
	}
	r.phones = append(r.phones, u.phone)
	return Change{Op: OpAdd, Field: KindPhone, Contact: r.name.Value(), New: u.phone.Value()}, nil
}

// ChangePhone replaces one phone with another, keeping its list position.
type ChangePhone struct{ from, to Field }

func NewChangePhone(oldRaw, newRaw string) (ChangePhone, error) {
	o, err := NewPhone(oldRaw)
	if err != nil {
		return ChangePhone{}, err
	}
	n, err := NewPhone(newRaw)
	if err != nil {
		return ChangePhone{}, err
	}
	return ChangePhone{from: o, to: n}, nil
}

func (u ChangePhone) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.from, KindPhone); err != nil {
		return Change{}, err
	}
	if err := carried(u.to, KindPhone); err != nil {
		return Change{}, err
	}
	i := r.phoneIndex(u.from)
	if i < 0 {
		return Change{}, fmt.Errorf("phone %s is not in contact %s: %w", u.from, r.name, ErrNotFound)
	}
	if r.HasPhone(u.to) {
		return Change{}, fmt.Errorf("%w: phone %s is already in contact %s", ErrDuplicate, u.to, r.name)
	}
	r.phones[i] = u.to
	return Change{Op: OpChange, Field: KindPhone, Contact: r.name.Value(), Old: u.from.Value(), New: u.to.Value()}, nil
}

// RemovePhone deletes a phone from the contact.
type RemovePhone struct{ phone Field }

func NewRemovePhone(raw string) (RemovePhone, error) {
	p, err := NewPhone(raw)
	if err != nil {
		return RemovePhone{}, err
	}
	return RemovePhone{phone: p}, nil
}

func (u RemovePhone) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.phone, KindPhone); err != nil {
		return Change{}, err
	}
	i := r.phoneIndex(u.phone)
	if i < 0 {
		return Change{}, fmt.Errorf("phone %s is not in contact %s: %w", u.phone, r.name, ErrNotFound)
	}
	r.phones = append(r.phones[:i:i], r.phones[i+1:]...)
	return Change{Op: OpRemove, Field: KindPhone, Contact: r.name.Value(), Old: u.phone.Value()}, nil
}

// AddChangeEmail sets the email, replacing any previous one.
type AddChangeEmail struct{ email Field }

func NewAddChangeEmail(raw string) (AddChangeEmail, error) {
	e, err := NewEmail(raw)
	if err != nil {
		return AddChangeEmail{}, err
	}
	return AddChangeEmail{email: e}, nil
}

func (u AddChangeEmail) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.email, KindEmail); err != nil {
		return Change{}, err
	}
	return setOptional(r, &r.email, u.email), nil
}

// AddChangeBirthday sets the birthday, replacing any previous one.
type AddChangeBirthday struct{ birthday Field }

func NewAddChangeBirthday(raw string) (AddChangeBirthday, error) {
	b, err := NewBirthday(raw)
	if err != nil {
		return AddChangeBirthday{}, err
	}
	return AddChangeBirthday{birthday: b}, nil
}

func (u AddChangeBirthday) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.birthday, KindBirthday); err != nil {
		return Change{}, err
	}
	return setOptional(r, &r.birthday, u.birthday), nil
}

// AddChangeAddress sets the address, replacing any previous one.
type AddChangeAddress struct{ address Field }

func NewAddChangeAddress(raw string) (AddChangeAddress, error) {
	a, err := NewAddress(raw)
	if err != nil {
		return AddChangeAddress{}, err
	}
	return AddChangeAddress{address: a}, nil
}

func (u AddChangeAddress) ExecuteTo(r *Record) (Change, error) {
	if err := carried(u.address, KindAddress); err != nil {
		return Change{}, err
	}
	return setOptional(r, &r.address, u.address), nil
}

// RemoveEmail clears the email. Clearing an unset email succeeds.
type RemoveEmail struct{}

func (RemoveEmail) ExecuteTo(r *Record) (Change, error) {
	return clearOptional(r, &r.email, KindEmail), nil
}

// RemoveBirthday clears the birthday.
type RemoveBirthday struct{}

func (RemoveBirthday) ExecuteTo(r *Record) (Change, error) {
	return clearOptional(r, &r.birthday, KindBirthday), nil
}

// RemoveAddress clears the address.
type RemoveAddress struct{}

func (RemoveAddress) ExecuteTo(r *Record) (Change, error) {
	return clearOptional(r, &r.address, KindAddress), nil
}

// carried rejects an updater that was not built by its constructor and so
// holds no validated value.
func carried(f Field, kind FieldKind) error {
	if f.IsZero() {
		return fmt.Errorf("%w: %s updater carries no value; use its constructor", ErrValidation, kind)
	}
	return nil
}

func setOptional(r *Record, slot *Field, v Field) Change {
	old := *slot
	*slot = v
	return Change{Op: OpSet, Field: v.Kind(), Contact: r.name.Value(), Old: old.Value(), New: v.Value()}
}

func clearOptional(r *Record, slot *Field, kind FieldKind) Change {
	old := *slot
	*slot = Field{}
	return Change{Op: OpRemove, Field: kind, Contact: r.name.Value(), Old: old.Value()}
}
