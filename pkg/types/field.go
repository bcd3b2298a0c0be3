package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldKind identifies which validator a Field was built with.
type FieldKind int

// Field kinds. The set is closed; NewField rejects anything else.
const (
	KindName FieldKind = iota + 1
	KindPhone
	KindEmail
	KindBirthday
	KindAddress
	KindNoteTag
	KindNoteBody
)

// BirthdayLayout is the ISO-8601 calendar date layout birthdays are stored in.
const BirthdayLayout = "2006-01-02"

var kindNames = map[FieldKind]string{
	KindName:     "name",
	KindPhone:    "phone",
	KindEmail:    "email",
	KindBirthday: "birthday",
	KindAddress:  "address",
	KindNoteTag:  "note tag",
	KindNoteBody: "note body",
}

func (k FieldKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var (
	phoneStrip   = regexp.MustCompile(`[ ()\-]`)
	phonePattern = regexp.MustCompile(`^(?:\+380\d{9}|380\d{9}|80\d{9}|0\d{9})$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z][\S.]+@[a-zA-Z]+\.[a-zA-Z]{2,}$`)
)

// now is the clock birthday validation compares against. Tests override it.
var now = time.Now

// validators maps each kind to its pure validation function. A validator
// returns the canonical stored form of raw or an error wrapping ErrValidation.
var validators = map[FieldKind]func(raw string) (string, error){
	KindName:     validateName,
	KindPhone:    validatePhone,
	KindEmail:    validateEmail,
	KindBirthday: validateBirthday,
	KindAddress:  validateAddress,
	KindNoteTag:  validateNoteTag,
	KindNoteBody: validateNoteBody,
}

// Field is a validated single-value wrapper. The zero Field is empty and is
// used to represent an unset optional field.
type Field struct {
	kind  FieldKind
	value string
}

// NewField validates raw with the validator for kind. On failure it returns
// the zero Field and an error wrapping ErrValidation.
func NewField(kind FieldKind, raw string) (Field, error) {
	validate, ok := validators[kind]
	if !ok {
		return Field{}, fmt.Errorf("%w: unknown field kind %d", ErrValidation, int(kind))
	}
	v, err := validate(raw)
	if err != nil {
		return Field{}, err
	}
	return Field{kind: kind, value: v}, nil
}

func NewName(raw string) (Field, error)     { return NewField(KindName, raw) }
func NewPhone(raw string) (Field, error)    { return NewField(KindPhone, raw) }
func NewEmail(raw string) (Field, error)    { return NewField(KindEmail, raw) }
func NewBirthday(raw string) (Field, error) { return NewField(KindBirthday, raw) }
func NewAddress(raw string) (Field, error)  { return NewField(KindAddress, raw) }
func NewNoteTag(raw string) (Field, error)  { return NewField(KindNoteTag, raw) }
func NewNoteBody(raw string) (Field, error) { return NewField(KindNoteBody, raw) }

// Kind returns the field kind; zero for an empty Field.
func (f Field) Kind() FieldKind { return f.kind }

// Value returns the canonical stored value.
func (f Field) Value() string { return f.value }

func (f Field) String() string { return f.value }

// IsZero reports whether f is the empty Field.
func (f Field) IsZero() bool { return f.kind == 0 }

// Equal compares by value only, so fields of different kinds holding the
// same string are equal.
func (f Field) Equal(other Field) bool { return f.value == other.value }

// EqualString compares the stored value with s.
func (f Field) EqualString(s string) bool { return f.value == s }

// Date parses a birthday field. It returns ErrMissingField for an empty
// field and ErrValidation for any other kind.
func (f Field) Date() (time.Time, error) {
	if f.IsZero() {
		return time.Time{}, ErrMissingField
	}
	if f.kind != KindBirthday {
		return time.Time{}, fmt.Errorf("%w: %s field has no date", ErrValidation, f.kind)
	}
	return time.Parse(BirthdayLayout, f.value)
}

func validateName(v string) (string, error) {
	if utf8.RuneCountInString(v) <= 2 {
		return "", fmt.Errorf("%w: name %q is too short", ErrValidation, v)
	}
	return v, nil
}

func validatePhone(v string) (string, error) {
	stripped := phoneStrip.ReplaceAllString(v, "")
	if !phonePattern.MatchString(stripped) {
		return "", fmt.Errorf("%w: phone %q is not in format +380xxxxxxxxx", ErrValidation, v)
	}
	return "+380" + stripped[len(stripped)-9:], nil
}

func validateEmail(v string) (string, error) {
	if !emailPattern.MatchString(v) {
		return "", fmt.Errorf("%w: email %q is not in format prefix@domain.tld", ErrValidation, v)
	}
	return v, nil
}

func validateBirthday(v string) (string, error) {
	d, err := time.Parse(BirthdayLayout, v)
	if err != nil {
		return "", fmt.Errorf("%w: birthday %q is not an ISO date such as 2023-12-30", ErrValidation, v)
	}
	if d.Year() > now().Year() {
		return "", fmt.Errorf("%w: birthday %q is in the future", ErrValidation, v)
	}
	return v, nil
}

func validateAddress(v string) (string, error) {
	if v != "" && strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: address must not be blank", ErrValidation)
	}
	if n := utf8.RuneCountInString(v); n < 5 || n > 50 {
		return "", fmt.Errorf("%w: address %q must contain 5 to 50 characters", ErrValidation, v)
	}
	return v, nil
}

func validateNoteTag(v string) (string, error) {
	if n := utf8.RuneCountInString(v); n < 2 || n > 20 {
		return "", fmt.Errorf("%w: tag %q must contain 2 to 20 characters", ErrValidation, v)
	}
	if !strings.HasPrefix(v, "#") {
		return "", fmt.Errorf("%w: tag %q must start with #", ErrValidation, v)
	}
	return v, nil
}

func validateNoteBody(v string) (string, error) {
	if n := utf8.RuneCountInString(v); n < 1 || n > 300 {
		return "", fmt.Errorf("%w: note must contain 1 to 300 characters", ErrValidation)
	}
	return v, nil
}
