package types

import "errors"

// Entity and collection errors. Operations wrap these with context via
// fmt.Errorf; callers match them with errors.Is.
var (
	ErrValidation      = errors.New("invalid value")
	ErrDuplicateKey    = errors.New("key already exists")
	ErrDuplicate       = errors.New("item already present")
	ErrNotFound        = errors.New("not found")
	ErrMissingField    = errors.New("field is not set")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidData     = errors.New("invalid snapshot data")
)
