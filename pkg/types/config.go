package types

import "errors"

// Config holds the storage parameters for opening a duckbook data
// directory.
type Config struct {
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	PageSize int    `json:"page_size" yaml:"page_size"`
}

// Config validation errors.
var (
	ErrDataDirEmpty    = errors.New("data directory must not be empty")
	ErrPageSizeInvalid = errors.New("page size must be positive")
)

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
)

// Validate checks that the Config is well-formed. A zero PageSize means the
// default and is accepted.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.PageSize < 0 {
		return ErrPageSizeInvalid
	}
	return nil
}
