// Package types defines the validated field, contact record, updater and
// note entity types, and the standard error values for the duckbook
// address-book and notes stores.
//
// Entities are constructed from raw strings through validating constructors
// and are never observable in an invalid state. Contacts are changed only by
// applying an Updater; notes expose their own tag and body methods.
package types
