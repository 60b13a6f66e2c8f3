// File: settings/errors.go
package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no source in the chain produced a value
	// for the derived key.
	ErrNotFound = errors.New("settings: no source produced a value")
	// ErrConflict indicates two files in one directory resolve to the same key.
	ErrConflict = errors.New("settings: duplicate setting key")
	// ErrDecryption indicates no available certificate could decrypt a secure value.
	ErrDecryption = errors.New("settings: unable to decrypt secure value")
	// ErrArgument indicates an invalid caller-supplied argument, such as a nil
	// override value or an empty key.
	ErrArgument = errors.New("settings: invalid argument")
	// ErrMalformedName indicates a secure settings file whose name does not
	// follow the <key>.<plain-suffix>.<secure-suffix> pattern.
	ErrMalformedName = errors.New("settings: malformed secure file name")
)

// NotFoundError reports the key and fully-qualified target type that no
// source could satisfy.
type NotFoundError struct {
	Key      string
	TypeName string
}

func (e *NotFoundError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("settings: no source produced a value for key %q (type %s)", e.Key, e.TypeName)
	}
	return fmt.Sprintf("settings: no source produced a value for key %q", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a duplicate key discovered during a directory scan,
// naming the file that collided with an earlier entry.
type ConflictError struct {
	Key  string
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("settings: duplicate setting key %q from file %s", e.Key, e.Path)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// DecryptionError reports that every gathered certificate failed to decrypt
// a secure value.
type DecryptionError struct {
	Key        string
	File       string
	Candidates int
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("settings: unable to decrypt secure value for key %q from %s (%d certificate(s) tried)",
		e.Key, e.File, e.Candidates)
}

func (e *DecryptionError) Unwrap() error { return ErrDecryption }
