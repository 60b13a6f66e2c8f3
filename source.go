// File: settings/source.go
package settings

import "os"

// LookupFunc is a simple key -> string lookup over an external store, such as
// environment variables or a legacy app-settings table. The boolean reports
// whether the key was present at all.
type LookupFunc func(key string) (string, bool)

// SettingsSource produces the raw serialized text for a setting key.
// Returning found=false is not an error; it lets the chain continue to the
// next source. An error aborts resolution immediately.
type SettingsSource interface {
	GetSerializedSetting(key string) (value string, found bool, err error)
	Name() string
}

// EnvSource resolves keys directly as environment variable names.
type EnvSource struct {
	lookup LookupFunc
}

// NewEnvSource creates an environment-variable source. A nil lookup uses
// os.LookupEnv.
func NewEnvSource(lookup LookupFunc) *EnvSource {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &EnvSource{lookup: lookup}
}

func (s *EnvSource) GetSerializedSetting(key string) (string, bool, error) {
	v, ok := s.lookup(key)
	return v, ok, nil
}

func (s *EnvSource) Name() string { return "environment" }

// KeyValueSource adapts a legacy key/value store (app settings) into a
// settings source.
type KeyValueSource struct {
	name   string
	lookup LookupFunc
}

// NewKeyValueSource creates a source backed by an arbitrary lookup function.
func NewKeyValueSource(name string, lookup LookupFunc) *KeyValueSource {
	return &KeyValueSource{name: name, lookup: lookup}
}

func (s *KeyValueSource) GetSerializedSetting(key string) (string, bool, error) {
	if s.lookup == nil {
		return "", false, nil
	}
	v, ok := s.lookup(key)
	return v, ok, nil
}

func (s *KeyValueSource) Name() string { return s.name }

// FuncSource wraps a caller-supplied callback as an anonymous source, for
// chains assembled by hand via SetSources.
type FuncSource struct {
	name string
	fn   func(key string) (string, bool, error)
}

// NewFuncSource creates a source from a callback. The name is used for
// diagnostics only.
func NewFuncSource(name string, fn func(key string) (string, bool, error)) *FuncSource {
	return &FuncSource{name: name, fn: fn}
}

func (s *FuncSource) GetSerializedSetting(key string) (string, bool, error) {
	if s.fn == nil {
		return "", false, nil
	}
	return s.fn(key)
}

func (s *FuncSource) Name() string { return s.name }
