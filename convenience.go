// File: settings/convenience.go
package settings

import "fmt"

// Default is a shared resolver for applications that treat settings as
// process-wide state. Core logic always operates on an explicit Resolver;
// these helpers only forward to Default.
var Default = New()

// Resolve resolves the settings object for type T from the Default resolver.
func Resolve[T any](opts ...ResolveOption) (T, error) {
	return Get[T](Default, opts...)
}

// ResolveNamed resolves a settings object by explicit name from the Default
// resolver.
func ResolveNamed[T any](name string, opts ...ResolveOption) (T, error) {
	return GetByName[T](Default, name, opts...)
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](opts ...ResolveOption) T {
	v, err := Resolve[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("settings: resolve failed: %v", err))
	}
	return v
}

// Override replaces the cached object for type T on the Default resolver.
func Override[T any](value T) error {
	return Set[T](Default, value)
}

// Reset clears the Default resolver's caches and rebuilds its configuration.
func Reset(opts ...ResetOption) {
	Default.Reset(opts...)
}
