// File: settings/key.go
package settings

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// canonicalKeyCache memoizes derived keys per reflect.Type. Key derivation is
// pure string work, so a process-wide cache is safe across resolver instances.
var canonicalKeyCache sync.Map // reflect.Type -> string

// CanonicalKey derives the lookup key for a settings type: the type's simple
// name, with generic instantiations flattened to Outer(Arg1,Arg2), applying
// the same rule recursively to each argument. Pointer types are dereferenced
// first. Unnamed types (maps, slices, anonymous structs) have no key.
func CanonicalKey(t reflect.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil type", ErrArgument)
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if v, ok := canonicalKeyCache.Load(t); ok {
		return v.(string), nil
	}
	if t.Name() == "" {
		return "", fmt.Errorf("%w: unnamed type %s has no canonical key", ErrArgument, t.String())
	}
	key := flattenTypeName(t.Name())
	canonicalKeyCache.Store(t, key)
	return key, nil
}

// buildKey derives the actual chain lookup key for a target type. Interface
// targets are first looked up as a redirection name in the legacy store; a
// non-empty redirect value replaces the canonical key. Without a redirect the
// canonical key is used unchanged, so resolution fails later at
// deserialization because the interface cannot be instantiated.
func buildKey(t reflect.Type, appSettings LookupFunc) (string, error) {
	key, err := CanonicalKey(t)
	if err != nil {
		return "", err
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface && appSettings != nil {
		if redirect, ok := appSettings(key); ok {
			if r := strings.TrimSpace(redirect); r != "" {
				return r, nil
			}
		}
	}
	return key, nil
}

// flattenTypeName rewrites reflect's generic naming "Outer[pkg.A,pkg.B]" into
// the canonical "Outer(A,B)" form, recursing into nested instantiations.
func flattenTypeName(s string) string {
	i := strings.IndexByte(s, '[')
	if i < 0 {
		return simpleTypeName(s)
	}
	outer := simpleTypeName(s[:i])
	inner := s[i+1 : len(s)-1]

	args := splitTopLevel(inner, ',')
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, flattenTypeName(strings.TrimSpace(a)))
	}
	return outer + "(" + strings.Join(parts, ",") + ")"
}

// simpleTypeName strips any package qualifier: "github.com/x/y.Inner" -> "Inner".
func simpleTypeName(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// splitTopLevel splits s on sep, ignoring separators nested inside brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// fullTypeName returns the fully-qualified type name for error messages.
func fullTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if p := t.PkgPath(); p != "" {
		return p + "." + t.Name()
	}
	return t.String()
}
