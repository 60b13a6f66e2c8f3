// File: settings/resolver.go
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
)

// DefaultConfigDirName is the directory under the settings root that holds
// tier directories and tier-less setting files.
const DefaultConfigDirName = "settings"

// snapshot is one generation of resolver configuration. All mutable settings
// live here and the whole struct is replaced atomically, so a concurrent Get
// observes either the fully-old or fully-new configuration, never a mix.
type snapshot struct {
	root            string   // "" = recompute default at materialization
	configDirName   string
	precedence      []string // nil = seed from the precedence setting
	namespace       string
	finalTier       string
	suffixes        fileSuffixes
	format          Format
	deserialize     DeserializeFunc // nil = DeserializerFor(format)
	appSettings     LookupFunc
	envLookup       LookupFunc
	certStore       CertificateStore
	certPassword    PasswordFunc
	sourcesOverride []SettingsSource

	// Lazy chain state: directory scans happen at most once per snapshot.
	chainMu    sync.Mutex
	chain      *sourceChain
	chainErr   error
	chainBuilt bool
}

// materialize builds the source chain on first use.
func (s *snapshot) materialize() (*sourceChain, error) {
	s.chainMu.Lock()
	defer s.chainMu.Unlock()
	if !s.chainBuilt {
		s.chain, s.chainErr = buildChain(s)
		s.chainBuilt = true
	}
	return s.chain, s.chainErr
}

// clone copies the configuration portion of a snapshot with fresh chain state.
func (s *snapshot) clone() *snapshot {
	return &snapshot{
		root:            s.root,
		configDirName:   s.configDirName,
		precedence:      s.precedence,
		namespace:       s.namespace,
		finalTier:       s.finalTier,
		suffixes:        s.suffixes,
		format:          s.format,
		deserialize:     s.deserialize,
		appSettings:     s.appSettings,
		envLookup:       s.envLookup,
		certStore:       s.certStore,
		certPassword:    s.certPassword,
		sourcesOverride: s.sourcesOverride,
	}
}

// Resolver resolves strongly-typed settings objects by searching an ordered
// chain of sources, deserializing the first match, and caching the result.
type Resolver struct {
	mu       sync.RWMutex
	template *snapshot // construction-time configuration, restored by Reset
	snap     *snapshot
	cache    *resolutionCache // replaced wholesale by Reset
}

// New creates a resolver with default configuration: settings root next to
// the executable, config directory "settings", JSON representation, and
// precedence seeded from the Settings.Precedence environment variable.
func New() *Resolver {
	template := &snapshot{
		configDirName: DefaultConfigDirName,
		finalTier:     DefaultFinalTier,
		suffixes:      defaultSuffixes(),
		format:        FormatJSON,
	}
	return &Resolver{template: template, snap: template.clone(), cache: &resolutionCache{}}
}

// current returns the active snapshot and its cache generation. Both are
// captured together so a resolution straddling Reset completes into the
// discarded generation instead of repolluting the fresh cache.
func (r *Resolver) current() (*snapshot, *resolutionCache) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, r.cache
}

// ResolveOption adjusts a single resolution call.
type ResolveOption func(*resolveConfig)

type resolveConfig struct {
	deserialize DeserializeFunc
	format      Format
}

// WithSerializer overrides the deserializer for one call.
func WithSerializer(fn DeserializeFunc) ResolveOption {
	return func(c *resolveConfig) { c.deserialize = fn }
}

// WithRepresentation overrides the representation for one call.
func WithRepresentation(format Format) ResolveOption {
	return func(c *resolveConfig) { c.format = format }
}

// Get resolves the settings object for type T, consulting the cache first.
func Get[T any](r *Resolver, opts ...ResolveOption) (T, error) {
	var zero T
	v, err := r.Resolve(reflect.TypeOf(&zero).Elem(), opts...)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: cached value for %T has type %T", ErrArgument, zero, v)
	}
	return out, nil
}

// GetByName resolves a settings object keyed by an explicit name rather than
// a derived type key.
func GetByName[T any](r *Resolver, name string, opts ...ResolveOption) (T, error) {
	var zero T
	v, err := r.ResolveNamed(name, reflect.TypeOf(&zero).Elem(), opts...)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: cached value for name %q has type %T", ErrArgument, name, v)
	}
	return out, nil
}

// Resolve is the non-generic form of Get, keyed by the canonical key derived
// from t. The cache hit path never touches the source chain.
func (r *Resolver) Resolve(t reflect.Type, opts ...ResolveOption) (any, error) {
	key, err := CanonicalKey(t)
	if err != nil {
		return nil, err
	}
	snap, cache := r.current()
	return cache.getOrComputeType(key, func() (any, error) {
		lookupKey, err := buildKey(t, snap.appSettings)
		if err != nil {
			return nil, err
		}
		return resolveFromChain(snap, lookupKey, t, opts)
	})
}

// ResolveNamed is the non-generic form of GetByName.
func (r *Resolver) ResolveNamed(name string, t reflect.Type, opts ...ResolveOption) (any, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty setting name", ErrArgument)
	}
	snap, cache := r.current()
	return cache.getOrComputeName(name, func() (any, error) {
		return resolveFromChain(snap, name, t, opts)
	})
}

// resolveFromChain queries the chain for key and deserializes the raw value
// into a fresh instance of t.
func resolveFromChain(snap *snapshot, key string, t reflect.Type, opts []ResolveOption) (any, error) {
	chain, err := snap.materialize()
	if err != nil {
		return nil, err
	}
	raw, found, err := chain.GetSerializedSetting(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NotFoundError{Key: key, TypeName: fullTypeName(t)}
	}

	cfg := resolveConfig{deserialize: snap.deserialize, format: snap.format}
	for _, opt := range opts {
		opt(&cfg)
	}
	deserialize := cfg.deserialize
	if deserialize == nil {
		deserialize = DeserializerFor(cfg.format)
	}

	target, result := instantiate(t)
	if err := deserialize(raw, target); err != nil {
		return nil, fmt.Errorf("settings: failed to deserialize key %q into %s: %w", key, fullTypeName(t), err)
	}
	return result(), nil
}

// instantiate allocates a fresh instance of t and returns the pointer to
// deserialize into along with a function producing the final value.
func instantiate(t reflect.Type) (target any, result func() any) {
	if t.Kind() == reflect.Ptr {
		p := reflect.New(t.Elem())
		return p.Interface(), func() any { return p.Interface() }
	}
	p := reflect.New(t)
	return p.Interface(), func() any { return p.Elem().Interface() }
}

// Set unconditionally overrides the cached object for type T.
func Set[T any](r *Resolver, value T) error {
	if isNilValue(value) {
		return fmt.Errorf("%w: nil value for Set", ErrArgument)
	}
	key, err := CanonicalKey(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return err
	}
	_, cache := r.current()
	cache.setType(key, value)
	return nil
}

// SetByName unconditionally overrides the cached object stored under name.
func (r *Resolver) SetByName(name string, value any) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty setting name", ErrArgument)
	}
	if isNilValue(value) {
		return fmt.Errorf("%w: nil value for SetByName", ErrArgument)
	}
	_, cache := r.current()
	cache.setName(name, value)
	return nil
}

// SetPrecedence replaces the precedence tier list. The cache is left intact;
// already-resolved objects keep their values until Reset.
func (r *Resolver) SetPrecedence(tiers ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.snap.clone()
	next.precedence = append([]string(nil), tiers...)
	r.snap = next
}

// SetSerialization replaces the default representation, and optionally the
// deserializer factory, used when a call supplies no override. The already
// materialized source chain is carried over so no rescan occurs.
func (r *Resolver) SetSerialization(format Format, deserialize ...DeserializeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.snap.clone()
	next.format = format
	next.deserialize = nil
	if len(deserialize) > 0 {
		next.deserialize = deserialize[0]
	}
	r.snap.chainMu.Lock()
	next.chain, next.chainErr, next.chainBuilt = r.snap.chain, r.snap.chainErr, r.snap.chainBuilt
	r.snap.chainMu.Unlock()
	r.snap = next
}

// SetSources wholesale replaces the source chain, bypassing directory and
// environment source construction entirely.
func (r *Resolver) SetSources(sources ...SettingsSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.snap.clone()
	next.sourcesOverride = append([]SettingsSource(nil), sources...)
	r.snap = next
}

// ResetOption adjusts a Reset call.
type ResetOption func(*snapshot)

// ResetRoot overrides the settings root directory for the new generation.
func ResetRoot(dir string) ResetOption {
	return func(s *snapshot) { s.root = dir }
}

// ResetConfigDirName overrides the config directory name for the new generation.
func ResetConfigDirName(name string) ResetOption {
	return func(s *snapshot) { s.configDirName = name }
}

// Reset clears both caches and restores the construction-time configuration:
// the settings root is recomputed, the default serializer restored, and the
// source chain and precedence rebuilt lazily on next use.
func (r *Resolver) Reset(opts ...ResetOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.template.clone()
	for _, opt := range opts {
		opt(next)
	}
	r.snap = next
	r.cache = &resolutionCache{}
}

// isNilValue reports whether value is nil or a nil pointer/map/slice/etc.
func isNilValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// defaultRoot is the directory of the running executable, falling back to
// the working directory.
func defaultRoot() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
