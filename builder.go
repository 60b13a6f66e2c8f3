// File: settings/builder.go
package settings

import "fmt"

// Builder provides a fluent interface for constructing a Resolver.
type Builder struct {
	template *snapshot
	err      error
}

// NewBuilder creates a new resolver builder with default configuration.
func NewBuilder() *Builder {
	return &Builder{template: New().template}
}

// WithRoot sets the settings root directory. An empty root means the
// directory of the running executable.
func (b *Builder) WithRoot(dir string) *Builder {
	b.template.root = dir
	return b
}

// WithConfigDirName sets the config directory name under the root.
func (b *Builder) WithConfigDirName(name string) *Builder {
	if name == "" {
		b.err = fmt.Errorf("%w: empty config directory name", ErrArgument)
		return b
	}
	b.template.configDirName = name
	return b
}

// WithPrecedence sets the precedence tier list, overriding seeding from the
// precedence setting. The implicit final tier is still appended.
func (b *Builder) WithPrecedence(tiers ...string) *Builder {
	b.template.precedence = append([]string(nil), tiers...)
	return b
}

// WithNamespace sets the namespace prefix of the precedence setting name,
// e.g. "Acme" reads "Acme.Settings.Precedence".
func (b *Builder) WithNamespace(namespace string) *Builder {
	b.template.namespace = namespace
	return b
}

// WithFinalTier replaces the implicit final precedence tier.
func (b *Builder) WithFinalTier(tier string) *Builder {
	if tier == "" {
		b.err = fmt.Errorf("%w: empty final tier", ErrArgument)
		return b
	}
	b.template.finalTier = tier
	return b
}

// WithFormat sets the default serialized representation.
func (b *Builder) WithFormat(format Format) *Builder {
	b.template.format = format
	return b
}

// WithDeserializer sets the default deserializer, bypassing the built-in
// representation handling.
func (b *Builder) WithDeserializer(fn DeserializeFunc) *Builder {
	b.template.deserialize = fn
	return b
}

// WithAppSettings sets the legacy key/value store lookup, used for the final
// chain source, precedence seeding, and abstract-type redirection.
func (b *Builder) WithAppSettings(lookup LookupFunc) *Builder {
	b.template.appSettings = lookup
	return b
}

// WithEnvLookup replaces the environment variable lookup (os.LookupEnv).
func (b *Builder) WithEnvLookup(lookup LookupFunc) *Builder {
	b.template.envLookup = lookup
	return b
}

// WithCertificateStore sets the identity store consulted for secure-value
// decryption after directory-discovered bundles.
func (b *Builder) WithCertificateStore(store CertificateStore) *Builder {
	b.template.certStore = store
	return b
}

// WithCertificatePassword sets the resolver mapping certificate bundle file
// names to passwords. The default loads every bundle without a password.
func (b *Builder) WithCertificatePassword(fn PasswordFunc) *Builder {
	b.template.certPassword = fn
	return b
}

// WithFileSuffixes overrides the recognized file suffixes for plain settings,
// secure settings, and certificate bundles.
func (b *Builder) WithFileSuffixes(plain, secure, cert string) *Builder {
	if plain == "" || secure == "" || cert == "" {
		b.err = fmt.Errorf("%w: empty file suffix", ErrArgument)
		return b
	}
	b.template.suffixes = fileSuffixes{plain: plain, secure: secure, cert: cert}
	return b
}

// WithSources wholesale replaces the source chain with the given sources,
// in order. Directory and environment sources are not constructed.
func (b *Builder) WithSources(sources ...SettingsSource) *Builder {
	b.template.sourcesOverride = append([]SettingsSource(nil), sources...)
	return b
}

// Build creates the Resolver with all specified options. The resolver owns
// its own copy of the configuration, so reusing the builder afterwards does
// not change what Reset restores.
func (b *Builder) Build() (*Resolver, error) {
	if b.err != nil {
		return nil, b.err
	}
	template := b.template.clone()
	return &Resolver{template: template, snap: template.clone(), cache: &resolutionCache{}}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Resolver {
	r, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("settings: build failed: %v", err))
	}
	return r
}
