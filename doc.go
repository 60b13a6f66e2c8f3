// File: settings/doc.go

// Package settings resolves strongly-typed configuration objects by searching
// an ordered chain of sources, deserializing the first match, and caching the
// result for the process lifetime.
//
// Features:
//   - Ordered source chain: environment variables, per-tier config
//     directories, a tier-less base directory, and a legacy key/value store
//   - First-match-wins resolution (no merging across sources)
//   - Precedence tiers seeded from a pipe-delimited Settings.Precedence value
//   - Directory sources scanned exactly once, lazily, per configuration
//     generation
//   - Secure settings: base64 PKCS#7 envelopes decrypted with certificates
//     discovered in the config directories or supplied by a store
//   - JSON, YAML and TOML representations with weakly-typed decoding
//   - Thread-safe caches with explicit override and reset
//
// Quick Start:
//
//	type CacheSettings struct {
//	    Host string        `json:"host"`
//	    TTL  time.Duration `json:"ttl"`
//	}
//
//	r := settings.NewBuilder().
//	    WithRoot("/opt/app").
//	    WithPrecedence("Production", "Shared").
//	    MustBuild()
//
//	cfg, err := settings.Get[CacheSettings](r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The value for CacheSettings is looked up, in order, as the environment
// variable CacheSettings, the files
// /opt/app/settings/Production/CacheSettings.json,
// /opt/app/settings/Shared/CacheSettings.json,
// /opt/app/settings/Common/CacheSettings.json,
// /opt/app/settings/CacheSettings.json, and finally the app-settings lookup.
// A file named CacheSettings.json.secure holds an encrypted value instead.
//
// Generic settings types flatten their arguments into the key, so
// Pair[Host, Port] resolves as "Pair(Host,Port)". Interface targets consult
// the app-settings store for a redirect name before lookup.
//
// Thread Safety:
// All operations are safe for concurrent use. Configuration changes swap one
// snapshot atomically, so a concurrent Get observes either the old or the new
// configuration, never a mix.
package settings
