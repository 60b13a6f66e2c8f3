// File: settings/precedence.go
package settings

import "strings"

// DefaultFinalTier is the implicit lowest-priority tier appended to every
// precedence list that does not already contain it.
const DefaultFinalTier = "Common"

// precedenceSettingName is the legacy pipe-delimited setting that seeds the
// default precedence list, optionally prefixed with a namespace.
const precedenceSettingName = "Settings.Precedence"

// precedenceKey returns the env/app-setting name carrying the tier list.
func precedenceKey(namespace string) string {
	if namespace == "" {
		return precedenceSettingName
	}
	return namespace + "." + precedenceSettingName
}

// seedPrecedence reads the pipe-delimited tier list from the first lookup
// that defines it. A missing or empty setting yields nil, leaving only the
// implicit final tier.
func seedPrecedence(namespace string, lookups ...LookupFunc) []string {
	key := precedenceKey(namespace)
	for _, lookup := range lookups {
		if lookup == nil {
			continue
		}
		raw, ok := lookup(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		var tiers []string
		for _, t := range strings.Split(raw, "|") {
			if t = strings.TrimSpace(t); t != "" {
				tiers = append(tiers, t)
			}
		}
		return tiers
	}
	return nil
}

// withFinalTier appends the final tier unless the list already contains it
// (case-insensitively). The input slice is never mutated.
func withFinalTier(tiers []string, final string) []string {
	out := make([]string, 0, len(tiers)+1)
	out = append(out, tiers...)
	for _, t := range out {
		if strings.EqualFold(t, final) {
			return out
		}
	}
	return append(out, final)
}
