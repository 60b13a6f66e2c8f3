// File: settings/chain.go
package settings

import (
	"os"
	"path/filepath"
	"strings"
)

// sourceChain queries its sources strictly in order and returns the first
// non-empty, non-whitespace value. There is no merging across sources.
type sourceChain struct {
	sources []SettingsSource
}

func (c *sourceChain) GetSerializedSetting(key string) (string, bool, error) {
	for _, s := range c.sources {
		v, ok, err := s.GetSerializedSetting(key)
		if err != nil {
			return "", false, err
		}
		if ok && strings.TrimSpace(v) != "" {
			return v, true, nil
		}
	}
	return "", false, nil
}

// buildChain materializes the source chain for one configuration snapshot:
// the environment source, one directory source per precedence tier, the
// tier-less base directory source, and the legacy key/value source. Directory
// scans happen here, at most once per snapshot.
func buildChain(snap *snapshot) (*sourceChain, error) {
	if snap.sourcesOverride != nil {
		return &sourceChain{sources: snap.sourcesOverride}, nil
	}

	// The same effective lookup serves value resolution and precedence
	// seeding, so a default resolver seeds from the process environment.
	envLookup := snap.envLookup
	if envLookup == nil {
		envLookup = os.LookupEnv
	}

	tiers := snap.precedence
	if tiers == nil {
		tiers = seedPrecedence(snap.namespace, envLookup, snap.appSettings)
	}
	tiers = withFinalTier(tiers, snap.finalTier)

	root := snap.root
	if root == "" {
		root = defaultRoot()
	}
	base := filepath.Join(root, snap.configDirName)

	dirs := make([]*DirectorySource, 0, len(tiers)+1)
	for _, tier := range tiers {
		ds, err := newDirectorySource(filepath.Join(base, tier), snap.suffixes)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, ds)
	}
	baseDir, err := newDirectorySource(base, snap.suffixes)
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, baseDir)

	decryptor := NewDecryptor(dirs, snap.certStore, snap.certPassword)
	for _, d := range dirs {
		d.decryptor = decryptor
	}

	sources := make([]SettingsSource, 0, len(dirs)+2)
	sources = append(sources, NewEnvSource(envLookup))
	for _, d := range dirs {
		sources = append(sources, d)
	}
	sources = append(sources, NewKeyValueSource("app-settings", snap.appSettings))

	return &sourceChain{sources: sources}, nil
}
