// File: settings/dirsource.go
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Default file suffixes for directory sources.
const (
	DefaultPlainSuffix       = ".json"
	DefaultSecureSuffix      = ".secure"
	DefaultCertificateSuffix = ".pfx"
)

// fileSuffixes carries the recognized extensions for one scan.
type fileSuffixes struct {
	plain  string
	secure string
	cert   string
}

func defaultSuffixes() fileSuffixes {
	return fileSuffixes{
		plain:  DefaultPlainSuffix,
		secure: DefaultSecureSuffix,
		cert:   DefaultCertificateSuffix,
	}
}

// fileRecord describes a discovered file that is not itself a setting,
// retained for certificate discovery.
type fileRecord struct {
	name string
	ext  string
	path string
}

// dirEntry is one parsed setting within a directory.
type dirEntry struct {
	key    string
	raw    string
	secure bool
	path   string
}

// DirectorySource serves settings from the files of a single directory.
// The directory is scanned exactly once, at construction; the source never
// rescans. A directory that does not exist yields an empty source.
type DirectorySource struct {
	dir      string
	suffixes fileSuffixes

	entries map[string]dirEntry // keyed by lowercased setting key
	files   []fileRecord

	decryptor *Decryptor
}

// NewDirectorySource scans dir and builds the in-memory key -> content map.
// Plain files are named <key><plain-suffix>; secure files are named
// <key><plain-suffix><secure-suffix> and hold base64 PKCS#7 ciphertext.
// Two files resolving to the same case-insensitive key is a ConflictError
// naming the later file.
func NewDirectorySource(dir string) (*DirectorySource, error) {
	return newDirectorySource(dir, defaultSuffixes())
}

func newDirectorySource(dir string, suffixes fileSuffixes) (*DirectorySource, error) {
	s := &DirectorySource{
		dir:      dir,
		suffixes: suffixes,
		entries:  make(map[string]dirEntry),
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil // absent directory is an empty source
		}
		return nil, fmt.Errorf("settings: failed to scan directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for _, name := range names {
		path := filepath.Join(dir, name)
		switch {
		case hasFold(name, suffixes.plain+suffixes.secure):
			key := name[:len(name)-len(suffixes.plain)-len(suffixes.secure)]
			if err := s.insert(key, path, true); err != nil {
				return nil, err
			}
		case hasFold(name, suffixes.secure):
			// Secure file without the plain suffix in front: the naming
			// contract is <key>.<plain-suffix>.<secure-suffix>, anything
			// else is fatal rather than silently mis-keyed.
			return nil, fmt.Errorf("%w: %s", ErrMalformedName, path)
		case hasFold(name, suffixes.plain):
			key := name[:len(name)-len(suffixes.plain)]
			if err := s.insert(key, path, false); err != nil {
				return nil, err
			}
		default:
			s.files = append(s.files, fileRecord{
				name: name,
				ext:  strings.ToLower(filepath.Ext(name)),
				path: path,
			})
		}
	}

	return s, nil
}

// insert reads the file content and records the entry, rejecting duplicates.
func (s *DirectorySource) insert(key, path string, secure bool) error {
	lower := strings.ToLower(key)
	if _, exists := s.entries[lower]; exists {
		return &ConflictError{Key: key, Path: path}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("settings: failed to read %q: %w", path, err)
	}
	s.entries[lower] = dirEntry{
		key:    key,
		raw:    string(raw),
		secure: secure,
		path:   path,
	}
	return nil
}

// GetSerializedSetting returns the raw content for key, decrypting it first
// when the key was flagged secure. An absent key is not an error.
func (s *DirectorySource) GetSerializedSetting(key string) (string, bool, error) {
	e, ok := s.entries[strings.ToLower(key)]
	if !ok {
		return "", false, nil
	}
	if !e.secure {
		return e.raw, true, nil
	}
	if s.decryptor == nil {
		return "", false, &DecryptionError{Key: key, File: filepath.Base(e.path)}
	}
	plaintext, err := s.decryptor.Decrypt(key, e.raw, filepath.Base(e.path))
	if err != nil {
		return "", false, err
	}
	return plaintext, true, nil
}

func (s *DirectorySource) Name() string { return "directory:" + s.dir }

// Dir returns the directory this source was built from.
func (s *DirectorySource) Dir() string { return s.dir }

// certificateFiles returns the discovered files carrying the certificate
// bundle extension, in scan order.
func (s *DirectorySource) certificateFiles() []fileRecord {
	var out []fileRecord
	for _, f := range s.files {
		if hasFold(f.name, s.suffixes.cert) {
			out = append(out, f)
		}
	}
	return out
}

// hasFold reports whether s ends with suffix, case-insensitively.
func hasFold(s, suffix string) bool {
	return len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
