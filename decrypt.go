// File: settings/decrypt.go
package settings

import (
	"crypto"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/digitorus/pkcs7"
	"golang.org/x/crypto/pkcs12"
)

// Identity is a certificate paired with its private key, usable for
// envelope decryption.
type Identity struct {
	Certificate *x509.Certificate
	PrivateKey  crypto.PrivateKey
}

// CertificateStore enumerates decryption identities from an external store,
// such as a machine or user identity store.
type CertificateStore interface {
	Identities() ([]Identity, error)
}

// PasswordFunc maps a certificate bundle file name to an optional password.
type PasswordFunc func(fileName string) (string, bool)

// NoPassword is the default password resolver: every bundle loads without
// a password.
func NoPassword(string) (string, bool) { return "", false }

// Decryptor decrypts secure setting values using certificates gathered from
// the active directory sources and an optional certificate store.
type Decryptor struct {
	sources  []*DirectorySource
	store    CertificateStore
	password PasswordFunc
}

// NewDecryptor creates a decryptor over the given directory sources. Both
// store and password may be nil.
func NewDecryptor(sources []*DirectorySource, store CertificateStore, password PasswordFunc) *Decryptor {
	if password == nil {
		password = NoPassword
	}
	return &Decryptor{sources: sources, store: store, password: password}
}

// Decrypt base64-decodes the PKCS#7 envelope and tries every candidate
// identity in gathering order, returning the plaintext of the first that
// succeeds. It never returns partial output: failure of all candidates is a
// DecryptionError.
func (d *Decryptor) Decrypt(key, encoded, fileName string) (string, error) {
	der, err := base64.StdEncoding.DecodeString(stripWhitespace(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 in %s: %v", ErrDecryption, fileName, err)
	}
	envelope, err := pkcs7.Parse(der)
	if err != nil {
		return "", fmt.Errorf("%w: invalid PKCS#7 envelope in %s: %v", ErrDecryption, fileName, err)
	}

	candidates := d.gatherIdentities()
	for _, id := range candidates {
		if id.Certificate == nil || id.PrivateKey == nil {
			continue
		}
		plaintext, err := envelope.Decrypt(id.Certificate, id.PrivateKey)
		if err == nil {
			return string(plaintext), nil
		}
	}

	return "", &DecryptionError{Key: key, File: fileName, Candidates: len(candidates)}
}

// gatherIdentities collects candidates from every certificate bundle across
// the active directory sources, then from the certificate store. Bundles that
// fail to load are skipped rather than failing the decryption attempt.
func (d *Decryptor) gatherIdentities() []Identity {
	var out []Identity
	for _, src := range d.sources {
		for _, f := range src.certificateFiles() {
			data, err := os.ReadFile(f.path)
			if err != nil {
				continue
			}
			pw, _ := d.password(f.name)
			priv, cert, err := pkcs12.Decode(data, pw)
			if err != nil {
				continue
			}
			out = append(out, Identity{Certificate: cert, PrivateKey: priv})
		}
	}
	if d.store != nil {
		if ids, err := d.store.Identities(); err == nil {
			out = append(out, ids...)
		}
	}
	return out
}

// IdentityList is a fixed in-memory CertificateStore.
type IdentityList []Identity

func (l IdentityList) Identities() ([]Identity, error) { return l, nil }

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}
