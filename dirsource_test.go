// File: settings/dirsource_test.go
package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDirectoryScan tests the one-time directory scan
func TestDirectoryScan(t *testing.T) {
	t.Run("PlainFiles", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "CacheSettings.json"), []byte(`{"host":"a"}`), 0644)
		os.WriteFile(filepath.Join(dir, "QueueSettings.json"), []byte(`{"depth":5}`), 0644)

		src, err := NewDirectorySource(dir)
		require.NoError(t, err)

		v, ok, err := src.GetSerializedSetting("CacheSettings")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"host":"a"}`, v)
	})

	t.Run("CaseInsensitiveLookup", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "CacheSettings.json"), []byte(`{}`), 0644)

		src, err := NewDirectorySource(dir)
		require.NoError(t, err)

		_, ok, err := src.GetSerializedSetting("cachesettings")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("AbsentKeyContinuesChain", func(t *testing.T) {
		src, err := NewDirectorySource(t.TempDir())
		require.NoError(t, err)

		_, ok, err := src.GetSerializedSetting("Missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MissingDirectoryIsEmptySource", func(t *testing.T) {
		src, err := NewDirectorySource(filepath.Join(t.TempDir(), "does", "not", "exist"))
		require.NoError(t, err)

		_, ok, err := src.GetSerializedSetting("Anything")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NeverRescans", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "CacheSettings.json")
		os.WriteFile(path, []byte(`first`), 0644)

		src, err := NewDirectorySource(dir)
		require.NoError(t, err)

		os.WriteFile(path, []byte(`second`), 0644)
		os.WriteFile(filepath.Join(dir, "New.json"), []byte(`late`), 0644)

		v, ok, _ := src.GetSerializedSetting("CacheSettings")
		assert.True(t, ok)
		assert.Equal(t, "first", v)

		_, ok, _ = src.GetSerializedSetting("New")
		assert.False(t, ok)
	})

	t.Run("SubdirectoriesIgnored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "Nested.json"), 0755))

		src, err := NewDirectorySource(dir)
		require.NoError(t, err)

		_, ok, _ := src.GetSerializedSetting("Nested")
		assert.False(t, ok)
	})
}

// TestDirectoryConflicts tests the uniform duplicate-key handling
func TestDirectoryConflicts(t *testing.T) {
	t.Run("PlainPlainDuplicate", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "Alpha.json"), []byte(`{}`), 0644)
		os.WriteFile(filepath.Join(dir, "alpha.JSON"), []byte(`{}`), 0644)

		_, err := NewDirectorySource(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("PlainSecureDuplicateNamesSecondFile", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "X.json"), []byte(`{}`), 0644)
		os.WriteFile(filepath.Join(dir, "X.json.secure"), []byte(`Y2lwaGVy`), 0644)

		_, err := NewDirectorySource(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflict)

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "X", conflict.Key)
		assert.Equal(t, filepath.Join(dir, "X.json.secure"), conflict.Path)
	})

	t.Run("MalformedSecureName", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "Broken.secure"), []byte(`Y2lwaGVy`), 0644)

		_, err := NewDirectorySource(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedName)
		assert.Contains(t, err.Error(), "Broken.secure")
	})
}

// TestCertificateDiscovery tests that non-setting files are recorded
func TestCertificateDiscovery(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "CacheSettings.json"), []byte(`{}`), 0644)
	os.WriteFile(filepath.Join(dir, "decrypt.pfx"), []byte(`bundle`), 0644)
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte(`docs`), 0644)

	src, err := NewDirectorySource(dir)
	require.NoError(t, err)

	certs := src.certificateFiles()
	require.Len(t, certs, 1)
	assert.Equal(t, "decrypt.pfx", certs[0].name)
}
