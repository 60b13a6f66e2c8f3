// File: settings/precedence_test.go
package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPrecedenceSeeding tests the pipe-delimited precedence setting
func TestPrecedenceSeeding(t *testing.T) {
	t.Run("PipeDelimited", func(t *testing.T) {
		lookup := func(key string) (string, bool) {
			if key == "Settings.Precedence" {
				return "Production| Staging |", true
			}
			return "", false
		}
		tiers := seedPrecedence("", lookup)
		assert.Equal(t, []string{"Production", "Staging"}, tiers)
	})

	t.Run("NamespacePrefix", func(t *testing.T) {
		lookup := func(key string) (string, bool) {
			if key == "Acme.Settings.Precedence" {
				return "A|B", true
			}
			return "", false
		}
		assert.Nil(t, seedPrecedence("", lookup))
		assert.Equal(t, []string{"A", "B"}, seedPrecedence("Acme", lookup))
	})

	t.Run("FirstDefiningLookupWins", func(t *testing.T) {
		env := func(string) (string, bool) { return "FromEnv", true }
		app := func(string) (string, bool) { return "FromApp", true }
		assert.Equal(t, []string{"FromEnv"}, seedPrecedence("", env, app))
	})

	t.Run("MissingSettingYieldsNil", func(t *testing.T) {
		assert.Nil(t, seedPrecedence("", nil, func(string) (string, bool) { return "", false }))
	})
}

// TestFinalTier tests the implicit terminating tier
func TestFinalTier(t *testing.T) {
	t.Run("AppendedWhenAbsent", func(t *testing.T) {
		assert.Equal(t, []string{"A", "B", "Common"}, withFinalTier([]string{"A", "B"}, "Common"))
	})

	t.Run("NotDuplicated", func(t *testing.T) {
		assert.Equal(t, []string{"A", "common"}, withFinalTier([]string{"A", "common"}, "Common"))
	})

	t.Run("EmptyList", func(t *testing.T) {
		assert.Equal(t, []string{"Common"}, withFinalTier(nil, "Common"))
	})
}
