package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/typeconv/pkg/typeconv/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := config.DefaultSettings()
	assert.Equal(t, config.PolicyError, s.NotFound)
	assert.False(t, s.Lenient())
	assert.Empty(t, s.Culture)
	assert.True(t, s.AutoReset)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    config.NotFoundPolicy
		wantErr bool
	}{
		{"error", config.PolicyError, false},
		{"Strict", config.PolicyError, false},
		{"", config.PolicyError, false},
		{"default", config.PolicyDefault, false},
		{" LENIENT ", config.PolicyDefault, false},
		{"maybe", config.PolicyError, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotFoundPolicy_String(t *testing.T) {
	assert.Equal(t, "error", config.PolicyError.String())
	assert.Equal(t, "default", config.PolicyDefault.String())
	assert.Equal(t, "unknown", config.NotFoundPolicy(9).String())
}

func TestSettingsFrom(t *testing.T) {
	t.Run("nested keys", func(t *testing.T) {
		s, err := config.SettingsFrom(config.New(map[string]any{
			"typeconv": map[string]any{
				"not_found":  "default",
				"culture":    "fr-FR",
				"auto_reset": false,
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, config.PolicyDefault, s.NotFound)
		assert.True(t, s.Lenient())
		assert.Equal(t, "fr-FR", s.Culture)
		assert.False(t, s.AutoReset)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		s, err := config.SettingsFrom(config.New(nil))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultSettings(), s)
	})

	t.Run("bad policy", func(t *testing.T) {
		_, err := config.SettingsFrom(config.New(map[string]any{
			"typeconv.not_found": "sometimes",
		}))
		assert.ErrorContains(t, err, "unknown not-found policy")
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("typeconv:\n  not_found: lenient\n"), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, s.Lenient())
	assert.True(t, s.AutoReset)

	_, err = config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
