package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pantrycrm/internal/domain"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService()

	cfg := &Config{
		Version:      1,
		DatabasePath: "/tmp/crm.db",
		DefaultKind:  domain.KindOpportunity,
		UISettings: UISettings{
			ShowSegment:    true,
			AutosaveOnExit: false,
		},
	}

	require.NoError(t, svc.SaveToPath(cfg, path), "save should succeed")

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err, "load should succeed")
	require.Equal(t, cfg, loaded, "config should survive a round trip")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	svc := NewConfigService()

	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err, "a missing explicit path is an error")
}

func TestLoadDefaultsEmptyKind(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\ndatabase_path = \"x.db\"\n"), 0644))

	svc := NewConfigService()
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, domain.KindOrganization, cfg.DefaultKind,
		"missing default_kind falls back to organizations")
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	require.Equal(t, 1, cfg.Version)
	require.NotEmpty(t, cfg.DatabasePath)
	require.Equal(t, domain.KindOrganization, cfg.DefaultKind)
	require.True(t, cfg.UISettings.AutosaveOnExit)
}
