package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithSourcesDefaultsOnly(t *testing.T) {
	root := t.TempDir()
	tc, err := LoadWithSources(root)
	require.NoError(t, err)
	assert.Equal(t, Default().Styles, tc.Config.Styles)
	assert.Equal(t, SourceDefault, tc.Sources["styles"])
}

func TestLoadWithSourcesProjectFileOverrides(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ConfigDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigDir, ConfigFileName),
		[]byte("styles: [snake, kebab]\nignore_ambiguous: true\n"), 0644))

	tc, err := LoadWithSources(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"snake", "kebab"}, tc.Config.Styles)
	assert.True(t, tc.Config.IgnoreAmbiguous)
	assert.Equal(t, SourceProject, tc.Sources["styles"])
}

func TestLoadWithSourcesEnvOverridesProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ConfigDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigDir, ConfigFileName),
		[]byte("styles: [snake]\n"), 0644))

	t.Setenv("RENAMIFY_STYLES", "camel,pascal")
	tc, err := LoadWithSources(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"camel", "pascal"}, tc.Config.Styles)
	assert.Equal(t, SourceEnv, tc.Sources["styles"])
}
