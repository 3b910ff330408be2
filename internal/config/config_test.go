package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "site:\n  title: Test Blog\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Test Blog", cfg.Site.Title)
	require.Equal(t, "content", cfg.Dirs.Content)
	require.Equal(t, "public", cfg.Dirs.Output)
	require.Equal(t, "en", cfg.Site.Language)
	require.Equal(t, 70, cfg.Build.SummaryLength)
	require.Equal(t, "tags", cfg.Site.Taxonomies["tag"])
	require.Equal(t, "categories", cfg.Site.Taxonomies["category"])
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("INKWELL_TEST_TITLE", "From Env")
	path := writeConfig(t, "site:\n  title: ${INKWELL_TEST_TITLE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.Site.Title)
}

func TestValidate_RejectsRelativeBaseURL(t *testing.T) {
	path := writeConfig(t, "site:\n  title: T\n  base_url: /not/absolute\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestValidate_RejectsOutputEqualsContent(t *testing.T) {
	path := writeConfig(t, "dirs:\n  content: site\n  output: site\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidDirs)
}

func TestValidate_RejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "server:\n  quiet_window: soon\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Technical Blog", cfg.Site.Title)
	require.True(t, cfg.Feeds.RSS)

	// Second init without force must refuse to overwrite.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
