package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/config"
)

func TestInitSite_WritesSkeleton(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, InitSite(dir, "My Test Blog", false))

	for _, rel := range []string{
		"inkwell.yaml",
		"content/_index.md",
		"content/posts/_index.md",
		"content/posts/hello-world.md",
		"content/about.md",
		"static/css/style.css",
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "content", "_index.md"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "My Test Blog")

	// The generated config loads and validates.
	cfg, err := config.Load(filepath.Join(dir, "inkwell.yaml"))
	require.NoError(t, err)
	require.Equal(t, "My Test Blog", cfg.Site.Title)
	require.True(t, cfg.Feeds.RSS)
}

func TestInitSite_RefusesExistingSite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitSite(dir, "First", false))

	err := InitSite(dir, "Second", false)
	require.ErrorIs(t, err, ErrSiteExists)

	require.NoError(t, InitSite(dir, "Second", true))
	raw, err := os.ReadFile(filepath.Join(dir, "content", "_index.md"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "Second")
}

func TestNewPost_FromTitle(t *testing.T) {
	dir := t.TempDir()

	path, err := NewPost(dir, "Why KVM Is Fast")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "posts", "why-kvm-is-fast.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "---\n"))
	require.Contains(t, string(raw), "title: Why KVM Is Fast")
	require.Contains(t, string(raw), "draft: true")
	require.Contains(t, string(raw), "date: ")
}

func TestNewPost_FromPath(t *testing.T) {
	dir := t.TempDir()

	path, err := NewPost(dir, "notes/scratch-pad.md")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "notes", "scratch-pad.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "title: Scratch Pad")

	_, err = NewPost(dir, "notes/scratch-pad.md")
	require.ErrorIs(t, err, ErrPostExists)
}
