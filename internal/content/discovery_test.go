package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscover_ClassifiesFiles(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "posts/first.md", "---\ntitle: First\n---\nbody\n")
	writePage(t, dir, "posts/diagram.png", "not-really-a-png")
	writePage(t, dir, "about.md", "# About\n")
	writePage(t, dir, "notes.docx", "ignored extension")
	writePage(t, dir, ".hidden/secret.md", "hidden dir skipped")
	writePage(t, dir, "posts/.draft.md", "hidden file skipped")

	files, err := NewDiscovery(dir).Discover()
	require.NoError(t, err)
	require.Len(t, files, 3)

	byRel := map[string]File{}
	for _, f := range files {
		byRel[f.RelPath] = f
	}

	require.False(t, byRel["posts/first.md"].IsAsset)
	require.Equal(t, "posts", byRel["posts/first.md"].Section)
	require.True(t, byRel["posts/diagram.png"].IsAsset)
	require.Equal(t, "", byRel["about.md"].Section)
}

func TestDiscover_MissingDir_ReturnsError(t *testing.T) {
	_, err := NewDiscovery("/nonexistent/content").Discover()
	require.Error(t, err)
}
