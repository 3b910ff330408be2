package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, relPath, body string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	return full
}

func TestLoadPage_YAMLFrontMatter(t *testing.T) {
	dir := t.TempDir()
	src := writePage(t, dir, "posts/kvm-internals.md",
		"---\ntitle: KVM Internals\ndate: 2026-03-14\ntags: [kvm, linux]\n---\n# Hypervisors\n\nSome prose.\n")

	page, err := LoadPage(src, "posts/kvm-internals.md")
	require.NoError(t, err)
	require.Equal(t, "KVM Internals", page.Meta.Title)
	require.Equal(t, "posts", page.Section)
	require.Equal(t, "kvm-internals", page.Slug)
	require.Equal(t, []string{"kvm", "linux"}, page.Meta.Tags)
	require.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), page.Date)
	require.Equal(t, page.Date, page.Lastmod)
	require.Contains(t, string(page.Body), "# Hypervisors")
	require.False(t, page.IsIndex)
}

func TestLoadPage_TOMLFrontMatter(t *testing.T) {
	dir := t.TempDir()
	src := writePage(t, dir, "posts/cgroups.md",
		"+++\ntitle = \"Control Groups\"\ndate = \"2025-11-02\"\ndraft = true\n+++\nbody\n")

	page, err := LoadPage(src, "posts/cgroups.md")
	require.NoError(t, err)
	require.Equal(t, "Control Groups", page.Meta.Title)
	require.True(t, page.Meta.Draft)
	require.Equal(t, 2025, page.Date.Year())
}

func TestLoadPage_NoFrontMatter_UsesFilename(t *testing.T) {
	dir := t.TempDir()
	src := writePage(t, dir, "about.md", "# About\n")

	page, err := LoadPage(src, "about.md")
	require.NoError(t, err)
	require.Equal(t, "", page.Section)
	require.Equal(t, "about", page.Slug)
	require.Equal(t, "About", page.Title())
	require.False(t, page.Date.IsZero()) // falls back to file mtime
}

func TestLoadPage_BadDate_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	src := writePage(t, dir, "bad.md", "---\ntitle: X\ndate: someday\n---\nbody\n")

	_, err := LoadPage(src, "bad.md")
	require.ErrorIs(t, err, ErrBadDate)
}

func TestPage_Permalink(t *testing.T) {
	cases := []struct {
		name string
		page Page
		want string
	}{
		{"post in section", Page{Section: "posts", Slug: "kvm"}, "/posts/kvm/"},
		{"root page", Page{Slug: "about"}, "/about/"},
		{"section index", Page{Section: "posts", Slug: "_index", IsIndex: true}, "/posts/"},
		{"home index", Page{Slug: "_index", IsIndex: true}, "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.page.Permalink())
		})
	}
}

func TestPage_OutputPath(t *testing.T) {
	page := Page{Section: "posts", Slug: "kvm"}
	require.Equal(t, "posts/kvm/index.html", page.OutputPath())

	home := Page{IsIndex: true}
	require.Equal(t, "index.html", home.OutputPath())
}

func TestParseDate_AcceptedLayouts(t *testing.T) {
	for _, value := range []string{
		"2026-08-30",
		"2026-08-30T12:00:00",
		"2026-08-30 12:00:00",
		"2026-08-30T12:00:00Z",
	} {
		_, err := ParseDate(value)
		require.NoError(t, err, value)
	}

	_, err := ParseDate("30/08/2026")
	require.Error(t, err)
}
