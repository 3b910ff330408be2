package lint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, root, rel, body string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
}

func issuesByRule(result *Result) map[string][]Issue {
	byRule := map[string][]Issue{}
	for _, issue := range result.Issues {
		byRule[issue.Rule] = append(byRule[issue.Rule], issue)
	}
	return byRule
}

func TestLint_CleanTree(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/good.md", "---\ntitle: Good\ndate: 2026-01-01\n---\nFine.\n")

	linter := NewLinter(nil, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)
	require.Empty(t, result.Issues)
	require.Equal(t, 1, result.FilesTotal)
	require.False(t, result.HasErrors())
}

func TestLint_ReportsFrontMatterProblems(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/broken.md", "---\ntitle: [unclosed\n---\nBody.\n")
	writeContent(t, root, "content/posts/untitled.md", "---\ndate: 2026-01-01\n---\nBody.\n")
	writeContent(t, root, "content/posts/baddate.md", "---\ntitle: X\ndate: yesterday\n---\nBody.\n")

	linter := NewLinter(nil, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)

	byRule := issuesByRule(result)
	require.Len(t, byRule["front-matter"], 1)
	require.Equal(t, SeverityError, byRule["front-matter"][0].Severity)
	require.Len(t, byRule["title"], 1)
	require.Equal(t, SeverityWarning, byRule["title"][0].Severity)
	require.Len(t, byRule["date"], 1)
	require.Equal(t, SeverityError, byRule["date"][0].Severity)
}

func TestLint_FlagsStaleDrafts(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/stale.md", "---\ntitle: Stale\ndate: 2020-01-01\ndraft: true\n---\nStill hidden.\n")

	linter := NewLinter(nil, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)

	drafts := issuesByRule(result)["draft"]
	require.Len(t, drafts, 1)
	require.Equal(t, SeverityInfo, drafts[0].Severity)
}

func TestLint_IndexPagesNeedNoTitleWarning(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/_index.md", "---\n---\n")

	linter := NewLinter(nil, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)
	require.Empty(t, issuesByRule(result)["title"])
}

func TestLint_DetectsDuplicatePermalinks(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/one.md", "---\ntitle: One\nslug: same\n---\nA.\n")
	writeContent(t, root, "content/posts/two.md", "---\ntitle: Two\nslug: same\n---\nB.\n")

	linter := NewLinter(nil, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)

	dupes := issuesByRule(result)["duplicate-slug"]
	require.Len(t, dupes, 1)
	require.Equal(t, SeverityError, dupes[0].Severity)
	require.Contains(t, dupes[0].Message, "/posts/same/")
}

func TestLint_FlagsBrokenRelativeLinks(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/here.md", "---\ntitle: Here\n---\nSee [other](other.md) and [gone](missing.md) and [ext](https://example.com).\n")
	writeContent(t, root, "content/posts/other.md", "---\ntitle: Other\n---\nHi.\n")
	writeContent(t, root, "static/img/logo.png", "png")
	writeContent(t, root, "content/posts/assets.md", "---\ntitle: Assets\n---\n![ok](/img/logo.png) ![nope](/img/missing.png)\n")

	linter := NewLinter(nil, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)

	links := issuesByRule(result)["links"]
	require.Len(t, links, 2)
	for _, issue := range links {
		require.Equal(t, SeverityWarning, issue.Severity)
	}
}

func TestLint_QuietKeepsOnlyErrors(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "content/posts/untitled.md", "---\ndate: not-a-date\n---\nBody.\n")

	linter := NewLinter(&Config{Quiet: true}, filepath.Join(root, "content"), filepath.Join(root, "static"))
	result, err := linter.Lint()
	require.NoError(t, err)
	for _, issue := range result.Issues {
		require.Equal(t, SeverityError, issue.Severity)
	}
	require.True(t, result.HasErrors())
}

func TestFormatter_JSONRoundTrips(t *testing.T) {
	result := &Result{
		FilesTotal: 2,
		Issues: []Issue{
			{FilePath: "posts/a.md", Severity: SeverityError, Rule: "date", Message: "unparseable date"},
			{FilePath: "posts/b.md", Severity: SeverityWarning, Rule: "title", Message: "missing title"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&buf, result, "content"))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 2, out.FilesTotal)
	require.Equal(t, 1, out.ErrorCount)
	require.Equal(t, 1, out.WarningCount)
	require.Len(t, out.Issues, 2)
	require.Equal(t, "ERROR", out.Issues[0].Severity)
}

func TestFormatter_TextSummarizes(t *testing.T) {
	result := &Result{
		FilesTotal: 1,
		Issues: []Issue{
			{FilePath: "posts/a.md", Severity: SeverityError, Rule: "date", Message: "unparseable date", Fix: "use 2006-01-02"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&buf, result, "content"))
	out := buf.String()
	require.Contains(t, out, "posts/a.md")
	require.Contains(t, out, "ERROR [date]")
	require.Contains(t, out, "Fix: use 2006-01-02")
	require.Contains(t, out, "1 error")
}
