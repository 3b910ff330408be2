package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_SortsKeysDeterministically(t *testing.T) {
	fields := map[string]any{
		"title": "Post",
		"draft": false,
		"tags":  []string{"go", "kvm"},
		"date":  "2026-08-30",
	}

	out, err := SerializeYAML(fields, Style{})
	require.NoError(t, err)

	s := string(out)
	require.Less(t, strings.Index(s, "date:"), strings.Index(s, "draft:"))
	require.Less(t, strings.Index(s, "draft:"), strings.Index(s, "tags:"))
	require.Less(t, strings.Index(s, "tags:"), strings.Index(s, "title:"))

	// Same input must serialize identically every time.
	again, err := SerializeYAML(fields, Style{})
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestSerializeYAML_EmptyMap_ReturnsEmpty(t *testing.T) {
	out, err := SerializeYAML(map[string]any{}, Style{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSerializeYAML_CRLFStyle(t *testing.T) {
	out, err := SerializeYAML(map[string]any{"a": 1}, Style{Newline: "\r\n"})
	require.NoError(t, err)
	require.Equal(t, "a: 1\r\n", string(out))
}

func TestSerializeYAML_RoundTripsThroughParse(t *testing.T) {
	fields := map[string]any{
		"title":  "Hello",
		"weight": 10,
		"nested": map[string]any{"k": "v"},
	}

	out, err := SerializeYAML(fields, Style{})
	require.NoError(t, err)

	parsed, err := ParseYAML(out)
	require.NoError(t, err)
	require.Equal(t, "Hello", parsed["title"])
	require.Equal(t, 10, parsed["weight"])
}
