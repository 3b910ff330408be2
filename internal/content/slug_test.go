package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"KVM Internals", "kvm-internals"},
		{"Hello, World!", "hello-world"},
		{"café au lait", "cafe-au-lait"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcödé", "unicode"},
		{"100% CPU", "100-cpu"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestTitleize(t *testing.T) {
	require.Equal(t, "Kvm Internals", Titleize("kvm internals"))
}
