// Package theme provides the embedded default layout templates.
// A site's layouts directory overrides these file-by-file.
package theme

import "embed"

// Templates contains the built-in layout files.
//
//go:embed all:templates
var Templates embed.FS
