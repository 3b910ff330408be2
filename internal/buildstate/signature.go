package buildstate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/inkwell-press/inkwell/internal/config"
)

// HashBytes returns the hex sha256 of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ConfigSignature computes a deterministic hash of the parts of the
// configuration that affect rendered output. Two builds with identical
// signatures and identical file hashes can safely reuse each other's pages.
func ConfigSignature(cfg *config.Config) (string, error) {
	// Serialize the render-relevant subset to JSON for hashing. Server
	// settings are excluded: they never change page bytes.
	normalized := struct {
		Site  config.SiteConfig  `json:"site"`
		Build config.BuildConfig `json:"build"`
		Feeds config.FeedsConfig `json:"feeds"`
	}{
		Site:  cfg.Site,
		Build: cfg.Build,
		Feeds: cfg.Feeds,
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("marshal config for signature: %w", err)
	}
	return HashBytes(data), nil
}
