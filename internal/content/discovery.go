package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-press/inkwell/internal/logfields"
)

// ErrContentWalkFailed indicates the content directory could not be traversed.
var ErrContentWalkFailed = errors.New("content directory walk failed")

// File represents a discovered content file or asset.
type File struct {
	Path    string // absolute path
	RelPath string // path relative to the content dir
	Section string // top-level directory, "" for root
	IsAsset bool   // true for images and other non-markdown files
}

// Discovery walks a content directory and classifies its files.
type Discovery struct {
	contentDir string
}

// NewDiscovery creates a discovery instance for the given content directory.
func NewDiscovery(contentDir string) *Discovery {
	return &Discovery{contentDir: contentDir}
}

// Discover finds all Markdown files and assets under the content directory.
// Hidden files and directories are skipped.
func (d *Discovery) Discover() ([]File, error) {
	if _, err := os.Stat(d.contentDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory not found: %s", d.contentDir)
	}

	var files []File
	err := filepath.WalkDir(d.contentDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if strings.HasPrefix(entry.Name(), ".") && entry.Name() != "." {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		isMarkdown := isMarkdownFile(p)
		isAssetFile := isAsset(p)
		if !isMarkdown && !isAssetFile {
			return nil
		}

		relPath, err := filepath.Rel(d.contentDir, p)
		if err != nil {
			return fmt.Errorf("invalid relative path: %w", err)
		}
		relPath = filepath.ToSlash(relPath)

		file := File{
			Path:    p,
			RelPath: relPath,
			Section: sectionOf(relPath),
			IsAsset: isAssetFile,
		}
		files = append(files, file)

		fileType := "page"
		if isAssetFile {
			fileType = "asset"
		}
		slog.Debug("Discovered file",
			logfields.Path(relPath),
			logfields.Section(file.Section),
			slog.String("type", fileType))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrContentWalkFailed, d.contentDir, err)
	}

	slog.Info("Content discovered", logfields.Count(len(files)), logfields.Path(d.contentDir))
	return files, nil
}

// isMarkdownFile checks if a file is a markdown file.
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown" || ext == ".mdown" || ext == ".mkd"
}

// isAsset checks if a file is an asset (image, etc.) copied through verbatim.
func isAsset(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	assetExtensions := []string{
		// Images
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".bmp", ".ico",
		// Documents
		".pdf", ".txt",
		// Video
		".mp4", ".webm", ".ogv",
		// Other
		".css", ".js", ".csv", ".json", ".xml",
	}
	for _, assetExt := range assetExtensions {
		if ext == assetExt {
			return true
		}
	}
	return false
}
