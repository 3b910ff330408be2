// Package gitinfo resolves page metadata (last modification time, author)
// from the content tree's git history. It is a soft dependency: a content
// tree outside a git repository degrades to file modification times.
package gitinfo

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/inkwell-press/inkwell/internal/logfields"
)

// ErrNoRepository indicates no git repository was found above the content dir.
var ErrNoRepository = errors.New("no git repository found")

// Info is what git history knows about a file.
type Info struct {
	Author    string
	Email     string
	Commit    string
	Committed object.Signature
}

// Resolver answers per-file history questions against one repository.
type Resolver struct {
	repo *git.Repository
	root string // worktree root, absolute
}

// NewResolver opens the repository containing dir, searching parent
// directories the way the git CLI does.
func NewResolver(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNoRepository, dir)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}

	return &Resolver{repo: repo, root: worktree.Filesystem.Root()}, nil
}

// FileInfo returns the most recent commit touching path (absolute or
// relative to the working directory). ok is false for untracked files.
func (r *Resolver) FileInfo(path string) (Info, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, false
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Info{}, false
	}
	rel = filepath.ToSlash(rel)

	iter, err := r.repo.Log(&git.LogOptions{
		FileName: &rel,
		Order:    git.LogOrderCommitterTime,
	})
	if err != nil {
		slog.Debug("git log failed", logfields.Path(rel), logfields.Error(err))
		return Info{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return Info{}, false
	}

	return Info{
		Author:    commit.Author.Name,
		Email:     commit.Author.Email,
		Commit:    commit.Hash.String(),
		Committed: commit.Author,
	}, true
}
