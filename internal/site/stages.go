package site

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/buildstate"
	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/feeds"
	"github.com/inkwell-press/inkwell/internal/logfields"
	"github.com/inkwell-press/inkwell/internal/render"
)

func (b *Builder) stagePrepareOutput(_ context.Context, _ *buildState) error {
	if b.cfg.Build.Clean {
		if err := os.RemoveAll(b.cfg.Dirs.Output); err != nil {
			return fmt.Errorf("clean output directory: %w", err)
		}
	}
	if err := os.MkdirAll(b.cfg.Dirs.Output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func (b *Builder) stageDiscover(_ context.Context, state *buildState) error {
	files, err := content.NewDiscovery(b.cfg.Dirs.Content).Discover()
	if err != nil {
		return err
	}
	for _, file := range files {
		if file.IsAsset {
			state.assets = append(state.assets, file)
		} else {
			state.files = append(state.files, file)
		}
	}
	return nil
}

func (b *Builder) stageLoadPages(ctx context.Context, state *buildState) error {
	pages := make([]*content.Page, 0, len(state.files))
	for _, file := range state.files {
		page, err := content.LoadPage(file.Path, file.RelPath)
		if err != nil {
			return err
		}
		b.applyGitInfo(page)
		pages = append(pages, page)
	}

	kept, drafts, future := content.Filter(pages, content.FilterOptions{
		Drafts: b.opts.Drafts || b.cfg.Build.Drafts,
		Future: b.opts.Future || b.cfg.Build.Future,
	})
	state.report.DraftsSkipped = drafts
	state.report.FutureSkipped = future
	state.pages = kept

	// Decide whether the incremental cache is usable for this build.
	state.fullRender = true
	if b.store != nil {
		sig, err := buildstate.ConfigSignature(b.cfg)
		if err != nil {
			return err
		}
		state.configHash = sig
		stored, err := b.store.ConfigHash(ctx)
		if err != nil {
			return err
		}
		state.fullRender = stored != sig
		if state.fullRender && stored != "" {
			slog.Info("Configuration changed, ignoring incremental cache")
		}
	}
	return nil
}

// applyGitInfo fills lastmod and author from git history when front matter
// left them empty.
func (b *Builder) applyGitInfo(page *content.Page) {
	if b.git == nil {
		return
	}
	info, ok := b.git.FileInfo(page.SourcePath)
	if !ok {
		return
	}
	if page.Meta.Lastmod == "" {
		page.Lastmod = info.Committed.When
	}
	if page.Meta.Author == "" {
		page.Meta.Author = info.Author
	}
}

func (b *Builder) stageAssemble(_ context.Context, state *buildState) error {
	content.SortByDate(state.pages)

	var posts []*content.Page
	for _, page := range state.pages {
		if !page.IsIndex {
			posts = append(posts, page)
		}
	}
	content.LinkPrevNext(posts)

	state.taxonomies = content.CollectTaxonomies(posts, b.cfg.Site.Taxonomies)
	return nil
}

func (b *Builder) stageRenderPages(ctx context.Context, state *buildState) error {
	for _, page := range state.pages {
		html, err := b.renderer.Render(page.Body)
		if err != nil {
			return fmt.Errorf("page %s: %w", page.RelPath, err)
		}
		page.HTML = template.HTML(html)
		if err := b.summarize(page, html); err != nil {
			return err
		}

		if page.IsIndex {
			continue // written by the index stage
		}
		state.report.Pages++

		outPath := filepath.Join(b.cfg.Dirs.Output, filepath.FromSlash(page.OutputPath()))
		if !state.fullRender && b.store != nil {
			cached, ok, err := b.store.FileHash(ctx, page.RelPath)
			if err != nil {
				return err
			}
			if ok && cached == page.SourceHash && fileExists(outPath) {
				state.report.CacheSkipped++
				continue
			}
		}

		if err := b.writeHTML(outPath, render.KindSingle, &render.Data{
			Site:        &b.cfg.Site,
			Page:        page,
			Title:       page.Title(),
			Description: page.Summary,
			Permalink:   page.Permalink(),
			LiveReload:  b.opts.LiveReload,
		}); err != nil {
			return err
		}

		if b.store != nil {
			if err := b.store.PutFileHash(ctx, page.RelPath, page.SourceHash); err != nil {
				return err
			}
		}

		if err := b.writeAliases(page); err != nil {
			return err
		}
	}
	return nil
}

// summarize fills page.Summary using description, the <!--more--> divider,
// or a truncated excerpt, in that order.
func (b *Builder) summarize(page *content.Page, renderedHTML []byte) error {
	if page.Meta.Description != "" {
		page.Summary = page.Meta.Description
		return nil
	}
	if before := content.BodyBeforeDivider(page); before != nil {
		html, err := b.renderer.Render(before)
		if err != nil {
			return fmt.Errorf("page %s summary: %w", page.RelPath, err)
		}
		page.Summary = content.PlainText(html)
		return nil
	}
	page.Summary = content.TruncateWords(content.PlainText(renderedHTML), b.cfg.Build.SummaryLength)
	return nil
}

func (b *Builder) stageRenderIndexes(_ context.Context, state *buildState) error {
	var posts []*content.Page
	indexBySection := map[string]*content.Page{}
	for _, page := range state.pages {
		if page.IsIndex {
			indexBySection[page.Section] = page
		} else {
			posts = append(posts, page)
		}
	}

	// Home page.
	homePosts := posts
	if limit := b.cfg.Build.PostsPerIndex; limit > 0 && len(homePosts) > limit {
		homePosts = homePosts[:limit]
	}
	homeData := &render.Data{
		Site:       &b.cfg.Site,
		Pages:      homePosts,
		Permalink:  "/",
		LiveReload: b.opts.LiveReload,
	}
	if home := indexBySection[""]; home != nil {
		homeData.Content = home.HTML
		homeData.Description = home.Summary
	}
	if err := b.writeHTML(filepath.Join(b.cfg.Dirs.Output, "index.html"), render.KindHome, homeData); err != nil {
		return err
	}

	// Section list pages.
	for section, sectionPages := range content.BySection(posts) {
		if section == "" {
			continue // root pages appear on the home page only
		}
		data := &render.Data{
			Site:       &b.cfg.Site,
			Pages:      sectionPages,
			Title:      content.Titleize(strings.ReplaceAll(section, "-", " ")),
			Permalink:  "/" + section + "/",
			LiveReload: b.opts.LiveReload,
		}
		if idx := indexBySection[section]; idx != nil {
			data.Content = idx.HTML
			data.Title = idx.Title()
			data.Description = idx.Summary
		}
		out := filepath.Join(b.cfg.Dirs.Output, section, "index.html")
		if err := b.writeHTML(out, render.KindList, data); err != nil {
			return err
		}
	}

	// Taxonomy terms and per-term list pages.
	plurals := make([]string, 0, len(state.taxonomies))
	for plural := range state.taxonomies {
		plurals = append(plurals, plural)
	}
	sort.Strings(plurals)
	for _, plural := range plurals {
		taxonomy := state.taxonomies[plural]
		termsOut := filepath.Join(b.cfg.Dirs.Output, plural, "index.html")
		err := b.writeHTML(termsOut, render.KindTerms, &render.Data{
			Site:         &b.cfg.Site,
			Title:        content.Titleize(plural),
			Terms:        taxonomy.SortedTerms(),
			TaxonomyBase: "/" + plural + "/",
			Permalink:    "/" + plural + "/",
			LiveReload:   b.opts.LiveReload,
		})
		if err != nil {
			return err
		}

		for slug, term := range taxonomy.Terms {
			pages := append([]*content.Page(nil), term.Pages...)
			content.SortByDate(pages)
			out := filepath.Join(b.cfg.Dirs.Output, plural, slug, "index.html")
			err := b.writeHTML(out, render.KindList, &render.Data{
				Site:       &b.cfg.Site,
				Pages:      pages,
				Title:      term.Name,
				Permalink:  "/" + plural + "/" + slug + "/",
				LiveReload: b.opts.LiveReload,
			})
			if err != nil {
				return err
			}
		}
	}

	// 404 page at the output root, where static hosts expect it.
	return b.writeHTML(filepath.Join(b.cfg.Dirs.Output, "404.html"), render.KindNotFound, &render.Data{
		Site:       &b.cfg.Site,
		Title:      "Page not found",
		LiveReload: b.opts.LiveReload,
	})
}

func (b *Builder) stageFeeds(_ context.Context, state *buildState) error {
	if b.cfg.Site.BaseURL == "" {
		if b.cfg.Feeds.RSS || b.cfg.Feeds.Sitemap {
			slog.Warn("Skipping feeds: site.base_url is not configured")
		}
		return nil
	}

	var posts []*content.Page
	for _, page := range state.pages {
		if !page.IsIndex {
			posts = append(posts, page)
		}
	}

	if b.cfg.Feeds.RSS {
		f, err := os.Create(filepath.Join(b.cfg.Dirs.Output, "index.xml"))
		if err != nil {
			return fmt.Errorf("create rss feed: %w", err)
		}
		err = feeds.WriteRSS(f, &b.cfg.Site, posts, b.cfg.Feeds.Limit)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write rss feed: %w", err)
		}
	}

	if b.cfg.Feeds.Sitemap {
		f, err := os.Create(filepath.Join(b.cfg.Dirs.Output, "sitemap.xml"))
		if err != nil {
			return fmt.Errorf("create sitemap: %w", err)
		}
		err = feeds.WriteSitemap(f, &b.cfg.Site, posts)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write sitemap: %w", err)
		}
	}
	return nil
}

func (b *Builder) stageCopyStatic(_ context.Context, state *buildState) error {
	// Assets living next to content keep their content-relative paths.
	for _, asset := range state.assets {
		dst := filepath.Join(b.cfg.Dirs.Output, filepath.FromSlash(asset.RelPath))
		if err := copyFile(asset.Path, dst); err != nil {
			return fmt.Errorf("copy asset %s: %w", asset.RelPath, err)
		}
		state.report.Assets++
	}

	// The static dir is copied verbatim onto the output root.
	if info, err := os.Stat(b.cfg.Dirs.Static); err == nil && info.IsDir() {
		n, err := copyDir(b.cfg.Dirs.Static, b.cfg.Dirs.Output)
		if err != nil {
			return fmt.Errorf("copy static dir: %w", err)
		}
		state.report.Assets += n
	}
	return nil
}

func (b *Builder) stagePersistState(ctx context.Context, state *buildState) error {
	if b.store == nil {
		return nil
	}

	if err := b.store.SetConfigHash(ctx, state.configHash); err != nil {
		return err
	}

	keep := make([]string, 0, len(state.pages))
	for _, page := range state.pages {
		keep = append(keep, page.RelPath)
	}
	if err := b.store.PruneExcept(ctx, keep); err != nil {
		return err
	}

	return b.store.RecordBuild(ctx, buildstate.BuildRecord{
		ID:         state.report.BuildID,
		StartedAt:  state.report.StartedAt,
		FinishedAt: time.Now(),
		Pages:      state.report.Pages,
		Assets:     state.report.Assets,
		Outcome:    "success",
	})
}

// writeHTML renders a template kind into the output file, creating parent
// directories as needed.
func (b *Builder) writeHTML(outPath, kind string, data *render.Data) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir for %s: %w", outPath, err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	err = b.engine.Render(f, kind, data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	slog.Debug("Wrote page", logfields.Path(outPath))
	return nil
}

// aliasTemplate is the redirect stub written for front matter aliases.
const aliasTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="0; url=%s"><link rel="canonical" href="%s"></head></html>
`

func (b *Builder) writeAliases(page *content.Page) error {
	for _, alias := range page.Meta.Aliases {
		rel := strings.Trim(alias, "/")
		if rel == "" {
			continue
		}
		outPath := filepath.Join(b.cfg.Dirs.Output, filepath.FromSlash(rel), "index.html")
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("create alias dir: %w", err)
		}
		target := page.Permalink()
		if b.cfg.Site.BaseURL != "" {
			target = strings.TrimSuffix(b.cfg.Site.BaseURL, "/") + target
		}
		body := fmt.Sprintf(aliasTemplate, target, target)
		if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
			return fmt.Errorf("write alias %s: %w", alias, err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
