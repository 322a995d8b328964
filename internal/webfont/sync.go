// Package webfont mirrors the Google Fonts files referenced by a font data
// manifest into a local directory.
//
// For every family and weight the CSS2 API is queried, every url(...) in the
// stylesheet is downloaded once, and files the manifest no longer references
// are pruned. WOFF2 payloads are optionally converted to SFNT so the image
// renderer can load them.
package webfont

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tdewolff/font"
	"golang.org/x/image/font/opentype"
	"tools.welcomer/dev/fontkit/internal/atomicfile"
	"tools.welcomer/dev/fontkit/internal/fonts"
)

// fontURLRe extracts font file URLs from a CSS2 response.
// Matches: url(https://fonts.gstatic.com/s/inter/v18/xxx.woff2)
var fontURLRe = regexp.MustCompile(`url\(\s*['"]?([^'")\s]+)['"]?\s*\)`)

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Getter fetches a URL and returns the response body. *fetch.Client
// satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Options configures a [Syncer].
type Options struct {
	// Dir is the directory font files are stored in. It is created if
	// missing.
	Dir string
	// CSSURL is the CSS2 endpoint, e.g. https://fonts.googleapis.com/css2.
	CSSURL string
	// ConvertSFNT stores WOFF2 payloads as validated TTF files.
	ConvertSFNT bool
	// Keep lists doublestar patterns of file names that are never pruned.
	Keep []string
}

// Result counts what a sync run did.
type Result struct {
	Downloaded int
	Skipped    int
	Removed    int
	Failed     int
}

// Syncer downloads the webfonts for a manifest.
type Syncer struct {
	get  Getter
	opts Options
}

// New returns a Syncer that fetches through g.
func New(g Getter, opts Options) *Syncer {
	return &Syncer{get: g, opts: opts}
}

// ///////////////////////////////////////////////
// Sync
// ///////////////////////////////////////////////

// SyncFile reads the font data manifest at path and syncs it.
func (s *Syncer) SyncFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := fonts.ParseData(data)
	if err != nil {
		return Result{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return s.Sync(ctx, m)
}

// Sync downloads every font file m references and prunes the rest.
//
// Failures for a single family or file are logged and counted; the run
// carries on. Pruning only happens when nothing failed, so a partial outage
// never deletes fonts that are still in use. The returned error is reserved
// for failures that stop the whole run.
func (s *Syncer) Sync(ctx context.Context, m *fonts.Manifest) (Result, error) {
	var res Result
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return res, fmt.Errorf("create fonts dir: %w", err)
	}

	used := map[string]bool{}
	for _, e := range m.Entries() {
		seen := map[string]bool{}
		for _, w := range e.Weights.Sorted() {
			if seen[w.Value] {
				continue
			}
			seen[w.Value] = true

			if err := ctx.Err(); err != nil {
				return res, err
			}
			slog.Info("processing font", "family", e.Name, "weight", w.Label)
			s.syncWeight(ctx, e.Name, w.Value, used, &res)
		}
	}

	if res.Failed > 0 {
		slog.Warn("skipping prune after failed downloads", "failed", res.Failed)
		return res, nil
	}
	removed, err := s.prune(used)
	res.Removed = removed
	return res, err
}

// syncWeight fetches the stylesheet for one family weight and downloads the
// files it references, recording their local names in used.
func (s *Syncer) syncWeight(ctx context.Context, family, weight string, used map[string]bool, res *Result) {
	cssURL := s.stylesheetURL(family, weight)
	css, err := s.get.Get(ctx, cssURL)
	if err != nil {
		slog.Error("failed to fetch stylesheet", "family", family, "weight", weight, "error", err)
		res.Failed++
		return
	}

	matches := fontURLRe.FindAllSubmatch(css, -1)
	if len(matches) == 0 {
		slog.Warn("no font URLs in stylesheet", "family", family, "weight", weight)
		return
	}
	for _, match := range matches {
		fontURL := string(match[1])
		name, err := s.localName(fontURL)
		if err != nil {
			slog.Error("unusable font URL", "url", fontURL, "error", err)
			res.Failed++
			continue
		}
		used[name] = true

		dest := filepath.Join(s.opts.Dir, name)
		if _, err := os.Stat(dest); err == nil {
			slog.Debug("font already present", "file", name)
			res.Skipped++
			continue
		}
		if err := s.download(ctx, fontURL, dest); err != nil {
			slog.Error("failed to download font", "url", fontURL, "error", err)
			res.Failed++
			continue
		}
		slog.Info("downloaded font", "file", name)
		res.Downloaded++
	}
}

// stylesheetURL builds the CSS2 request for one family weight.
func (s *Syncer) stylesheetURL(family, weight string) string {
	return fmt.Sprintf("%s?family=%s:wght@%s", s.opts.CSSURL, url.QueryEscape(family), weight)
}

// localName maps a font URL to the file name it is stored under: the last
// path segment, with a .ttf extension when WOFF2 conversion is enabled.
func (s *Syncer) localName(fontURL string) (string, error) {
	u, err := url.Parse(fontURL)
	if err != nil {
		return "", err
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", errors.New("no file name in URL path")
	}
	if s.opts.ConvertSFNT && isWOFF2Name(name) {
		name = strings.TrimSuffix(name, path.Ext(name)) + ".ttf"
	}
	return name, nil
}

// download fetches fontURL, converts it if needed and writes it to dest.
func (s *Syncer) download(ctx context.Context, fontURL, dest string) error {
	data, err := s.get.Get(ctx, fontURL)
	if err != nil {
		return err
	}
	if s.opts.ConvertSFNT {
		if data, err = toSFNT(fontURL, data); err != nil {
			return err
		}
	}
	return atomicfile.Write(dest, data, 0o644)
}

// toSFNT converts WOFF2 data to SFNT and checks that the result parses as an
// OpenType font.
func toSFNT(fontURL string, data []byte) ([]byte, error) {
	if isWOFF2Data(fontURL, data) {
		sfnt, err := font.ToSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("converting WOFF2 to SFNT: %w", err)
		}
		data = sfnt
	}
	if _, err := opentype.Parse(data); err != nil {
		return nil, fmt.Errorf("invalid SFNT font: %w", err)
	}
	return data, nil
}

// ///////////////////////////////////////////////
// Prune
// ///////////////////////////////////////////////

// prune removes regular files in the fonts directory that are neither in used
// nor matched by a keep pattern.
func (s *Syncer) prune(used map[string]bool) (int, error) {
	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		return 0, fmt.Errorf("read fonts dir: %w", err)
	}

	removed := 0
	for _, de := range entries {
		name := de.Name()
		if !de.Type().IsRegular() || used[name] || s.keep(name) {
			continue
		}
		if err := os.Remove(filepath.Join(s.opts.Dir, name)); err != nil {
			slog.Warn("failed to remove old font", "file", name, "error", err)
			continue
		}
		slog.Info("removed old font file", "file", name)
		removed++
	}
	return removed, nil
}

// keep reports whether name matches any keep pattern.
func (s *Syncer) keep(name string) bool {
	for _, pattern := range s.opts.Keep {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

func isWOFF2Name(name string) bool {
	return strings.EqualFold(path.Ext(name), ".woff2")
}

// isWOFF2Data checks whether font data is WOFF2 by URL extension or magic bytes.
func isWOFF2Data(fontURL string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(fontURL), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}
