// Package metadata downloads the Google Fonts family metadata document.
package metadata

import (
	"context"
	"fmt"
	"log/slog"

	"tools.welcomer/dev/fontkit/internal/fonts"
)

// Getter fetches a URL and returns the response body. *fetch.Client
// satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetch downloads the raw metadata document at url. The body is returned
// as received, XSSI guard included.
func Fetch(ctx context.Context, g Getter, url string) ([]byte, error) {
	slog.Info("fetching font metadata", "url", url)

	body, err := g.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	slog.Debug("fetched font metadata", "bytes", len(body))
	return body, nil
}

// Families fetches the document at url and extracts its family records with
// [fonts.ParseMetadata]. Syntax errors wrap [fonts.ErrInvalidJSON].
func Families(ctx context.Context, g Getter, url string) ([]fonts.Family, error) {
	body, err := Fetch(ctx, g, url)
	if err != nil {
		return nil, err
	}
	families, err := fonts.ParseMetadata(body)
	if err != nil {
		return nil, fmt.Errorf("parse metadata from %s: %w", url, err)
	}
	return families, nil
}
