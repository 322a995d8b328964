// Package main implements fontgen, which fetches the Google Fonts metadata
// and regenerates the font data JSON files and the Go font table.
//
// Usage:
//
//	fontgen [-root DIR] [-config FILE]
//
// Run from the repository root with no arguments to refresh every artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"tools.welcomer/dev/fontkit"
	"tools.welcomer/dev/fontkit/internal/atomicfile"
	"tools.welcomer/dev/fontkit/internal/cli"
	"tools.welcomer/dev/fontkit/internal/config"
	"tools.welcomer/dev/fontkit/internal/fetch"
	"tools.welcomer/dev/fontkit/internal/fonts"
	"tools.welcomer/dev/fontkit/internal/metadata"
	"tools.welcomer/dev/fontkit/internal/paths"
)

func main() {
	rootDir := flag.String("root", ".", "Repository root that relative paths resolve against")
	configPath := flag.String("config", "", "Config file (default <root>/fontkit.toml)")
	flag.Parse()

	root := paths.Root{Dir: *rootDir}
	if *configPath == "" {
		*configPath = root.Config()
	}

	cfg, closer, err := cli.Setup("fontgen", root, *configPath)
	if err != nil {
		cli.Fatal(err)
	}
	defer closer.Close()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	if err := run(ctx, cfg, root); err != nil {
		stop()
		cli.Fatal(err, closer)
	}
}

// run fetches and normalizes the metadata, renders every artifact, and only
// then writes them. Nothing is written when the fetch or a render fails.
func run(ctx context.Context, cfg *config.Config, root paths.Root) error {
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.MetadataTimeout())
	defer cancel()

	client := fetch.New(fetch.Options{
		Timeout:  cfg.MetadataTimeout(),
		RetryMax: cfg.Metadata.RetryMax,
	})
	families, err := metadata.Families(fetchCtx, client, cfg.Metadata.URL)
	if err != nil {
		return err
	}

	m := fonts.Normalize(families)
	slog.Info("generated font entries", "count", m.Len())

	builtins, err := loadBuiltins(root.Resolve(cfg.Output.BuiltinsFile))
	if err != nil {
		return err
	}

	targets, err := render(cfg, root, m, builtins)
	if err != nil {
		return err
	}
	return atomicfile.WriteAll(targets, func(t atomicfile.Target) {
		slog.Info("successfully wrote", "path", t.Path)
	})
}

// loadBuiltins reads the web-safe font table from path, or from the embedded
// asset when path is empty.
func loadBuiltins(path string) ([]fonts.Entry, error) {
	if path != "" {
		return fonts.LoadBuiltinsFile(path)
	}
	return fonts.LoadBuiltins(fontkit.BuiltinFontsTOML)
}

// render produces the write targets: the JSON data once per data path, then
// the Go source table.
func render(cfg *config.Config, root paths.Root, m *fonts.Manifest, builtins []fonts.Entry) ([]atomicfile.Target, error) {
	data, err := fonts.MarshalData(m)
	if err != nil {
		return nil, fmt.Errorf("render font data: %w", err)
	}
	src, err := fonts.RenderSource(m, builtins, fonts.SourceOptions{
		Package: cfg.Output.SourcePackage,
		Var:     cfg.Output.SourceVar,
		Type:    cfg.Output.SourceType,
	})
	if err != nil {
		return nil, err
	}

	targets := make([]atomicfile.Target, 0, len(cfg.Output.DataPaths)+1)
	for _, p := range cfg.Output.DataPaths {
		targets = append(targets, atomicfile.Target{Path: root.Resolve(p), Data: data, Perm: 0o644})
	}
	targets = append(targets, atomicfile.Target{Path: root.Resolve(cfg.Output.SourcePath), Data: src, Perm: 0o644})
	return targets, nil
}
