// Package main implements fontsync, which downloads the webfonts listed in
// the font data manifest into the headless renderer's fonts directory.
//
// Usage:
//
//	fontsync [-root DIR] [-config FILE] [-watch]
//
// With -watch it holds a single-instance lock and re-syncs whenever the
// manifest changes, until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"tools.welcomer/dev/fontkit/internal/cli"
	"tools.welcomer/dev/fontkit/internal/config"
	"tools.welcomer/dev/fontkit/internal/fetch"
	"tools.welcomer/dev/fontkit/internal/lockfile"
	"tools.welcomer/dev/fontkit/internal/paths"
	"tools.welcomer/dev/fontkit/internal/watch"
	"tools.welcomer/dev/fontkit/internal/webfont"
)

func main() {
	rootDir := flag.String("root", ".", "Repository root that relative paths resolve against")
	configPath := flag.String("config", "", "Config file (default <root>/fontkit.toml)")
	watchMode := flag.Bool("watch", false, "Re-sync whenever the manifest changes")
	flag.Parse()

	root := paths.Root{Dir: *rootDir}
	if *configPath == "" {
		*configPath = root.Config()
	}

	cfg, closer, err := cli.Setup("fontsync", root, *configPath)
	if err != nil {
		cli.Fatal(err)
	}
	defer closer.Close()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	if *watchMode {
		err = runWatch(ctx, cfg, root)
	} else {
		err = runOnce(ctx, cfg, root)
	}
	if err != nil {
		stop()
		cli.Fatal(err, closer)
	}
}

// newSyncer builds a Syncer from the [sync] config section.
func newSyncer(cfg *config.Config, root paths.Root) *webfont.Syncer {
	client := fetch.New(fetch.Options{
		Timeout:   cfg.SyncTimeout(),
		RetryMax:  cfg.Sync.RetryMax,
		UserAgent: cfg.Sync.UserAgent,
	})
	return webfont.New(client, webfont.Options{
		Dir:         root.Resolve(cfg.Sync.Dir),
		CSSURL:      cfg.Sync.CSSURL,
		ConvertSFNT: cfg.Sync.ConvertSFNT,
		Keep:        cfg.Sync.Keep,
	})
}

// runOnce performs a single sync and reports its summary.
func runOnce(ctx context.Context, cfg *config.Config, root paths.Root) error {
	res, err := newSyncer(cfg, root).SyncFile(ctx, root.Resolve(cfg.Sync.Manifest))
	logResult(res)
	return err
}

// runWatch syncs once, then again after every manifest change, until ctx is
// canceled. Per-run failures are logged and do not stop the loop.
func runWatch(ctx context.Context, cfg *config.Config, root paths.Root) error {
	lock, err := lockfile.Acquire(root.Lock())
	if err != nil {
		if errors.Is(err, lockfile.ErrLocked) {
			return fmt.Errorf("another fontsync -watch is already running: %w", err)
		}
		return err
	}
	defer lock.Release()

	manifest := root.Resolve(cfg.Sync.Manifest)
	w, err := watch.New(manifest, watch.Options{PollInterval: cfg.PollInterval()})
	if err != nil {
		return err
	}
	defer w.Close()
	if w.Polling() {
		slog.Info("using polling mode for file watching")
	}

	syncer := newSyncer(cfg, root)
	syncNow := func() {
		res, err := syncer.SyncFile(ctx, manifest)
		logResult(res)
		if err != nil && ctx.Err() == nil {
			slog.Error("sync failed", "error", err)
		}
	}

	syncNow()
	slog.Info("watching manifest for changes", "path", manifest)
	for {
		select {
		case <-ctx.Done():
			slog.Info("received shutdown signal")
			return nil
		case <-w.Events():
			slog.Info("manifest changed, syncing")
			syncNow()
		}
	}
}

func logResult(res webfont.Result) {
	slog.Info("sync complete",
		"downloaded", res.Downloaded,
		"skipped", res.Skipped,
		"removed", res.Removed,
		"failed", res.Failed,
	)
}
