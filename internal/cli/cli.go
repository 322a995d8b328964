// Package cli holds the startup and shutdown plumbing shared by the fontkit
// commands: version reporting, config and logger setup, and signal handling.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"

	"tools.welcomer/dev/fontkit/internal/config"
	"tools.welcomer/dev/fontkit/internal/logger"
	"tools.welcomer/dev/fontkit/internal/paths"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via
// -ldflags "-X tools.welcomer/dev/fontkit/internal/cli.version=1.2.3".
var version = "dev"

// Version returns the build version. Without ldflags it falls back to the
// VCS revision embedded by the Go toolchain.
func Version() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	return versionFromSettings(info.Settings)
}

func versionFromSettings(settings []debug.BuildSetting) string {
	var revision string
	var dirty bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Setup
// ///////////////////////////////////////////////

// Setup loads the config at configPath, installs the process logger as the
// slog default and logs a start line for tool. A relative log file resolves
// against root like every other configured path. Close the returned
// io.Closer on exit.
func Setup(tool string, root paths.Root, configPath string) (*config.Config, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, closer := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		File:      root.Resolve(cfg.Log.File),
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	slog.SetDefault(log)
	slog.Debug(tool+" starting", "version", Version(), "config", configPath)
	return cfg, closer, nil
}

// Fatal reports err through the default logger and on stderr, closes the
// given log sinks and exits with status 1.
func Fatal(err error, closers ...io.Closer) {
	logger.Fail(slog.Default(), "fatal", "error", err)
	for _, c := range closers {
		c.Close()
	}
	fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
	os.Exit(1)
}

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// SignalContext returns a context that is canceled on the first shutdown
// signal (SIGINT or SIGTERM; only os.Interrupt on Windows).
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
