package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"
	"tools.welcomer/dev/fontkit/internal/atomicfile"
	"tools.welcomer/dev/fontkit/internal/config"
	"tools.welcomer/dev/fontkit/internal/fonts"
	"tools.welcomer/dev/fontkit/internal/lockfile"
	"tools.welcomer/dev/fontkit/internal/paths"
)

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// fontServer serves a CSS2 endpoint whose stylesheets point at TTF files on
// the same server, and counts font downloads.
func fontServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var downloads atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/css2":
			family := r.URL.Query().Get("family")
			name := strings.NewReplacer(" ", "", ":wght@", "-").Replace(family)
			fmt.Fprintf(w, "src: url(%s/s/%s.ttf) format('truetype');\n", server.URL, name)
		case strings.HasPrefix(r.URL.Path, "/s/"):
			downloads.Add(1)
			w.Write(goregular.TTF)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, &downloads
}

func writeManifest(t *testing.T, path string, families ...fonts.Family) {
	t.Helper()
	data, err := fonts.MarshalData(fonts.Normalize(families))
	if err != nil {
		t.Fatal(err)
	}
	if err := atomicfile.Write(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(server *httptest.Server) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Sync.CSSURL = server.URL + "/css2"
	cfg.Sync.PollIntervalSeconds = 1
	return cfg
}

// ///////////////////////////////////////////////
// runOnce
// ///////////////////////////////////////////////

func TestRunOnce(t *testing.T) {
	server, downloads := fontServer(t)
	root := paths.Root{Dir: t.TempDir()}
	writeManifest(t, root.Data(), fonts.Family{Name: "Open Sans", Variants: []string{"400", "700"}})

	if err := runOnce(context.Background(), testConfig(server), root); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	for _, name := range []string{"OpenSans-400.ttf", "OpenSans-700.ttf"} {
		if _, err := os.Stat(filepath.Join(root.Fonts(), name)); err != nil {
			t.Errorf("%s not downloaded: %v", name, err)
		}
	}
	if downloads.Load() != 2 {
		t.Errorf("downloads = %d, want 2", downloads.Load())
	}
}

func TestRunOnceMissingManifest(t *testing.T) {
	server, _ := fontServer(t)
	if err := runOnce(context.Background(), testConfig(server), paths.Root{Dir: t.TempDir()}); err == nil {
		t.Error("expected error for missing manifest")
	}
}

// ///////////////////////////////////////////////
// runWatch
// ///////////////////////////////////////////////

func TestRunWatchResyncsOnChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow watcher test in short mode")
	}

	server, downloads := fontServer(t)
	root := paths.Root{Dir: t.TempDir()}
	writeManifest(t, root.Data(), fonts.Family{Name: "Abel", Variants: []string{"400"}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, testConfig(server), root) }()

	waitFor(t, func() bool { return downloads.Load() == 1 })

	writeManifest(t, root.Data(),
		fonts.Family{Name: "Abel", Variants: []string{"400"}},
		fonts.Family{Name: "Inter", Variants: []string{"400"}},
	)
	waitFor(t, func() bool { return downloads.Load() == 2 })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}
	if _, err := os.Stat(root.Lock()); !os.IsNotExist(err) {
		t.Error("lock file not released")
	}
}

func TestRunWatchSingleInstance(t *testing.T) {
	server, _ := fontServer(t)
	root := paths.Root{Dir: t.TempDir()}
	l, err := lockfile.Acquire(root.Lock())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer l.Release()

	err = runWatch(context.Background(), testConfig(server), root)
	if !errors.Is(err, lockfile.ErrLocked) {
		t.Errorf("err = %v, want ErrLocked", err)
	}
}

// waitFor polls cond until it holds or the test times out.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
