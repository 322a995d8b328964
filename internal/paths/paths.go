// Package paths centralizes file and directory names used across the project.
// Repository-relative artifact locations are defined here as the single
// source of truth; the config package uses them as defaults.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Tool-owned file names.
const (
	ConfigFile = "fontkit.toml"
	LockFile   = ".fontsync.lock"
)

// Generated artifacts, relative to the repository root.
const (
	// DataFile is the manifest read by fontsync and internal build steps.
	DataFile = "fonts.json"
	// WebsiteDataFile is the copy of DataFile bundled by the website.
	WebsiteDataFile = "website/app/src/fonts.json"
	// SourceFile is the Go font table compiled into the images service.
	SourceFile = "welcomer-images-next/service/fonts_generated.go"
	// FontsDir holds the webfont files served to the headless renderer.
	FontsDir = "welcomer-headless-shell/fonts"
)

// Remote endpoints.
const (
	MetadataURL = "https://fonts.google.com/metadata/fonts"
	CSS2URL     = "https://fonts.googleapis.com/css2"
)

// ///////////////////////////////////////////////
// Root
// ///////////////////////////////////////////////

// Root provides path construction methods rooted at a repository checkout.
type Root struct {
	Dir string
}

// Resolve returns p joined onto the root, or p unchanged when it is absolute.
func (r Root) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}

// Config returns the full path to the config file.
func (r Root) Config() string { return r.Resolve(ConfigFile) }

// Lock returns the full path to the fontsync lock file.
func (r Root) Lock() string { return r.Resolve(LockFile) }

// Data returns the full path to the primary font manifest.
func (r Root) Data() string { return r.Resolve(DataFile) }

// Fonts returns the full path to the webfont directory.
func (r Root) Fonts() string { return r.Resolve(FontsDir) }
