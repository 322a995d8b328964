package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated fontkit.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "output.source_path")
// to their [FieldDoc] entries.
var ConfigDocs = map[string]FieldDoc{
	// ── Log ──────────────────────────────────────────────────────
	"log.level": {
		Comment: "Minimum log level: trace, debug, info, warn, error",
		Alternatives: []string{
			`level = "debug"`,
		},
	},
	"log.file": {
		Comment: "Also write logs to a rotating file (disabled when empty)",
		Alternatives: []string{
			`file = "fontkit.log"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Rotate the log file after this many megabytes",
	},

	// ── Metadata ─────────────────────────────────────────────────
	"metadata.url": {
		Comment: "Google Fonts metadata endpoint. The response may start with the )]}' guard.",
	},
	"metadata.timeout_seconds": {
		Comment: "Timeout for the metadata request, in seconds",
	},
	"metadata.retry_max": {
		Comment: "Retries after a failed metadata request (0 = single attempt)",
	},

	// ── Output ───────────────────────────────────────────────────
	"output.data_paths": {
		Comment: "Every path receives the same JSON font data. Directories must exist.",
	},
	"output.source_path": {
		Comment: "Generated Go font table for the image service",
	},
	"output.source_package": {
		Comment: "Package clause, map variable and element type of the generated Go file",
	},
	"output.source_var":  {},
	"output.source_type": {},
	"output.builtins_file": {
		Comment: "Replace the embedded web-safe font table with a TOML file",
		Alternatives: []string{
			`builtins_file = "data/builtin_fonts.toml"`,
		},
	},

	// ── Sync ─────────────────────────────────────────────────────
	"sync.manifest": {
		Comment: "Font data file listing the fonts to download",
	},
	"sync.dir": {
		Comment: "Directory webfont files are written to",
	},
	"sync.css_url": {
		Comment: "Google Fonts CSS2 endpoint",
	},
	"sync.user_agent": {
		Comment: "User agent sent to Google Fonts. Browser agents receive WOFF2 sources.",
	},
	"sync.convert_sfnt": {
		Comment: "Convert WOFF2 downloads to TTF before saving",
		Alternatives: []string{
			`convert_sfnt = false`,
		},
	},
	"sync.keep": {
		Comment: "Glob patterns for files in dir that are never pruned",
	},
	"sync.timeout_seconds": {
		Comment: "Timeout for each download, in seconds",
	},
	"sync.retry_max": {
		Comment: "Retries after a failed download (0 = single attempt)",
	},
	"sync.poll_interval_seconds": {
		Comment: "Polling interval for --watch when file notifications are unavailable",
	},

	// ── Bot ──────────────────────────────────────────────────────
	"bot.token": {
		Comment: "Discord bot token. The WELCOMEBOT_TOKEN environment variable takes precedence.",
		Alternatives: []string{
			`token = "..."`,
		},
	},
	"bot.message": {
		Comment: "Direct message sent to every member that joins.\n{username} and {mention} are replaced with the new member's name and mention.",
		Alternatives: []string{
			`message = "welcome, {mention}!"`,
		},
	},
	"bot.skip_bots": {
		Comment: "Do not message bot accounts",
	},
}
