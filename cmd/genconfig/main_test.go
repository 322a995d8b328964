package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"tools.welcomer/dev/fontkit/internal/config"
)

// ///////////////////////////////////////////////
// parseSectionPath Tests
// ///////////////////////////////////////////////

func TestParseSectionPath(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    []string
	}{
		{"single segment", "sync", []string{"sync"}},
		{"two segments", "sync.keep", []string{"sync", "keep"}},
		{"three segments", "output.source.var", []string{"output", "source", "var"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseSectionPath(tt.section); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSectionPath(%q) = %v, want %v", tt.section, got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// sectionName Tests
// ///////////////////////////////////////////////

func TestSectionName(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    string
	}{
		{"single segment", "metadata", "Metadata"},
		{"last of two", "sync.keep", "Keep"},
		{"already capitalized", "Bot", "Bot"},
		{"single char", "a", "A"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sectionName(tt.section); got != tt.want {
				t.Errorf("sectionName(%q) = %q, want %q", tt.section, got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// injectOmitted Tests
// ///////////////////////////////////////////////

func TestInjectOmittedNoSection(t *testing.T) {
	var out []string
	injectOmitted(&out, config.ConfigDocs, nil, map[string]bool{})
	if len(out) != 0 {
		t.Errorf("injectOmitted with nil sectionStack produced %d lines, want 0", len(out))
	}
}

func TestInjectOmittedSkipsEmitted(t *testing.T) {
	docs := map[string]config.FieldDoc{
		"bot.token":   {Comment: "token doc", Alternatives: []string{`token = "x"`}},
		"bot.message": {Comment: "message doc"},
		"sync.dir":    {Comment: "other section"},
	}
	var out []string
	injectOmitted(&out, docs, []string{"bot"}, map[string]bool{"bot.message": true})

	got := strings.Join(out, "\n")
	if !strings.Contains(got, "# token doc") || !strings.Contains(got, `# token = "x"`) {
		t.Errorf("omitted token not injected:\n%s", got)
	}
	if strings.Contains(got, "message doc") || strings.Contains(got, "other section") {
		t.Errorf("unexpected entries injected:\n%s", got)
	}
}

// ///////////////////////////////////////////////
// render Tests
// ///////////////////////////////////////////////

func TestRender(t *testing.T) {
	out, err := render(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"# Fontkit Configuration",
		"# ///// Sync /////",
		"[bot]",
		"# Convert WOFF2 downloads to TTF before saving",
		`# token = "..."`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	// Comments must not break the TOML.
	cfg := config.DefaultConfig()
	if _, err := toml.Decode(out, cfg); err != nil {
		t.Fatalf("rendered config does not decode: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("rendered config does not validate: %v", err)
	}
}
