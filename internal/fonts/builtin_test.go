package fonts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tools.welcomer/dev/fontkit"
)

// ///////////////////////////////////////////////
// LoadBuiltins
// ///////////////////////////////////////////////

func TestLoadBuiltinsShippedAssetIsEmpty(t *testing.T) {
	entries, err := LoadBuiltins(fontkit.BuiltinFontsTOML)
	if err != nil {
		t.Fatalf("LoadBuiltins: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("shipped builtin table has %d entries, want 0", len(entries))
	}
}

func TestLoadBuiltins(t *testing.T) {
	data := []byte(`
[[font]]
name = "Arial"
default_weight = "regular"
weights = { bold = "700", regular = "400" }

[[font]]
name = "Courier New"
weights = { "300" = "300", bold = "700" }
`)
	entries, err := LoadBuiltins(data)
	if err != nil {
		t.Fatalf("LoadBuiltins: %v", err)
	}
	want := []Entry{
		{Name: "Arial", DefaultWeight: "regular", Weights: Weights{{"regular", "400"}, {"bold", "700"}}, WebSafe: true},
		{Name: "Courier New", DefaultWeight: "300", Weights: Weights{{"300", "300"}, {"bold", "700"}}, WebSafe: true},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %+v, want %+v", entries, want)
	}
}

func TestLoadBuiltinsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", `[[font]`},
		{"missing name", "[[font]]\nweights = { regular = \"400\" }"},
		{"no weights", "[[font]]\nname = \"Arial\""},
		{"unknown default", "[[font]]\nname = \"Arial\"\ndefault_weight = \"bold\"\nweights = { regular = \"400\" }"},
		{"duplicate", "[[font]]\nname = \"A\"\nweights = { regular = \"400\" }\n[[font]]\nname = \"A\"\nweights = { regular = \"400\" }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadBuiltins([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadBuiltinsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builtin.toml")
	if err := os.WriteFile(path, []byte("[[font]]\nname = \"Georgia\"\nweights = { regular = \"400\" }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := LoadBuiltinsFile(path)
	if err != nil {
		t.Fatalf("LoadBuiltinsFile: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Georgia" || entries[0].DefaultWeight != "regular" {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := LoadBuiltinsFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
