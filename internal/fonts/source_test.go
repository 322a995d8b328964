package fonts

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// mustParseGo fails the test unless src is a syntactically valid Go file.
func mustParseGo(t *testing.T, src []byte) {
	t.Helper()
	if _, err := parser.ParseFile(token.NewFileSet(), "fonts_generated.go", src, parser.ParseComments); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
}

// fontTypeSrc declares the element type the images service defines next to
// the generated table.
const fontTypeSrc = `package service

type Font struct {
	name, defaultWeight string
	websafe             bool
	weights             map[string]string
}
`

// mustTypeCheck fails the test unless src compiles as package service
// together with the Font type.
func mustTypeCheck(t *testing.T, src []byte) {
	t.Helper()
	fset := token.NewFileSet()
	files := make([]*ast.File, 0, 2)
	for name, text := range map[string]string{"font.go": fontTypeSrc, "fonts_generated.go": string(src)} {
		f, err := parser.ParseFile(fset, name, text, 0)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		files = append(files, f)
	}
	if _, err := new(types.Config).Check("service", fset, files, nil); err != nil {
		t.Fatalf("generated source does not type-check: %v\n%s", err, src)
	}
}

// render renders m with default options and no builtins.
func render(t *testing.T, m *Manifest, builtins []Entry) string {
	t.Helper()
	src, err := RenderSource(m, builtins, DefaultSourceOptions())
	if err != nil {
		t.Fatalf("RenderSource: %v", err)
	}
	mustParseGo(t, src)
	return string(src)
}

// ///////////////////////////////////////////////
// RenderSource
// ///////////////////////////////////////////////

func TestRenderSourceHeader(t *testing.T) {
	src := render(t, Normalize([]Family{{Name: "Example", Variants: []string{"400"}}}), nil)
	for _, want := range []string{
		"// Code generated by fontgen. DO NOT EDIT.",
		"package service",
		"var Fonts = map[string]Font{",
		`"Example": {`,
		"defaultWeight: \"regular\",",
		"weights: map[string]string{",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in:\n%s", want, src)
		}
	}
}

func TestRenderSourceWeightOrder(t *testing.T) {
	m := NewManifest()
	m.Set(Entry{
		Name:          "F",
		DefaultWeight: "regular",
		Weights:       Weights{{"bold", "700"}, {"300", "300"}, {"regular", "400"}, {"100", "100"}},
	})
	src := render(t, m, nil)

	order := []string{`"regular":`, `"100":`, `"300":`, `"bold":`}
	last := -1
	for _, key := range order {
		idx := strings.Index(src, key)
		if idx < 0 {
			t.Fatalf("missing %s in:\n%s", key, src)
		}
		if idx < last {
			t.Errorf("%s out of order in:\n%s", key, src)
		}
		last = idx
	}
}

func TestRenderSourceWithoutRegular(t *testing.T) {
	m := Normalize([]Family{{Name: "F", Variants: []string{"900", "700", "300"}}})
	src := render(t, m, nil)
	if strings.Index(src, `"300":`) > strings.Index(src, `"900":`) ||
		strings.Index(src, `"900":`) > strings.Index(src, `"bold":`) {
		t.Errorf("expected 300, 900, bold in ascending order:\n%s", src)
	}
}

func TestRenderSourceEscapesQuotes(t *testing.T) {
	m := Normalize([]Family{
		{Name: `Quote "Sans"`, Variants: []string{"400"}},
		{Name: `Back\slash`, Variants: []string{"400"}},
	})
	src := render(t, m, nil)
	if !strings.Contains(src, `"Quote \"Sans\""`) {
		t.Errorf("expected escaped quotes in:\n%s", src)
	}
	if !strings.Contains(src, `"Back\\slash"`) {
		t.Errorf("expected escaped backslash in:\n%s", src)
	}
}

func TestRenderSourceBuiltinSection(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		src := render(t, NewManifest(), nil)
		if !strings.Contains(src, builtinSectionComment) {
			t.Errorf("missing %q in:\n%s", builtinSectionComment, src)
		}
		if strings.Contains(src, "websafe") {
			t.Errorf("unexpected websafe field in:\n%s", src)
		}
	})

	t.Run("with builtins", func(t *testing.T) {
		m := Normalize([]Family{{Name: "Inter", Variants: []string{"400"}}})
		builtins := []Entry{{Name: "Arial", DefaultWeight: "regular", Weights: Weights{{"regular", "400"}, {"bold", "700"}}}}
		src := render(t, m, builtins)

		section := strings.Index(src, builtinSectionComment)
		inter := strings.Index(src, `"Inter": {`)
		arial := strings.Index(src, `"Arial": {`)
		if section < 0 || inter < 0 || arial < 0 {
			t.Fatalf("missing section or entries in:\n%s", src)
		}
		if !(inter < section && section < arial) {
			t.Errorf("expected generated entries, then section, then builtins:\n%s", src)
		}
		if strings.Count(src, "websafe: true") != 1 {
			t.Errorf("expected exactly one websafe entry in:\n%s", src)
		}
		mustTypeCheck(t, []byte(src))
	})
}

func TestRenderSourceRejectsDuplicateBuiltin(t *testing.T) {
	georgia := Entry{Name: "Georgia", DefaultWeight: "regular", Weights: Weights{{"regular", "400"}}}
	tests := []struct {
		name     string
		families []Family
		builtins []Entry
	}{
		{"generated family", []Family{{Name: "Georgia", Variants: []string{"400", "700"}}}, []Entry{georgia}},
		{"repeated builtin", nil, []Entry{georgia, georgia}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderSource(Normalize(tt.families), tt.builtins, DefaultSourceOptions())
			if !errors.Is(err, ErrDuplicateFont) {
				t.Fatalf("err = %v, want ErrDuplicateFont", err)
			}
			if !strings.Contains(err.Error(), `"Georgia"`) {
				t.Errorf("error %q does not name the font", err)
			}
		})
	}
}

func TestRenderSourceIsFormatted(t *testing.T) {
	src := render(t, Normalize([]Family{{Name: "Example", Variants: []string{"400", "700"}}}), nil)
	if !strings.HasSuffix(src, "}\n") {
		t.Errorf("expected trailing newline after closing brace, got %q", src[len(src)-5:])
	}
	if strings.Contains(src, "\n\n\n") {
		t.Errorf("gofmt should collapse repeated blank lines:\n%s", src)
	}
}

func TestRenderSourceOptions(t *testing.T) {
	src, err := RenderSource(NewManifest(), nil, SourceOptions{Package: "assets", Var: "Catalog", Type: "Family"})
	if err != nil {
		t.Fatalf("RenderSource: %v", err)
	}
	mustParseGo(t, src)
	if !strings.Contains(string(src), "package assets") || !strings.Contains(string(src), "var Catalog = map[string]Family{") {
		t.Errorf("options not applied:\n%s", src)
	}
}

func TestRenderSourceRejectsBadOptions(t *testing.T) {
	if _, err := RenderSource(NewManifest(), nil, SourceOptions{}); err == nil {
		t.Error("expected error for empty options")
	}
	if _, err := RenderSource(NewManifest(), nil, SourceOptions{Package: "not valid", Var: "Fonts", Type: "Font"}); err == nil {
		t.Error("expected error for invalid package name")
	}
}
