package fonts

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strconv"
)

// builtinSectionComment introduces the manually curated entries that follow
// the generated ones.
const builtinSectionComment = "// web safe fonts"

// ErrDuplicateFont is returned when a builtin reuses a family name that is
// already in the table. Go rejects duplicate keys in a map literal.
var ErrDuplicateFont = errors.New("duplicate font name")

// SourceOptions names the declarations in the generated Go file.
type SourceOptions struct {
	// Package is the package clause of the generated file.
	Package string
	// Var is the name of the map variable.
	Var string
	// Type is the element type of the map.
	Type string
}

// DefaultSourceOptions matches the images service, which declares
// `type Font struct { name, defaultWeight string; websafe bool; weights map[string]string }`
// in package service.
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{Package: "service", Var: "Fonts", Type: "Font"}
}

// RenderSource renders the manifest as a Go source file declaring
// `var <Var> = map[string]<Type>{...}`.
//
// Each weight table lists "regular" first, then the other labels ascending.
// The "// web safe fonts" section is always emitted after the generated
// entries, followed by builtins (rendered with websafe: true). A builtin
// named like a generated family or another builtin returns [ErrDuplicateFont].
// Every string literal goes through [strconv.Quote]. The result is
// gofmt-formatted; text that does not parse as Go is reported as an error.
func RenderSource(m *Manifest, builtins []Entry, opts SourceOptions) ([]byte, error) {
	if opts.Package == "" || opts.Var == "" || opts.Type == "" {
		return nil, fmt.Errorf("render source: package, var and type names are required")
	}

	seen := make(map[string]bool, len(builtins))
	for _, b := range builtins {
		if _, ok := m.Get(b.Name); ok || seen[b.Name] {
			return nil, fmt.Errorf("render source: builtin %q: %w", b.Name, ErrDuplicateFont)
		}
		seen[b.Name] = true
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by fontgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	fmt.Fprintf(&buf, "var %s = map[string]%s{\n", opts.Var, opts.Type)

	for _, e := range m.entries {
		writeSourceEntry(&buf, e)
		buf.WriteByte('\n')
	}

	buf.WriteString("\t" + builtinSectionComment + "\n")
	for _, e := range builtins {
		e.WebSafe = true
		writeSourceEntry(&buf, e)
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("render source: generated code does not parse: %w", err)
	}
	return out, nil
}

// writeSourceEntry appends a single `"Name": {...},` element.
func writeSourceEntry(buf *bytes.Buffer, e Entry) {
	name := strconv.Quote(e.Name)
	fmt.Fprintf(buf, "\t%s: {\n", name)
	fmt.Fprintf(buf, "\t\tname: %s,\n", name)
	if e.WebSafe {
		buf.WriteString("\t\twebsafe: true,\n")
	}
	fmt.Fprintf(buf, "\t\tdefaultWeight: %s,\n", strconv.Quote(e.DefaultWeight))
	buf.WriteString("\t\tweights: map[string]string{\n")
	for _, w := range e.Weights.Sorted() {
		fmt.Fprintf(buf, "\t\t\t%s: %s,\n", strconv.Quote(w.Label), strconv.Quote(w.Value))
	}
	buf.WriteString("\t\t},\n")
	buf.WriteString("\t},\n")
}
