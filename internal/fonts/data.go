package fonts

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// dataIndent is the indentation used by the JSON data format.
const dataIndent = "    "

// MarshalData serializes the manifest as the JSON document consumed by the
// website and by fontsync:
//
//	{
//	    "Inter": {
//	        "name": "Inter",
//	        "defaultWeight": "regular",
//	        "weights": {
//	            "regular": "400",
//	            "bold": "700"
//	        }
//	    }
//	}
//
// Families and weights are emitted in manifest order. [ParseData] reverses it.
func MarshalData(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeDataEntry(&buf, e); err != nil {
			return nil, fmt.Errorf("encode font %q: %w", e.Name, err)
		}
	}
	buf.WriteByte('}')

	return pretty.PrettyOptions(buf.Bytes(), &pretty.Options{
		Width:  80,
		Indent: dataIndent,
	}), nil
}

// writeDataEntry appends one compact "name": {...} member to buf.
func writeDataEntry(buf *bytes.Buffer, e Entry) error {
	if err := writeJSONString(buf, e.Name); err != nil {
		return err
	}
	buf.WriteString(`:{"name":`)
	if err := writeJSONString(buf, e.Name); err != nil {
		return err
	}
	buf.WriteString(`,"defaultWeight":`)
	if err := writeJSONString(buf, e.DefaultWeight); err != nil {
		return err
	}
	buf.WriteString(`,"weights":{`)
	for i, w := range e.Weights {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, w.Label); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeJSONString(buf, w.Value); err != nil {
			return err
		}
	}
	buf.WriteString("}}")
	return nil
}

// writeJSONString appends s as a JSON string literal without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// ParseData parses a document produced by [MarshalData], preserving the
// document order of families and weights. A missing defaultWeight is
// recomputed; a missing name falls back to the object key.
func ParseData(data []byte) (*Manifest, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("font data: top level must be an object")
	}

	m := NewManifest()
	var err error
	doc.ForEach(func(key, val gjson.Result) bool {
		var e Entry
		e, err = parseDataEntry(key.String(), val)
		if err != nil {
			return false
		}
		m.Set(e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// parseDataEntry decodes one family object of the data format.
func parseDataEntry(key string, val gjson.Result) (Entry, error) {
	if !val.IsObject() {
		return Entry{}, fmt.Errorf("font %q: value must be an object", key)
	}
	e := Entry{
		Name:          key,
		DefaultWeight: val.Get("defaultWeight").String(),
	}
	if name := val.Get("name"); name.Exists() {
		e.Name = name.String()
	}

	val.Get("weights").ForEach(func(label, value gjson.Result) bool {
		e.Weights.add(label.String(), value.String())
		return true
	})
	if len(e.Weights) == 0 {
		return Entry{}, fmt.Errorf("font %q: no weights", key)
	}

	if e.DefaultWeight == "" {
		e.DefaultWeight = defaultWeightFor(e.Weights)
	} else if !e.Weights.Has(e.DefaultWeight) {
		return Entry{}, fmt.Errorf("font %q: default weight %q is not one of its weights", key, e.DefaultWeight)
	}
	return e, nil
}
