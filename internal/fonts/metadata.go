package fonts

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a document is not syntactically valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON document")

// xssiGuard is the anti-JSON-hijacking prefix Google prepends to some API
// responses.
var xssiGuard = []byte(")]}'")

// Family is one record of the Google Fonts metadata document. Only the family
// name and the set of variant keys (e.g. "400", "700i") are consumed.
type Family struct {
	Name     string
	Variants []string
}

// TrimXSSI removes a leading ")]}'" guard and surrounding whitespace.
func TrimXSSI(body []byte) []byte {
	body = bytes.TrimSpace(body)
	if bytes.HasPrefix(body, xssiGuard) {
		body = bytes.TrimSpace(body[len(xssiGuard):])
	}
	return body
}

// ParseMetadata extracts family records from a Google Fonts metadata document
// of the form {"familyMetadataList":[{"family":"Inter","fonts":{"400":{}}}]}.
//
// Families and variant keys are returned in document order. A document that
// is valid JSON but has no familyMetadataList array is logged and yields no
// families. Invalid JSON returns [ErrInvalidJSON].
func ParseMetadata(body []byte) ([]Family, error) {
	body = TrimXSSI(body)
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	list := gjson.GetBytes(body, "familyMetadataList")
	if !list.IsArray() {
		slog.Warn("invalid metadata structure: familyMetadataList missing or not an array")
		return nil, nil
	}

	var families []Family
	list.ForEach(func(_, rec gjson.Result) bool {
		f := Family{Name: rec.Get("family").String()}
		if variants := rec.Get("fonts"); variants.IsObject() {
			variants.ForEach(func(key, _ gjson.Result) bool {
				f.Variants = append(f.Variants, key.String())
				return true
			})
		}
		families = append(families, f)
		return true
	})
	slog.Info("processing font families", "count", len(families))
	return families, nil
}
