package fonts

import (
	"errors"
	"reflect"
	"testing"
)

// ///////////////////////////////////////////////
// ParseMetadata
// ///////////////////////////////////////////////

func TestParseMetadata(t *testing.T) {
	body := []byte(`{"familyMetadataList":[
		{"family":"Roboto","fonts":{"700":{"thickness":7},"400":{},"400i":{}}},
		{"family":"Abel","fonts":{}},
		{"family":"NoFonts"},
		{"fonts":{"400":{}}}
	]}`)

	got, err := ParseMetadata(body)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	want := []Family{
		{Name: "Roboto", Variants: []string{"700", "400", "400i"}},
		{Name: "Abel"},
		{Name: "NoFonts"},
		{Name: "", Variants: []string{"400"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("families = %+v, want %+v", got, want)
	}
}

func TestParseMetadataXSSIGuard(t *testing.T) {
	body := []byte(")]}'\n{\"familyMetadataList\":[{\"family\":\"Inter\",\"fonts\":{\"400\":{}}}]}")
	got, err := ParseMetadata(body)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Inter" {
		t.Errorf("families = %+v, want one Inter record", got)
	}
}

func TestParseMetadataUnexpectedShape(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"familyMetadataList":{"family":"x"}}`,
		`{"somethingElse":[1,2,3]}`,
		`[]`,
	}
	for _, b := range bodies {
		got, err := ParseMetadata([]byte(b))
		if err != nil {
			t.Errorf("ParseMetadata(%s): unexpected error %v", b, err)
		}
		if len(got) != 0 {
			t.Errorf("ParseMetadata(%s) = %v, want no families", b, got)
		}
	}
}

func TestParseMetadataInvalidJSON(t *testing.T) {
	_, err := ParseMetadata([]byte(`{"familyMetadataList":[`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("err = %v, want ErrInvalidJSON", err)
	}
}

func TestTrimXSSI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{")]}'\n{}", "{}"},
		{"  {}\n", "{}"},
		{"{}", "{}"},
	}
	for _, tt := range tests {
		if got := string(TrimXSSI([]byte(tt.in))); got != tt.want {
			t.Errorf("TrimXSSI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseThenNormalize(t *testing.T) {
	body := []byte(`{"familyMetadataList":[{"family":"Example","fonts":{"400":{},"700":{},"400i":{}}}]}`)
	families, err := ParseMetadata(body)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	e, ok := Normalize(families).Get("Example")
	if !ok {
		t.Fatal("missing Example")
	}
	if e.DefaultWeight != "regular" {
		t.Errorf("DefaultWeight = %q, want regular", e.DefaultWeight)
	}
	want := Weights{{"regular", "400"}, {"bold", "700"}}
	if !reflect.DeepEqual(e.Weights, want) {
		t.Errorf("weights = %v, want %v", e.Weights, want)
	}
}
