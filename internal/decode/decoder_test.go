package decode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"spot-board/internal/decode"
	"spot-board/internal/domain/entity"
)

func TestDecodeWellFormedResponse(t *testing.T) {
	raw := []byte(`{
		"locations": [
			{"name": "Entropy", "description": "Cafe", "location": "Tech Spot 1"},
			{"name": "Quantum", "description": "Deli", "location": "Tech Spot 2"}
		]
	}`)

	d := decode.New(decode.DefaultConfig())
	got := d.Decode(raw)

	want := []entity.Place{
		{Name: "Entropy", Description: "Cafe", Location: "Tech Spot 1"},
		{Name: "Quantum", Description: "Deli", Location: "Tech Spot 2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	raw := []byte(`{"locations":[{"name":"A","description":"B","location":"C"},{"name":1},{"name":"D","description":"E","location":"F"}]}`)
	d := decode.New(decode.DefaultConfig())

	first := d.Decode(raw)
	second := d.Decode(raw)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated decode of identical input diverged (-first +second):\n%s", diff)
	}
}

func TestDecodePreservesSourceOrder(t *testing.T) {
	raw := []byte(`{"locations":[
		{"name":"Z","description":"d","location":"l"},
		{"bogus": true},
		{"name":"A","description":"d","location":"l"},
		{"name":"M","description":"d","location":"l"}
	]}`)

	got := decode.New(decode.DefaultConfig()).Decode(raw)

	order := make([]string, len(got))
	for i, p := range got {
		order[i] = p.Name
	}
	want := []string{"Z", "A", "M"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeElementValidation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"all fields present", `{"locations":[{"name":"a","description":"b","location":"c"}]}`, 1},
		{"missing description and location", `{"locations":[{"name":"X"}]}`, 0},
		{"missing name", `{"locations":[{"description":"b","location":"c"}]}`, 0},
		{"name not a string", `{"locations":[{"name":42,"description":"b","location":"c"}]}`, 0},
		{"location null", `{"locations":[{"name":"a","description":"b","location":null}]}`, 0},
		{"extra fields tolerated", `{"locations":[{"name":"a","description":"b","location":"c","rating":5}]}`, 1},
		{"empty strings are valid", `{"locations":[{"name":"","description":"","location":""}]}`, 1},
		{"element not an object", `{"locations":["just a string"]}`, 0},
		{"mixed valid and invalid", `{"locations":[{"name":"a","description":"b","location":"c"},{"name":"X"},{"name":"d","description":"e","location":"f"}]}`, 2},
	}

	d := decode.New(decode.DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Decode([]byte(tt.raw))
			if len(got) != tt.expected {
				t.Errorf("Decode produced %d places, want %d: %+v", len(got), tt.expected, got)
			}
		})
	}
}

func TestDecodeShapeFailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", `<html>502 Bad Gateway</html>`},
		{"empty body", ``},
		{"JSON but missing list key", `{"spots":[{"name":"a","description":"b","location":"c"}]}`},
		{"list key not an array", `{"locations":{"name":"a"}}`},
		{"list key is a string", `{"locations":"none"}`},
		{"top level is an array", `[{"name":"a","description":"b","location":"c"}]`},
		{"top level null", `null`},
	}

	d := decode.New(decode.DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Decode([]byte(tt.raw)); len(got) != 0 {
				t.Errorf("Decode = %+v, want empty", got)
			}
		})
	}
}

func TestDecodeCustomKeys(t *testing.T) {
	raw := []byte(`{"spots":[{"title":"Entropy","about":"Cafe","where":"Tech Spot 1"}]}`)

	d := decode.New(decode.Config{
		ListKey:        "spots",
		NameKey:        "title",
		DescriptionKey: "about",
		LocationKey:    "where",
	})

	got := d.Decode(raw)
	want := []entity.Place{{Name: "Entropy", Description: "Cafe", Location: "Tech Spot 1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmptyKeysFallBackToDefaults(t *testing.T) {
	raw := []byte(`{"locations":[{"name":"a","description":"b","location":"c"}]}`)

	d := decode.New(decode.Config{})
	if got := d.Decode(raw); len(got) != 1 {
		t.Errorf("Decode with zero config = %+v, want one place", got)
	}
}
