// Package decode turns raw response bodies into validated place records.
//
// The wire schema is externally owned and may grow or drop fields at any
// time, so the decoder parses the body as a generic JSON value and validates
// each element individually instead of binding to a static schema. Elements
// that fail validation are dropped; shape-level failures (invalid JSON,
// missing or mistyped list key) yield an empty collection rather than an
// error, matching the presenter's unified failure surface.
package decode

import (
	"github.com/tidwall/gjson"

	"spot-board/internal/domain/entity"
)

// Config names the JSON keys the decoder reads. Keys are plain field names,
// not gjson path expressions.
type Config struct {
	// ListKey is the top-level field holding the array of elements.
	ListKey string

	// NameKey, DescriptionKey and LocationKey name the three required
	// string fields of each element.
	NameKey        string
	DescriptionKey string
	LocationKey    string
}

// DefaultConfig returns the key configuration for the stock board endpoint.
func DefaultConfig() Config {
	return Config{
		ListKey:        "locations",
		NameKey:        "name",
		DescriptionKey: "description",
		LocationKey:    "location",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ListKey == "" {
		c.ListKey = def.ListKey
	}
	if c.NameKey == "" {
		c.NameKey = def.NameKey
	}
	if c.DescriptionKey == "" {
		c.DescriptionKey = def.DescriptionKey
	}
	if c.LocationKey == "" {
		c.LocationKey = def.LocationKey
	}
	return c
}

// Decoder decodes raw response bodies into place records.
// Decode is a pure function of the raw bytes and the configured keys,
// so a Decoder is safe for concurrent use.
type Decoder struct {
	cfg Config
}

// New creates a Decoder for the given key configuration.
// Empty keys fall back to their defaults.
func New(cfg Config) Decoder {
	return Decoder{cfg: cfg.withDefaults()}
}

// Decode parses raw as JSON, extracts the configured list key and maps each
// element into a Place. Invalid elements are dropped; source order of the
// surviving elements is preserved. All failure paths converge to an empty
// collection.
func (d Decoder) Decode(raw []byte) []entity.Place {
	if !gjson.ValidBytes(raw) {
		return nil
	}

	root := gjson.ParseBytes(raw)
	list := root.Get(d.cfg.ListKey)
	if !list.IsArray() {
		return nil
	}

	var places []entity.Place
	list.ForEach(func(_, elem gjson.Result) bool {
		if place, ok := d.placeFromElement(elem); ok {
			places = append(places, place)
		}
		return true
	})

	return places
}

// placeFromElement validates one array element. An element becomes a Place
// only if all three required fields are present and string-typed.
func (d Decoder) placeFromElement(elem gjson.Result) (entity.Place, bool) {
	if !elem.IsObject() {
		return entity.Place{}, false
	}

	name := elem.Get(d.cfg.NameKey)
	description := elem.Get(d.cfg.DescriptionKey)
	location := elem.Get(d.cfg.LocationKey)

	if name.Type != gjson.String || description.Type != gjson.String || location.Type != gjson.String {
		return entity.Place{}, false
	}

	return entity.Place{
		Name:        name.String(),
		Description: description.String(),
		Location:    location.String(),
	}, true
}
