package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Document is the raw heterogeneous knowledge input
type Document struct {
	DBVersion Scalar    `json:"db_version" yaml:"db_version"`
	FAQ       []FAQItem `json:"faq" yaml:"faq"`
	Policies  Policies  `json:"hotel_policies" yaml:"hotel_policies"`
	Rooms     []Room    `json:"rooms" yaml:"rooms"`
	Amenities []Amenity `json:"amenities" yaml:"amenities"`
	Menus     Menus     `json:"menus" yaml:"menus"`
}

// FAQItem is an explicit question/answer pair
type FAQItem struct {
	Question   string   `json:"question" yaml:"question"`
	Answer     string   `json:"answer" yaml:"answer"`
	Alternates []string `json:"alternates" yaml:"alternates"`
	Alts       []string `json:"alts" yaml:"alts"` // older documents use the short key
}

// Room is one room record
type Room struct {
	RoomType      string   `json:"room_type" yaml:"room_type"`
	Description   string   `json:"description" yaml:"description"`
	Features      []string `json:"features" yaml:"features"`
	PricePerNight Scalar   `json:"price_per_night" yaml:"price_per_night"`
}

// Amenity is one amenity record
type Amenity struct {
	Name        string       `json:"amenity_name" yaml:"amenity_name"`
	Description string       `json:"description" yaml:"description"`
	Rules       AmenityRules `json:"rules" yaml:"rules"`
}

// AmenityRules holds the optional operating rules of an amenity
type AmenityRules struct {
	Timings Scalar `json:"timings" yaml:"timings"`
}

// MenuItem is one dish in a meal section
type MenuItem struct {
	Name        string `json:"name" yaml:"name"`
	Price       Scalar `json:"price" yaml:"price"`
	Description string `json:"description" yaml:"description"`
}

// Policy is one hotel policy key with its text
type Policy struct {
	Key   string
	Value string
}

// Policies is the hotel_policies mapping in document order.
// Entries whose value is not a string are dropped while decoding.
type Policies []Policy

// Meal is one menus section in document order
type Meal struct {
	Name  string
	Items []MenuItem
}

// Menus is the menus mapping in document order
type Menus []Meal

// Scalar is a string, number or boolean leaf. Prices and versions show up
// both quoted and bare in real documents.
type Scalar struct {
	Text     string
	Number   float64
	IsNumber bool
	Set      bool
}

// String renders the scalar the way it was written, without trailing zeros for numbers
func (s Scalar) String() string {
	if !s.Set {
		return ""
	}
	if s.IsNumber {
		return strconv.FormatFloat(s.Number, 'f', -1, 64)
	}
	return strings.TrimSpace(s.Text)
}

// IsZero reports whether the scalar is absent or blank
func (s Scalar) IsZero() bool {
	return s.String() == ""
}

// Version parses db_version as a semantic version
func (d *Document) Version() (*semver.Version, error) {
	raw := d.DBVersion.String()
	if raw == "" {
		return nil, ErrNoVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parse db_version %q: %w", raw, err)
	}
	return v, nil
}

// documentFields avoids recursion in the custom decoders
type documentFields Document

// UnmarshalJSON accepts either a sectioned object or a bare faq list
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []FAQItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*d = Document{FAQ: items}
		return nil
	}

	var fields documentFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}
	*d = Document(fields)
	return nil
}

// UnmarshalYAML accepts either a sectioned mapping or a bare faq sequence
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var items []FAQItem
		if err := value.Decode(&items); err != nil {
			return err
		}
		*d = Document{FAQ: items}
		return nil
	}

	var fields documentFields
	if err := value.Decode(&fields); err != nil {
		return err
	}
	*d = Document(fields)
	return nil
}

// UnmarshalJSON reads the mapping in order and keeps string values only
func (p *Policies) UnmarshalJSON(data []byte) error {
	var out Policies
	err := decodeOrderedJSON(data, func(key string, raw json.RawMessage) error {
		var value string
		if json.Unmarshal(raw, &value) != nil {
			return nil
		}
		out = append(out, Policy{Key: key, Value: value})
		return nil
	})
	if err != nil {
		return fmt.Errorf("hotel_policies: %w", err)
	}
	*p = out
	return nil
}

// UnmarshalYAML reads the mapping in order and keeps string values only
func (p *Policies) UnmarshalYAML(value *yaml.Node) error {
	var out Policies
	err := decodeOrderedYAML(value, func(key string, node *yaml.Node) error {
		if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
			return nil
		}
		out = append(out, Policy{Key: key, Value: node.Value})
		return nil
	})
	if err != nil {
		return fmt.Errorf("hotel_policies: %w", err)
	}
	*p = out
	return nil
}

// UnmarshalJSON reads meal sections in order; sections that are not lists are ignored
func (m *Menus) UnmarshalJSON(data []byte) error {
	var out Menus
	err := decodeOrderedJSON(data, func(key string, raw json.RawMessage) error {
		if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '[' {
			return nil
		}
		var items []MenuItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("meal %q: %w", key, err)
		}
		out = append(out, Meal{Name: key, Items: items})
		return nil
	})
	if err != nil {
		return fmt.Errorf("menus: %w", err)
	}
	*m = out
	return nil
}

// UnmarshalYAML reads meal sections in order; sections that are not lists are ignored
func (m *Menus) UnmarshalYAML(value *yaml.Node) error {
	var out Menus
	err := decodeOrderedYAML(value, func(key string, node *yaml.Node) error {
		if node.Kind != yaml.SequenceNode {
			return nil
		}
		var items []MenuItem
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("meal %q: %w", key, err)
		}
		out = append(out, Meal{Name: key, Items: items})
		return nil
	})
	if err != nil {
		return fmt.Errorf("menus: %w", err)
	}
	*m = out
	return nil
}

// UnmarshalJSON accepts strings, numbers, booleans and null
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || string(trimmed) == "null":
		*s = Scalar{}
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*s = Scalar{Text: text, Set: true}
	case string(trimmed) == "true" || string(trimmed) == "false":
		*s = Scalar{Text: string(trimmed), Set: true}
	default:
		n, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrNotScalar, trimmed)
		}
		*s = Scalar{Number: n, IsNumber: true, Set: true}
	}
	return nil
}

// UnmarshalYAML accepts any scalar node
func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w at line %d", ErrNotScalar, value.Line)
	}
	switch value.ShortTag() {
	case "!!null":
		*s = Scalar{}
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			*s = Scalar{Text: value.Value, Set: true}
			return nil
		}
		*s = Scalar{Number: n, IsNumber: true, Set: true}
	default:
		*s = Scalar{Text: value.Value, Set: true}
	}
	return nil
}

func decodeOrderedJSON(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotMapping
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return ErrNotMapping
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	// closing brace
	_, err = dec.Token()
	return err
}

func decodeOrderedYAML(value *yaml.Node, fn func(key string, node *yaml.Node) error) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w at line %d", ErrNotMapping, value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		if err := fn(value.Content[i].Value, value.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
