package kometa

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Value is a node of a rendered document.
type Value interface {
	node() *yaml.Node
}

// Str is a plain string scalar. It is quoted only when a YAML 1.1 or 1.2
// reader would otherwise take it for a number, boolean, or null.
type Str string

// Quoted is a string scalar that is always emitted double-quoted.
type Quoted string

// Int is an integer scalar.
type Int int64

// Float is a floating point scalar. Integral values keep a ".0" suffix.
type Float float64

// Bool is a boolean scalar.
type Bool bool

// Null is the YAML null scalar.
type Null struct{}

// List is a block sequence.
type List []Value

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is a mapping that preserves insertion order.
type Map struct {
	entries []Entry
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

// Set stores value under key. Setting an existing key replaces its value in
// place and keeps its position.
func (m *Map) Set(key string, value Value) *Map {
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = value
			return m
		}
	}
	m.entries = append(m.entries, Entry{Key: key, Value: value})
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	for _, entry := range m.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, entry := range m.entries {
		keys[i] = entry.Key
	}
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

func (m *Map) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range m.entries {
		value := entry.Value
		if value == nil {
			value = Null{}
		}
		n.Content = append(n.Content, Str(entry.Key).node(), value.node())
	}
	return n
}

func (s Str) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(s)}
	if legacyBools[n.Value] || sexagesimal.MatchString(n.Value) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// legacyBools and sexagesimal match plain scalars YAML 1.1 resolves to
// booleans and base-60 numbers. yaml.v3 resolves nodes by 1.2 rules and would
// leave them bare.
var sexagesimal = regexp.MustCompile(`^[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+(?:\.[0-9_]*)?$`)

var legacyBools = map[string]bool{
	"y": true, "Y": true, "n": true, "N": true,
	"yes": true, "Yes": true, "YES": true,
	"no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
}

func (q Quoted) node() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(q), Style: yaml.DoubleQuotedStyle}
}

func (i Int) node() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(i), 10)}
}

func (f Float) node() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(float64(f))}
}

func (b Bool) node() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(b))}
}

func (Null) node() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func (l List) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range l {
		if item == nil {
			item = Null{}
		}
		n.Content = append(n.Content, item.node())
	}
	return n
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}

// FromAny converts a decoded configuration value into a document value.
// Nested mappings are emitted with their keys in ascending order.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Value:
		return val
	case string:
		return Str(val)
	case bool:
		return Bool(val)
	case int:
		return Int(val)
	case int8:
		return Int(val)
	case int16:
		return Int(val)
	case int32:
		return Int(val)
	case int64:
		return Int(val)
	case uint:
		return Int(val)
	case uint8:
		return Int(val)
	case uint16:
		return Int(val)
	case uint32:
		return Int(val)
	case uint64:
		return Int(val)
	case float32:
		return Float(val)
	case float64:
		return Float(val)
	case time.Time:
		return Str(val.Format(time.RFC3339))
	case map[string]any:
		return sortedMap(val, nil)
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, item := range val {
			converted[fmt.Sprint(k)] = item
		}
		return sortedMap(converted, nil)
	case []any:
		list := make(List, len(val))
		for i, item := range val {
			list[i] = FromAny(item)
		}
		return list
	default:
		return Str(fmt.Sprint(val))
	}
}

// sortedMap converts src into a Map with ascending keys, leaving out skip.
func sortedMap(src map[string]any, skip map[string]bool) *Map {
	keys := make([]string, 0, len(src))
	for key := range src {
		if !skip[key] {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	out := NewMap()
	for _, key := range keys {
		out.Set(key, FromAny(src[key]))
	}
	return out
}

// fragment builds an overlay block from user-supplied settings. With a key
// order, keys follow it and the computed name replaces a user name in place or
// comes last. Without one, the name comes first and the rest follow in
// ascending order.
func fragment(src map[string]any, order []string, name string, drop ...string) *Map {
	skip := map[string]bool{}
	for _, key := range drop {
		skip[key] = true
	}
	if len(order) == 0 {
		skip["name"] = true
		out := NewMap().Set("name", Str(name))
		out.entries = append(out.entries, sortedMap(src, skip).entries...)
		return out
	}

	out := NewMap()
	for _, key := range order {
		value, ok := src[key]
		if !ok || skip[key] {
			continue
		}
		if key == "name" {
			out.Set(key, Str(name))
			continue
		}
		out.Set(key, FromAny(value))
		skip[key] = true
	}
	skip["name"] = true
	out.entries = append(out.entries, sortedMap(src, skip).entries...)
	return out.Set("name", Str(name))
}
