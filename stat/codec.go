package stat

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Payload kinds opt into persistence by registering a stable tag. The
// registry maps tag to factory for decoding and concrete kind to tag for
// encoding, so a table of polymorphic payloads round-trips without the
// persistence layer knowing the kinds in advance.
//
// Registration must happen during program setup; the maps are read-only
// afterwards.
var (
	kindFactories = map[string]func() Value{}
	kindTags      = map[reflect.Type]string{}
)

// RegisterKind makes a payload kind known to the table codecs under tag.
// The factory must return a fresh, decodable instance of the kind.
// Re-registering an identical pairing is a no-op so that independent
// packages may both register a shared kind; a conflicting registration
// panics, following encoding/gob.
func RegisterKind(tag string, fn func() Value) {
	if tag == "" {
		panic("stat: RegisterKind with empty tag")
	}
	if fn == nil {
		panic("stat: RegisterKind with nil factory")
	}
	rt := reflect.TypeOf(fn())
	if existing, ok := kindFactories[tag]; ok {
		if reflect.TypeOf(existing()) != rt {
			panic(fmt.Sprintf("stat: tag %q already registered for a different kind", tag))
		}
		return
	}
	if prev, ok := kindTags[rt]; ok && prev != tag {
		panic(fmt.Sprintf("stat: kind %s already registered as %q", rt, prev))
	}
	kindFactories[tag] = fn
	kindTags[rt] = tag
}

// TagOf returns the registered tag for v's concrete kind.
func TagOf(v Value) (string, bool) {
	tag, ok := kindTags[reflect.TypeOf(v)]
	return tag, ok
}

// kindLabel is TagOf with the Go type as fallback, for logs and exports.
func kindLabel(v Value) string {
	if tag, ok := TagOf(v); ok {
		return tag
	}
	return fmt.Sprintf("%T", v)
}

func init() {
	RegisterKind("counter", func() Value { return new(Counter) })
	RegisterKind("gauge", func() Value { return new(Gauge) })
	RegisterKind("elapsed", func() Value { return new(Elapsed) })
	RegisterKind("countmap", func() Value { return &CountMap{} })
	RegisterKind("sample", func() Value { return &Sample{} })
}

// yamlEntry is the serialized envelope of one table entry.
type yamlEntry struct {
	Kind  string    `yaml:"kind"`
	Value yaml.Node `yaml:"value"`
}

type yamlEntryOut struct {
	Kind  string `yaml:"kind"`
	Value Value  `yaml:"value"`
}

// MarshalYAML implements yaml.Marshaler. Every stored payload kind must be
// registered.
func (t *Table) MarshalYAML() (any, error) {
	out := make(map[string]yamlEntryOut, t.Len())
	for key, v := range t.stats {
		tag, ok := TagOf(v)
		if !ok {
			return nil, fmt.Errorf("marshal stat %q: unregistered kind %T", key, v)
		}
		out[key] = yamlEntryOut{Kind: tag, Value: v}
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, replacing the table contents.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]yamlEntry
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decoding stat table: %w", err)
	}
	t.stats = nil
	for key, entry := range raw {
		fn, ok := kindFactories[entry.Kind]
		if !ok {
			return fmt.Errorf("decoding stat %q: unknown kind %q", key, entry.Kind)
		}
		v := fn()
		if err := entry.Value.Decode(v); err != nil {
			return fmt.Errorf("decoding stat %q: %w", key, err)
		}
		t.put(key, v)
	}
	return nil
}
