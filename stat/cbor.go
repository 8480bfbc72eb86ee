package stat

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEntry mirrors the YAML envelope in binary form.
type cborEntry struct {
	Kind string          `cbor:"kind"`
	Raw  cbor.RawMessage `cbor:"value"`
}

// EncodeTable serializes t to CBOR. Every stored payload kind must be
// registered with RegisterKind.
func EncodeTable(t *Table) ([]byte, error) {
	out := make(map[string]cborEntry, t.Len())
	for key, v := range t.stats {
		tag, ok := TagOf(v)
		if !ok {
			return nil, fmt.Errorf("encoding stat %q: unregistered kind %T", key, v)
		}
		raw, err := cbor.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding stat %q: %w", key, err)
		}
		out[key] = cborEntry{Kind: tag, Raw: raw}
	}
	data, err := cbor.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding stat table: %w", err)
	}
	return data, nil
}

// DecodeTable restores a table serialized with EncodeTable.
func DecodeTable(data []byte) (*Table, error) {
	var raw map[string]cborEntry
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding stat table: %w", err)
	}
	t := NewTable()
	for key, entry := range raw {
		fn, ok := kindFactories[entry.Kind]
		if !ok {
			return nil, fmt.Errorf("decoding stat %q: unknown kind %q", key, entry.Kind)
		}
		v := fn()
		if err := cbor.Unmarshal(entry.Raw, v); err != nil {
			return nil, fmt.Errorf("decoding stat %q: %w", key, err)
		}
		t.put(key, v)
	}
	return t, nil
}
