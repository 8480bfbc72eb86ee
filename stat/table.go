package stat

import "sort"

// Table maps stat keys to their payloads. Each table is exclusively owned
// by the resource or component that embeds it; there is no internal
// locking. The zero value is ready to use.
type Table struct {
	stats map[string]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the payload stored for id, if any. Reads never mutate the
// table.
func (t *Table) Get(id Identifier) (Value, bool) {
	return t.GetKey(id.Key())
}

// GetKey is Get for a raw string key.
func (t *Table) GetKey(key string) (Value, bool) {
	v, ok := t.stats[key]
	return v, ok
}

// GetAs returns the payload stored for id in t, asserted to the concrete
// kind T. The second return is false when the key is absent or the stored
// kind differs.
func GetAs[T Value](t *Table, id Identifier) (T, bool) {
	v, ok := t.stats[id.Key()]
	if !ok {
		var zero T
		return zero, false
	}
	c, ok := v.(T)
	return c, ok
}

// Apply executes op against the table. This is the single choke point all
// mutation pathways converge on. Absent targets and kind-mismatched merges
// are silent no-ops.
func (t *Table) Apply(op Operation) {
	switch op.Kind {
	case OpAdd:
		if op.Data != nil {
			t.entry(op.Key, op.Data).Add(op.Data)
		}
	case OpSub:
		if op.Data != nil {
			t.entry(op.Key, op.Data).Sub(op.Data)
		}
	case OpSet:
		if op.Data != nil {
			// The table owns its payloads; never alias the caller's value.
			v := op.Data.Zero()
			v.Add(op.Data)
			t.put(op.Key, v)
		}
	case OpRemove:
		delete(t.stats, op.Key)
	case OpReset:
		if v, ok := t.stats[op.Key]; ok {
			t.stats[op.Key] = v.Zero()
		}
	}
}

// Add merges v into the stat named by id, creating the entry when absent.
func (t *Table) Add(id Identifier, v Value) { t.Apply(Add(id, v)) }

// Sub subtracts v from the stat named by id, creating the entry when
// absent.
func (t *Table) Sub(id Identifier, v Value) { t.Apply(Sub(id, v)) }

// Set stores a copy of v under id, replacing any existing payload. The
// caller keeps ownership of v itself.
func (t *Table) Set(id Identifier, v Value) { t.Apply(Set(id, v)) }

// Remove deletes the stat named by id.
func (t *Table) Remove(id Identifier) { t.Apply(Remove(id)) }

// Reset replaces the stat named by id with its zero value, if it exists.
func (t *Table) Reset(id Identifier) { t.Apply(Reset(id)) }

// Len returns the number of stats stored.
func (t *Table) Len() int { return len(t.stats) }

// Keys returns all stat keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.stats))
	for k := range t.stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both tables hold the same keys with equal
// payloads.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for k, v := range t.stats {
		ov, ok := other.stats[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// entry returns the payload at key, seeding an empty value of the same
// kind as seed when the key is absent.
func (t *Table) entry(key string, seed Value) Value {
	if v, ok := t.stats[key]; ok {
		return v
	}
	v := seed.Zero()
	t.put(key, v)
	return v
}

func (t *Table) put(key string, v Value) {
	if t.stats == nil {
		t.stats = make(map[string]Value)
	}
	t.stats[key] = v
}
