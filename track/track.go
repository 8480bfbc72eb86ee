// Package track wires stat tables into an ark world. It provides three
// interchangeable mutation pathways that all funnel into the same
// operation protocol: direct handles for immediate mutation, a command
// queue flushed at the step's synchronization point, and per-resource
// event channels drained once per scheduling cycle.
package track

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tally/stat"
)

// Holder is implemented by components and resources that embed a stat
// table.
type Holder interface {
	Stats() *stat.Table
}

// Handle applies operations immediately and synchronously against one
// borrowed table. Mutations are visible to anything observing the same
// component or resource within the current step. The zero Handle is inert.
type Handle struct {
	table *stat.Table
}

// NewHandle wraps a table in a direct-mutation handle.
func NewHandle(t *stat.Table) Handle {
	return Handle{table: t}
}

// EntityHandle borrows the table embedded in entity e's component C. The
// second return is false when e is dead or lacks C.
func EntityHandle[C any, P interface {
	*C
	Holder
}](w *ecs.World, e ecs.Entity) (Handle, bool) {
	if !w.Alive(e) {
		return Handle{}, false
	}
	m := ecs.NewMap[C](w)
	if !m.Has(e) {
		return Handle{}, false
	}
	return Handle{table: P(m.Get(e)).Stats()}, true
}

// ResourceHandle borrows the table embedded in the world's R singleton.
// The second return is false when the resource is absent.
func ResourceHandle[R any, P interface {
	*R
	Holder
}](w *ecs.World) (Handle, bool) {
	res := ecs.GetResource[R](w)
	if res == nil {
		return Handle{}, false
	}
	return Handle{table: P(res).Stats()}, true
}

// Apply runs op against the borrowed table and returns the handle for
// chaining.
func (h Handle) Apply(op stat.Operation) Handle {
	if h.table != nil {
		h.table.Apply(op)
	}
	return h
}

// Add merges v into the stat named by id, creating it when absent.
func (h Handle) Add(id stat.Identifier, v stat.Value) Handle {
	return h.Apply(stat.Add(id, v))
}

// Sub subtracts v from the stat named by id, creating it when absent.
func (h Handle) Sub(id stat.Identifier, v stat.Value) Handle {
	return h.Apply(stat.Sub(id, v))
}

// Set stores v under id, replacing any existing payload.
func (h Handle) Set(id stat.Identifier, v stat.Value) Handle {
	return h.Apply(stat.Set(id, v))
}

// Remove deletes the stat named by id.
func (h Handle) Remove(id stat.Identifier) Handle {
	return h.Apply(stat.Remove(id))
}

// Reset zeroes the stat named by id, if it exists.
func (h Handle) Reset(id stat.Identifier) Handle {
	return h.Apply(stat.Reset(id))
}

// Get returns the payload stored for id.
func (h Handle) Get(id stat.Identifier) (stat.Value, bool) {
	if h.table == nil {
		return nil, false
	}
	return h.table.Get(id)
}

// Table returns the borrowed table, nil for the zero Handle.
func (h Handle) Table() *stat.Table { return h.table }
