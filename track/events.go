package track

import (
	"reflect"

	"github.com/pthm-cable/tally/stat"
)

// Bus carries stat operations destined for resource-scoped tables, keyed
// by resource type. Operations accumulate FIFO until the listener
// registered for that type drains them, once per scheduling cycle.
// Operations for types that never register stay pending; bounding that is
// the host's concern.
type Bus struct {
	pending map[reflect.Type][]stat.Operation
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{pending: map[reflect.Type][]stat.Operation{}}
}

func typeOf[R any]() reflect.Type {
	return reflect.TypeOf((*R)(nil)).Elem()
}

// Emit broadcasts op toward the resource type R.
func Emit[R any](b *Bus, op stat.Operation) {
	t := typeOf[R]()
	b.pending[t] = append(b.pending[t], op)
}

// EmitAdd broadcasts an add of v to R's stat named by id.
func EmitAdd[R any](b *Bus, id stat.Identifier, v stat.Value) {
	Emit[R](b, stat.Add(id, v))
}

// EmitSub broadcasts a subtract of v from R's stat named by id.
func EmitSub[R any](b *Bus, id stat.Identifier, v stat.Value) {
	Emit[R](b, stat.Sub(id, v))
}

// EmitSet broadcasts a set of R's stat named by id to v.
func EmitSet[R any](b *Bus, id stat.Identifier, v stat.Value) {
	Emit[R](b, stat.Set(id, v))
}

// EmitRemove broadcasts removal of R's stat named by id.
func EmitRemove[R any](b *Bus, id stat.Identifier) {
	Emit[R](b, stat.Remove(id))
}

// EmitReset broadcasts a reset of R's stat named by id.
func EmitReset[R any](b *Bus, id stat.Identifier) {
	Emit[R](b, stat.Reset(id))
}

// PendingFor returns the number of undrained operations for R.
func PendingFor[R any](b *Bus) int {
	return len(b.pending[typeOf[R]()])
}

// take removes and returns all pending operations for t in receipt order.
func (b *Bus) take(t reflect.Type) []stat.Operation {
	ops, ok := b.pending[t]
	if ok {
		delete(b.pending, t)
	}
	return ops
}
