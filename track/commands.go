package track

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tally/stat"
)

// Command is one deferred unit of work run against the world at flush
// time.
type Command func(w *ecs.World)

// Queue buffers commands until the host flushes them at a synchronization
// point. Commands run single-threaded in issuance order; relative order
// against event-channel mutations is up to the host's step layout.
type Queue struct {
	cmds []Command
}

// NewQueue returns an empty command queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends cmd to the buffer.
func (q *Queue) Push(cmd Command) {
	q.cmds = append(q.cmds, cmd)
}

// Len returns the number of buffered commands.
func (q *Queue) Len() int { return len(q.cmds) }

// Flush runs all buffered commands in order and clears the buffer.
// Commands pushed while flushing run at the next flush.
func (q *Queue) Flush(w *ecs.World) {
	cmds := q.cmds
	q.cmds = nil
	for _, cmd := range cmds {
		cmd(w)
	}
}

// ModifyEntityStat queues op against the table embedded in entity e's
// component C. The command becomes a no-op at flush time when e has died
// or lost C in the meantime.
func ModifyEntityStat[C any, P interface {
	*C
	Holder
}](q *Queue, e ecs.Entity, op stat.Operation) {
	q.Push(func(w *ecs.World) {
		if h, ok := EntityHandle[C, P](w, e); ok {
			h.Apply(op)
		}
	})
}

// Commands queues stat operations against one entity's component C,
// mirroring Handle's chaining API in deferred form.
type Commands[C any, P interface {
	*C
	Holder
}] struct {
	queue  *Queue
	entity ecs.Entity
}

// EntityStats returns deferred stat commands targeting entity e's
// component C.
func EntityStats[C any, P interface {
	*C
	Holder
}](q *Queue, e ecs.Entity) *Commands[C, P] {
	return &Commands[C, P]{queue: q, entity: e}
}

// Entity returns the targeted entity.
func (c *Commands[C, P]) Entity() ecs.Entity { return c.entity }

// Retarget points subsequent commands at a different entity.
func (c *Commands[C, P]) Retarget(e ecs.Entity) *Commands[C, P] {
	c.entity = e
	return c
}

// Apply queues op.
func (c *Commands[C, P]) Apply(op stat.Operation) *Commands[C, P] {
	ModifyEntityStat[C, P](c.queue, c.entity, op)
	return c
}

// Add queues an add of v to the stat named by id.
func (c *Commands[C, P]) Add(id stat.Identifier, v stat.Value) *Commands[C, P] {
	return c.Apply(stat.Add(id, v))
}

// Sub queues a subtract of v from the stat named by id.
func (c *Commands[C, P]) Sub(id stat.Identifier, v stat.Value) *Commands[C, P] {
	return c.Apply(stat.Sub(id, v))
}

// Set queues a set of id to v.
func (c *Commands[C, P]) Set(id stat.Identifier, v stat.Value) *Commands[C, P] {
	return c.Apply(stat.Set(id, v))
}

// Remove queues removal of the stat named by id.
func (c *Commands[C, P]) Remove(id stat.Identifier) *Commands[C, P] {
	return c.Apply(stat.Remove(id))
}

// Reset queues a reset of the stat named by id.
func (c *Commands[C, P]) Reset(id stat.Identifier) *Commands[C, P] {
	return c.Apply(stat.Reset(id))
}
