package stat

import (
	"fmt"
	"log/slog"
)

// OpKind selects how an Operation is applied to a table entry.
type OpKind uint8

const (
	// OpAdd merges the payload into the entry, creating it when absent.
	OpAdd OpKind = iota
	// OpSub subtracts the payload from the entry, creating it when absent.
	OpSub
	// OpSet unconditionally replaces or inserts the entry.
	OpSet
	// OpRemove deletes the entry.
	OpRemove
	// OpReset replaces an existing entry with its own zero value.
	OpReset
)

// String returns the lowercase name of the kind.
func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpSet:
		return "set"
	case OpRemove:
		return "remove"
	case OpReset:
		return "reset"
	}
	return fmt.Sprintf("opkind(%d)", uint8(k))
}

// Operation is the uniform mutation descriptor that every entry point
// (direct handle, deferred command, event) funnels through. It is built
// once, applied by Table.Apply, and then discarded; tables store their
// own copies, never the operation's payload itself.
type Operation struct {
	Key  string
	Kind OpKind
	Data Value // nil for OpRemove and OpReset
}

// Add builds an add operation, converting id to its key immediately.
func Add(id Identifier, v Value) Operation {
	return Operation{Key: id.Key(), Kind: OpAdd, Data: v}
}

// Sub builds a subtract operation.
func Sub(id Identifier, v Value) Operation {
	return Operation{Key: id.Key(), Kind: OpSub, Data: v}
}

// Set builds a set operation.
func Set(id Identifier, v Value) Operation {
	return Operation{Key: id.Key(), Kind: OpSet, Data: v}
}

// Remove builds a remove operation.
func Remove(id Identifier) Operation {
	return Operation{Key: id.Key(), Kind: OpRemove}
}

// Reset builds a reset operation.
func Reset(id Identifier) Operation {
	return Operation{Key: id.Key(), Kind: OpReset}
}

// LogValue implements slog.LogValuer for structured logging.
func (op Operation) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("key", op.Key),
		slog.String("op", op.Kind.String()),
	}
	if op.Data != nil {
		attrs = append(attrs, slog.String("kind", kindLabel(op.Data)))
	}
	return slog.GroupValue(attrs...)
}
