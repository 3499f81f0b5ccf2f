package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// KindArray and KindTuple extend the descriptor space with the composite
// shapes the synthesis builder emits: the all-cases collection and the
// payload aggregate of a variant case.
const (
	KindArray Kind = iota + 16
	KindTuple
)

// ArrayOf returns the TypeID of []elem.
func (in *Interner) ArrayOf(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindArray, Payload: uint32(elem)})
}

// Elem returns the element type of an array TypeID.
func (in *Interner) Elem(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID, false
	}
	return TypeID(tt.Payload), true
}

// TupleOf returns the TypeID of an ordered aggregate of elems. Tuples are
// structural: two calls with the same element list intern to one ID.
func (in *Interner) TupleOf(elems []TypeID) TypeID {
	key := tupleKey(elems)
	if id, ok := in.tupleIndex[key]; ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.tuples))
	if err != nil {
		panic(fmt.Errorf("tuple info overflow: %w", err))
	}
	stored := make([]TypeID, len(elems))
	copy(stored, elems)
	in.tuples = append(in.tuples, stored)
	id := in.internRaw(Type{Kind: KindTuple, Payload: slot})
	in.tupleIndex[key] = id
	return id
}

// TupleElems returns the element types of a tuple TypeID.
func (in *Interner) TupleElems(id TypeID) ([]TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return in.tuples[tt.Payload], true
}

func tupleKey(elems []TypeID) string {
	var sb strings.Builder
	for _, e := range elems {
		fmt.Fprintf(&sb, "%d,", e)
	}
	return sb.String()
}
