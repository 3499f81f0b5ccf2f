package types

import (
	"fmt"

	"fortio.org/safecast"

	"tern/internal/source"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
	String  TypeID
}

// NominalInfo stores metadata for a user-declared named type.
type NominalInfo struct {
	Name source.StringID
	Decl source.Span
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Nominal types get a fresh slot per registration: their identity is the
// declaration, not the shape.
type Interner struct {
	types      []Type
	index      map[Type]TypeID
	builtins   Builtins
	nominals   []NominalInfo
	tuples     [][]TypeID
	tupleIndex map[string]TypeID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:      make(map[Type]TypeID, 16),
		tupleIndex: make(map[string]TypeID),
	}
	in.nominals = append(in.nominals, NominalInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns the kind of a TypeID, KindInvalid for unknown IDs.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// RegisterNominal allocates a nominal type slot and returns its TypeID.
// Two registrations with the same name yield distinct types.
func (in *Interner) RegisterNominal(name source.StringID, decl source.Span) TypeID {
	slot, err := safecast.Conv[uint32](len(in.nominals))
	if err != nil {
		panic(fmt.Errorf("nominal info overflow: %w", err))
	}
	in.nominals = append(in.nominals, NominalInfo{Name: name, Decl: decl})
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, Type{Kind: KindNominal, Payload: slot})
	return id
}

// NominalInfo returns metadata for the provided nominal TypeID.
func (in *Interner) NominalInfo(id TypeID) (*NominalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNominal {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.nominals) {
		return nil, false
	}
	return &in.nominals[tt.Payload], true
}

// DisplayName renders a type for diagnostics.
func (in *Interner) DisplayName(id TypeID, strings *source.Interner) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindNominal:
		if info, ok := in.NominalInfo(id); ok {
			if name, ok := strings.Lookup(info.Name); ok && name != "" {
				return name
			}
		}
		return "<anonymous>"
	case KindArray:
		elem, _ := in.Elem(id)
		return "[" + in.DisplayName(elem, strings) + "]"
	default:
		return tt.Kind.String()
	}
}
