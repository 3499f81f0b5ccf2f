// Package iface defines the closed set of compiler-known interfaces that
// are candidates for automatic derivation, together with each interface's
// fixed requirement descriptors. Interfaces are recognized by identity;
// anything outside this set is never derivable.
package iface

import "fmt"

// Known identifies a compiler-recognized interface.
type Known uint8

const (
	Unknown Known = iota
	Equatable
	Hashable
	Comparable
	CaseIterable
	RawRepresentable
	CodingKey
	Encodable
	Decodable
	BridgedError
)

func (k Known) String() string {
	switch k {
	case Equatable:
		return "Equatable"
	case Hashable:
		return "Hashable"
	case Comparable:
		return "Comparable"
	case CaseIterable:
		return "CaseIterable"
	case RawRepresentable:
		return "RawRepresentable"
	case CodingKey:
		return "CodingKey"
	case Encodable:
		return "Encodable"
	case Decodable:
		return "Decodable"
	case BridgedError:
		return "BridgedError"
	default:
		return fmt.Sprintf("Known(%d)", k)
	}
}

// All lists every known interface in a stable order.
func All() []Known {
	return []Known{
		Equatable,
		Hashable,
		Comparable,
		CaseIterable,
		RawRepresentable,
		CodingKey,
		Encodable,
		Decodable,
		BridgedError,
	}
}

// Parse resolves an interface by its source-level name.
func Parse(name string) (Known, bool) {
	for _, k := range All() {
		if k.String() == name {
			return k, true
		}
	}
	return Unknown, false
}
