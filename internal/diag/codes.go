package diag

import (
	"fmt"
)

type Code uint16

// Codes are grouped in numbered ranges per phase. This subsystem only owns
// the derivation block; lexer and parser ranges live with their phases.
const (
	UnknownCode Code = 0

	// Conformance derivation
	DeriveInfo                    Code = 3300
	DeriveNotEligible             Code = 3301
	DeriveCrossFileExtension      Code = 3302
	DeriveInitInNonFinalExtension Code = 3303
	DeriveFieldNotConforming      Code = 3304
	DeriveUnknownInterface        Code = 3305
	DeriveMissingWitness          Code = 3306
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "E0000"
	default:
		return fmt.Sprintf("E%04d", uint16(c))
	}
}

// Name returns a short mnemonic for the derivation codes, for human output.
func (c Code) Name() string {
	switch c {
	case DeriveInfo:
		return "derive-info"
	case DeriveNotEligible:
		return "derive-not-eligible"
	case DeriveCrossFileExtension:
		return "derive-cross-file-extension"
	case DeriveInitInNonFinalExtension:
		return "derive-init-in-nonfinal-extension"
	case DeriveFieldNotConforming:
		return "derive-field-not-conforming"
	case DeriveUnknownInterface:
		return "derive-unknown-interface"
	case DeriveMissingWitness:
		return "derive-missing-witness"
	default:
		return "unknown"
	}
}
