package diag

// Severity ranks a diagnostic. Derivation failures are errors; the lower
// levels exist for notes attached to them.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError marks a diagnostic that fails the run.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
