package archive

import "fmt"

// Stage identifies the build phase that produced a Diagnostic.
type Stage uint8

const (
	StageAllocate   Stage = 0x1 // StageAllocate covers buffer allocation from the representative dataset.
	StageFill       Stage = 0x2 // StageFill covers per-entity buffer population.
	StageAttributes Stage = 0x3 // StageAttributes covers attribute collection.
	StageAdapt      Stage = 0x4 // StageAdapt covers container adaptation.
)

func (s Stage) String() string {
	switch s {
	case StageAllocate:
		return "allocate"
	case StageFill:
		return "fill"
	case StageAttributes:
		return "attributes"
	case StageAdapt:
		return "adapt"
	default:
		return "unknown"
	}
}

// Diagnostic records one non-fatal condition encountered while building an
// archive. Non-fatal conditions reduce variable coverage but never abort the
// build; they are aggregated and returned to the caller instead of being
// logged from inside the library.
type Diagnostic struct {
	// Stage is the build phase that produced the diagnostic.
	Stage Stage
	// Variable is the affected variable name.
	Variable string
	// Entity is the affected entity identifier. Only meaningful when
	// HasEntity is true (fill-stage diagnostics).
	Entity int64
	// HasEntity reports whether Entity identifies a specific entity.
	HasEntity bool
	// Reason describes the condition.
	Reason string
}

func (d Diagnostic) String() string {
	if d.HasEntity {
		return fmt.Sprintf("%s: variable %q, entity %d: %s", d.Stage, d.Variable, d.Entity, d.Reason)
	}

	return fmt.Sprintf("%s: variable %q: %s", d.Stage, d.Variable, d.Reason)
}
