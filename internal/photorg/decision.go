package photorg

import "time"

// TimeAction is the outcome of an uncertain capture time prompt.
type TimeAction int

const (
	// KeepTime accepts the resolved capture time as is.
	KeepTime TimeAction = iota
	// OverrideTime replaces the capture time with TimeDecision.Time.
	OverrideTime
	// AbortTime stops the run.
	AbortTime
)

// TimeDecision answers an uncertain capture time prompt.
type TimeDecision struct {
	Action TimeAction
	Time   time.Time // only used with OverrideTime
}

// DuplicateAction is the outcome of a duplicate prompt.
type DuplicateAction int

const (
	// KeepDuplicate leaves the duplicate on disk and excludes it from planning.
	KeepDuplicate DuplicateAction = iota
	// DeleteDuplicate deletes the duplicate.
	DeleteDuplicate
	// AbortDuplicate stops the run.
	AbortDuplicate
)

// DecisionProvider resolves the cases the planner cannot decide alone.
// Implementations may prompt interactively or answer from configuration.
type DecisionProvider interface {
	// ResolveUncertainTime is called for every photo whose capture time
	// was not read from embedded metadata.
	ResolveUncertainTime(photo *Photo) (TimeDecision, error)

	// ResolveDuplicate is called when duplicate has the same content as
	// original. The digests computed so far are available on both photos.
	ResolveDuplicate(original, duplicate *Photo) (DuplicateAction, error)
}
