package photorg

// Phase names a stage of a run.
type Phase string

const (
	PhasePlan     Phase = "plan"
	PhaseSimulate Phase = "simulate"
	PhaseExecute  Phase = "execute"
)

// Observer receives progress notifications. Observers must not affect control
// flow: the organizer ignores them entirely apart from calling them.
type Observer interface {
	PhaseStarted(phase Phase, target string)
	PhaseFinished(phase Phase)
	DirectoryEntered(path string)
	DirectoryFound(path string)
	PhotoFound(photo *Photo, organized bool)
	CheckingDuplicates(photo *Photo)
	DuplicateFound(original, duplicate *Photo)
	CommandStarted(phase Phase, cmd Command)
	NothingToDo()
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) PhaseStarted(Phase, string)    {}
func (NopObserver) PhaseFinished(Phase)           {}
func (NopObserver) DirectoryEntered(string)       {}
func (NopObserver) DirectoryFound(string)         {}
func (NopObserver) PhotoFound(*Photo, bool)       {}
func (NopObserver) CheckingDuplicates(*Photo)     {}
func (NopObserver) DuplicateFound(*Photo, *Photo) {}
func (NopObserver) CommandStarted(Phase, Command) {}
func (NopObserver) NothingToDo()                  {}
