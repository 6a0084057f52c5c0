package testutil

import (
	"fmt"

	"photorg/internal/photorg"
)

// RecordingObserver records every notification as a short string,
// e.g. "phase-started plan" or "command simulate mkdir \"/p/2023-05\"".
type RecordingObserver struct {
	Events []string
}

func (o *RecordingObserver) record(format string, args ...any) {
	o.Events = append(o.Events, fmt.Sprintf(format, args...))
}

func (o *RecordingObserver) PhaseStarted(phase photorg.Phase, target string) {
	o.record("phase-started %s", phase)
}

func (o *RecordingObserver) PhaseFinished(phase photorg.Phase) {
	o.record("phase-finished %s", phase)
}

func (o *RecordingObserver) DirectoryEntered(path string) {
	o.record("directory-entered %s", path)
}

func (o *RecordingObserver) DirectoryFound(path string) {
	o.record("directory-found %s", path)
}

func (o *RecordingObserver) PhotoFound(photo *photorg.Photo, organized bool) {
	o.record("photo-found %s organized=%t", photo.Path, organized)
}

func (o *RecordingObserver) CheckingDuplicates(photo *photorg.Photo) {
	o.record("checking-duplicates %s", photo.Path)
}

func (o *RecordingObserver) DuplicateFound(original, duplicate *photorg.Photo) {
	o.record("duplicate-found %s of %s", duplicate.Path, original.Path)
}

func (o *RecordingObserver) CommandStarted(phase photorg.Phase, cmd photorg.Command) {
	o.record("command %s %s", phase, cmd)
}

func (o *RecordingObserver) NothingToDo() {
	o.record("nothing-to-do")
}

// Has reports whether event was recorded.
func (o *RecordingObserver) Has(event string) bool {
	for _, e := range o.Events {
		if e == event {
			return true
		}
	}
	return false
}

var _ photorg.Observer = (*RecordingObserver)(nil)
