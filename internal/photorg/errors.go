package photorg

import (
	"errors"
	"fmt"
)

var (
	// ErrAborted is returned when the decision provider chooses to abort the run.
	ErrAborted = errors.New("aborted")

	// ErrNotImage is returned by a MetadataReader for content that cannot be
	// identified as an image.
	ErrNotImage = errors.New("not an image")

	// ErrNotFound is returned when a command's source or target is missing.
	ErrNotFound = errors.New("no such file or directory")

	// ErrExists is returned when a command's destination is already present.
	ErrExists = errors.New("file exists")

	// ErrIsDirectory is returned when a file command targets a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// CommandError records the command that failed and why.
type CommandError struct {
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
