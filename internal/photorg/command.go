package photorg

import "fmt"

// Command is a single filesystem mutation in a plan. The set of commands is
// closed: CreateDirectory, MoveFile and DeleteFile.
//
// Apply checks the command's preconditions against b before mutating it, so
// the same plan can be replayed against a Simulacrum and then the real
// filesystem with identical failure semantics.
type Command interface {
	Apply(b Backend) error
	String() string

	command()
}

// CreateDirectory creates Path. It fails if anything already exists there.
type CreateDirectory struct {
	Path string
}

func (c CreateDirectory) Apply(b Backend) error {
	if b.Exists(c.Path) {
		return &CommandError{Command: c, Err: ErrExists}
	}
	if err := b.MakeDir(c.Path); err != nil {
		return &CommandError{Command: c, Err: err}
	}
	return nil
}

func (c CreateDirectory) String() string {
	return fmt.Sprintf("mkdir %q", c.Path)
}

func (CreateDirectory) command() {}

// MoveFile renames Source to Destination. It fails if Source is missing or
// Destination is already present.
type MoveFile struct {
	Source      string
	Destination string
}

func (c MoveFile) Apply(b Backend) error {
	if !b.Exists(c.Source) {
		return &CommandError{Command: c, Err: ErrNotFound}
	}
	if b.Exists(c.Destination) {
		return &CommandError{Command: c, Err: ErrExists}
	}
	if err := b.Rename(c.Source, c.Destination); err != nil {
		return &CommandError{Command: c, Err: err}
	}
	return nil
}

func (c MoveFile) String() string {
	return fmt.Sprintf("mv %q %q", c.Source, c.Destination)
}

func (MoveFile) command() {}

// DeleteFile removes Target. It fails if Target is missing or is a directory.
type DeleteFile struct {
	Target string
}

func (c DeleteFile) Apply(b Backend) error {
	if !b.Exists(c.Target) {
		return &CommandError{Command: c, Err: ErrNotFound}
	}
	if b.IsDir(c.Target) {
		return &CommandError{Command: c, Err: ErrIsDirectory}
	}
	if err := b.Remove(c.Target); err != nil {
		return &CommandError{Command: c, Err: err}
	}
	return nil
}

func (c DeleteFile) String() string {
	return fmt.Sprintf("rm %q", c.Target)
}

func (DeleteFile) command() {}
