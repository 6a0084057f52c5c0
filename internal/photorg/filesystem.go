package photorg

import "io"

// Backend is the target a Command mutates. The real filesystem and the
// in-memory Simulacrum both implement it with the same contract, so a plan
// can be validated against one and then applied to the other.
//
// Backends perform the raw mutation only; the existence and conflict checks
// are made by the commands themselves through Exists and IsDir.
type Backend interface {
	// Exists reports whether anything exists at path.
	Exists(path string) bool

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool

	// MakeDir creates a single directory.
	MakeDir(path string) error

	// Rename moves source to destination.
	Rename(source, destination string) error

	// Remove deletes a single file.
	Remove(path string) error
}

// Opener opens file content for reading.
type Opener interface {
	Open(path *Path) (io.ReadCloser, error)
}

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	Backend
	Opener

	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory.
	Resolve(rawPath string) (*Path, error)

	// ReadDir returns the immediate children of dir, sorted by name.
	// Only regular files and directories are returned.
	ReadDir(dir *Path) ([]*Path, error)

	// Walk returns every file and directory below root, at all depths.
	// The root itself is not included.
	Walk(root *Path) ([]*Path, error)
}
