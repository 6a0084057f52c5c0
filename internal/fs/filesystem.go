package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"photorg/internal/photorg"
)

// IgnoreFileName is the per-directory ignore file read by UseIgnoreFile.
const IgnoreFileName = ".photorgignore"

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// It performs actual filesystem operations using the os package.
type OSFilesystemManager struct {
	patterns []string
	matcher  *IgnoreMatcher

	// root anchors path patterns; empty until UseIgnoreFile is called.
	root string
}

// NewOSFilesystemManager creates a new filesystem manager that operates on the
// real filesystem. Directory listings skip entries matching ignore.
func NewOSFilesystemManager(ignore []string) *OSFilesystemManager {
	patterns := append(append([]string{}, defaultIgnorePatterns...), ignore...)
	return &OSFilesystemManager{
		patterns: patterns,
		matcher:  NewIgnoreMatcher(patterns),
	}
}

// UseIgnoreFile adds the patterns of root's ignore file, if it has one, and
// anchors path patterns at root.
func (m *OSFilesystemManager) UseIgnoreFile(root *photorg.Path) error {
	extra, err := ReadIgnoreFile(filepath.Join(root.String(), IgnoreFileName))
	if err != nil {
		return err
	}
	m.root = root.String()
	m.patterns = append(m.patterns, extra...)
	m.matcher = NewIgnoreMatcher(m.patterns)
	return nil
}

// IsIgnored reports whether the entry at absPath is hidden from listings.
func (m *OSFilesystemManager) IsIgnored(absPath string, isDir bool) bool {
	rel := filepath.Base(absPath)
	if m.root != "" {
		if r, err := filepath.Rel(m.root, absPath); err == nil {
			rel = r
		}
	}
	return m.matcher.Match(rel, isDir)
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*photorg.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	// Commands and logs name the real location, not the link.
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("resolving symlinks: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	mode := info.Mode()
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return photorg.NewPath(absPath, info.IsDir(), info), nil
}

// Open opens a file for reading.
func (m *OSFilesystemManager) Open(path *photorg.Path) (io.ReadCloser, error) {
	if path.IsDir() {
		return nil, fmt.Errorf("cannot open directory as file: %s", path.String())
	}
	return os.Open(path.String())
}

// ReadDir lists the direct children of dir that are directories or regular
// files, skipping ignored entries. Symlinks and special files are skipped.
func (m *OSFilesystemManager) ReadDir(dir *photorg.Path) ([]*photorg.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir.String())
	}

	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []*photorg.Path
	for _, entry := range entries {
		if !entry.IsDir() && !entry.Type().IsRegular() {
			continue
		}
		fullPath := filepath.Join(dir.String(), entry.Name())
		if m.IsIgnored(fullPath, entry.IsDir()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		paths = append(paths, photorg.NewPath(fullPath, entry.IsDir(), info))
	}
	return paths, nil
}

// Walk returns every path below root, ignored or not, since a plan must be
// checked against everything that could collide with it.
func (m *OSFilesystemManager) Walk(root *photorg.Path) ([]*photorg.Path, error) {
	if !root.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root.String())
	}

	var paths []*photorg.Path
	err := filepath.WalkDir(root.String(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root.String() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		paths = append(paths, photorg.NewPath(p, d.IsDir(), info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	return paths, nil
}

func (m *OSFilesystemManager) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (m *OSFilesystemManager) IsDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

func (m *OSFilesystemManager) MakeDir(path string) error {
	return os.Mkdir(path, 0755)
}

// Rename moves source to destination. os.Rename silently replaces an existing
// file, so callers check the destination first.
func (m *OSFilesystemManager) Rename(source, destination string) error {
	return os.Rename(source, destination)
}

func (m *OSFilesystemManager) Remove(path string) error {
	if m.IsDir(path) {
		return fmt.Errorf("remove %s: %w", path, photorg.ErrIsDirectory)
	}
	return os.Remove(path)
}

// Compile-time check that OSFilesystemManager implements photorg.FilesystemManager interface
var _ photorg.FilesystemManager = (*OSFilesystemManager)(nil)
