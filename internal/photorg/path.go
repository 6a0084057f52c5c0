package photorg

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Path represents a validated filesystem path with cached metadata.
// Path objects are created by FilesystemManager.Resolve() or by directory
// listings, which stat the entry once and cache the result.
type Path struct {
	absPath string
	isDir   bool
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by FilesystemManager implementations.
func NewPath(absPath string, isDir bool, info fs.FileInfo) *Path {
	return &Path{
		absPath: filepath.Clean(absPath),
		isDir:   isDir,
		info:    info,
	}
}

// String returns the absolute path as a string.
func (p *Path) String() string {
	return p.absPath
}

// IsDir returns true if this path points to a directory.
func (p *Path) IsDir() bool {
	return p.isDir
}

// Info returns the cached file info from when the path was resolved.
func (p *Path) Info() fs.FileInfo {
	return p.info
}

// Name returns the final path element.
func (p *Path) Name() string {
	return filepath.Base(p.absPath)
}

// Ext returns the extension of the final element, including the dot,
// with its original case.
func (p *Path) Ext() string {
	return filepath.Ext(p.absPath)
}

// Stem returns the final element without its extension.
func (p *Path) Stem() string {
	name := p.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Depth returns the number of ancestor directories of the path.
// "/a/b/c.jpg" has depth 3: "/a/b", "/a" and "/".
func (p *Path) Depth() int {
	return strings.Count(filepath.ToSlash(p.absPath), "/")
}
