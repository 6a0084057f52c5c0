package photorg

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Simulacrum is an in-memory model of which paths exist, used to validate a
// plan without side effects. It records whether each path is a directory.
// A Simulacrum is owned by a single run and is not safe for concurrent use.
type Simulacrum struct {
	entries map[string]bool // path -> isDir
}

// NewSimulacrum returns a Simulacrum containing paths.
func NewSimulacrum(paths []*Path) *Simulacrum {
	s := &Simulacrum{entries: make(map[string]bool, len(paths))}
	for _, p := range paths {
		s.entries[p.String()] = p.IsDir()
	}
	return s
}

// Len returns the number of paths in the simulated state.
func (s *Simulacrum) Len() int {
	return len(s.entries)
}

// Paths returns every simulated path in sorted order.
func (s *Simulacrum) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (s *Simulacrum) Exists(path string) bool {
	_, ok := s.entries[filepath.Clean(path)]
	return ok
}

func (s *Simulacrum) IsDir(path string) bool {
	return s.entries[filepath.Clean(path)]
}

func (s *Simulacrum) MakeDir(path string) error {
	path = filepath.Clean(path)
	if _, ok := s.entries[path]; ok {
		return fmt.Errorf("mkdir %s: %w", path, ErrExists)
	}
	s.entries[path] = true
	return nil
}

// Rename moves source, and everything below it if it is a directory.
func (s *Simulacrum) Rename(source, destination string) error {
	source, destination = filepath.Clean(source), filepath.Clean(destination)
	isDir, ok := s.entries[source]
	if !ok {
		return fmt.Errorf("rename %s: %w", source, ErrNotFound)
	}
	delete(s.entries, source)
	s.entries[destination] = isDir

	if !isDir {
		return nil
	}
	prefix := source + string(filepath.Separator)
	var children []string
	for p := range s.entries {
		if strings.HasPrefix(p, prefix) {
			children = append(children, p)
		}
	}
	for _, p := range children {
		childIsDir := s.entries[p]
		delete(s.entries, p)
		s.entries[filepath.Join(destination, strings.TrimPrefix(p, prefix))] = childIsDir
	}
	return nil
}

func (s *Simulacrum) Remove(path string) error {
	path = filepath.Clean(path)
	if _, ok := s.entries[path]; !ok {
		return fmt.Errorf("remove %s: %w", path, ErrNotFound)
	}
	delete(s.entries, path)
	return nil
}

var _ Backend = (*Simulacrum)(nil)
