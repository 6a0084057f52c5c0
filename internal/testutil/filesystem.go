package testutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"photorg/internal/photorg"
)

// DefaultModTime is the modification time given to files added without one.
var DefaultModTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
// Adding a file also adds its missing parent directories.
type MockFilesystemManager struct {
	files map[string]*MockFile
	opens map[string]int
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
		opens: make(map[string]int),
	}
}

// AddFile adds a file with DefaultModTime to the mock filesystem.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	m.AddFileWithModTime(path, content, DefaultModTime)
}

// AddFileWithModTime adds a file with the given modification time.
func (m *MockFilesystemManager) AddFileWithModTime(path string, content []byte, modTime time.Time) {
	path = filepath.Clean(path)
	m.addParents(path)
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     modTime,
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	path = filepath.Clean(path)
	m.addParents(path)
	m.files[path] = &MockFile{
		Permissions: 0755,
		ModTime:     DefaultModTime,
		IsDirectory: true,
	}
}

func (m *MockFilesystemManager) addParents(path string) {
	for dir := filepath.Dir(path); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			return
		}
		m.files[dir] = &MockFile{Permissions: 0755, ModTime: DefaultModTime, IsDirectory: true}
	}
}

// Content returns the content of the file at path and whether it exists.
func (m *MockFilesystemManager) Content(path string) ([]byte, bool) {
	file, ok := m.files[filepath.Clean(path)]
	if !ok || file.IsDirectory {
		return nil, false
	}
	return file.Content, true
}

// OpenCount returns how many times the file at path has been opened.
func (m *MockFilesystemManager) OpenCount(path string) int {
	return m.opens[filepath.Clean(path)]
}

// Paths returns every path in the mock filesystem in sorted order.
func (m *MockFilesystemManager) Paths() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *MockFilesystemManager) pathFor(absPath string, file *MockFile) *photorg.Path {
	info := &mockFileInfo{
		name:     filepath.Base(absPath),
		size:     int64(len(file.Content)),
		mode:     file.Permissions,
		modTime:  file.ModTime,
		isDir:    file.IsDirectory,
		mockFile: file,
	}
	return photorg.NewPath(absPath, file.IsDirectory, info)
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*photorg.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	file, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", absPath)
	}
	return m.pathFor(absPath, file), nil
}

func (m *MockFilesystemManager) ReadDir(dir *photorg.Path) ([]*photorg.Path, error) {
	file, ok := m.files[dir.String()]
	if !ok {
		return nil, fmt.Errorf("directory not found: %s", dir.String())
	}
	if !file.IsDirectory {
		return nil, fmt.Errorf("not a directory: %s", dir.String())
	}

	var children []*photorg.Path
	for _, p := range m.Paths() {
		if p != dir.String() && filepath.Dir(p) == dir.String() {
			children = append(children, m.pathFor(p, m.files[p]))
		}
	}
	return children, nil
}

func (m *MockFilesystemManager) Walk(root *photorg.Path) ([]*photorg.Path, error) {
	if _, ok := m.files[root.String()]; !ok {
		return nil, fmt.Errorf("directory not found: %s", root.String())
	}

	prefix := root.String() + string(filepath.Separator)
	var paths []*photorg.Path
	for _, p := range m.Paths() {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, m.pathFor(p, m.files[p]))
		}
	}
	return paths, nil
}

func (m *MockFilesystemManager) Open(path *photorg.Path) (io.ReadCloser, error) {
	file, ok := m.files[path.String()]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path.String())
	}
	if file.IsDirectory {
		return nil, fmt.Errorf("cannot open directory: %s", path.String())
	}
	m.opens[path.String()]++
	return io.NopCloser(bytes.NewReader(file.Content)), nil
}

func (m *MockFilesystemManager) Exists(path string) bool {
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *MockFilesystemManager) IsDir(path string) bool {
	file, ok := m.files[filepath.Clean(path)]
	return ok && file.IsDirectory
}

func (m *MockFilesystemManager) MakeDir(path string) error {
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		return fmt.Errorf("mkdir %s: %w", path, photorg.ErrExists)
	}
	if !m.IsDir(filepath.Dir(path)) {
		return fmt.Errorf("mkdir %s: %w", path, photorg.ErrNotFound)
	}
	m.files[path] = &MockFile{Permissions: 0755, ModTime: DefaultModTime, IsDirectory: true}
	return nil
}

func (m *MockFilesystemManager) Rename(source, destination string) error {
	source, destination = filepath.Clean(source), filepath.Clean(destination)
	file, ok := m.files[source]
	if !ok {
		return fmt.Errorf("rename %s: %w", source, photorg.ErrNotFound)
	}
	if !m.IsDir(filepath.Dir(destination)) {
		return fmt.Errorf("rename %s: %w", destination, photorg.ErrNotFound)
	}
	delete(m.files, source)
	m.files[destination] = file

	if file.IsDirectory {
		prefix := source + string(filepath.Separator)
		for _, p := range m.Paths() {
			if strings.HasPrefix(p, prefix) {
				m.files[filepath.Join(destination, strings.TrimPrefix(p, prefix))] = m.files[p]
				delete(m.files, p)
			}
		}
	}
	return nil
}

func (m *MockFilesystemManager) Remove(path string) error {
	path = filepath.Clean(path)
	file, ok := m.files[path]
	if !ok {
		return fmt.Errorf("remove %s: %w", path, photorg.ErrNotFound)
	}
	if file.IsDirectory {
		return fmt.Errorf("remove %s: %w", path, photorg.ErrIsDirectory)
	}
	delete(m.files, path)
	return nil
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name     string
	size     int64
	mode     fs.FileMode
	modTime  time.Time
	isDir    bool
	mockFile *MockFile
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return m.mockFile }

// Compile-time check
var _ photorg.FilesystemManager = (*MockFilesystemManager)(nil)
