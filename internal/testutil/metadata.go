package testutil

import (
	"maps"
	"path/filepath"

	"photorg/internal/photorg"
)

// StubMetadataReader serves embedded tags from memory. Paths that were never
// registered are reported as not being images.
type StubMetadataReader struct {
	tags map[string]map[string]string
}

// NewStubMetadataReader creates an empty StubMetadataReader.
func NewStubMetadataReader() *StubMetadataReader {
	return &StubMetadataReader{tags: make(map[string]map[string]string)}
}

// SetTags registers path as an image carrying tags.
func (r *StubMetadataReader) SetTags(path string, tags map[string]string) {
	r.tags[filepath.Clean(path)] = maps.Clone(tags)
}

// SetCaptureTime registers path as an image with a DateTimeOriginal tag.
// value uses the embedded "YYYY:MM:DD HH:MM:SS" format.
func (r *StubMetadataReader) SetCaptureTime(path, value string) {
	r.SetTags(path, map[string]string{photorg.TagDateTimeOriginal: value})
}

func (r *StubMetadataReader) Read(path *photorg.Path) (map[string]string, error) {
	tags, ok := r.tags[path.String()]
	if !ok {
		return nil, photorg.ErrNotImage
	}
	return maps.Clone(tags), nil
}

var _ photorg.MetadataReader = (*StubMetadataReader)(nil)
