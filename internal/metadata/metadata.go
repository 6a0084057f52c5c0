// Package metadata identifies image files and decodes their embedded EXIF
// tags.
package metadata

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"photorg/internal/photorg"
)

// Reader is the EXIF implementation of photorg.MetadataReader.
type Reader struct {
	opener photorg.Opener
}

// NewReader creates a Reader that reads file content through opener.
func NewReader(opener photorg.Opener) *Reader {
	return &Reader{opener: opener}
}

// Read identifies path as an image and returns its EXIF tags as strings.
// Images without EXIF data, or with EXIF data too damaged to decode, yield an
// empty map.
func (r *Reader) Read(path *photorg.Path) (map[string]string, error) {
	if _, err := r.Identify(path); err != nil {
		return nil, err
	}

	f, err := r.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	tags := map[string]string{}
	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return tags, nil
	}
	if err := x.Walk(tagCollector(tags)); err != nil {
		return nil, fmt.Errorf("reading tags of %s: %w", path, err)
	}
	return tags, nil
}

// Identify returns the image format of path, such as "jpeg" or "webp".
// Content that no registered decoder recognizes yields photorg.ErrNotImage.
func (r *Reader) Identify(path *photorg.Path) (string, error) {
	f, err := r.opener.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, photorg.ErrNotImage)
	}
	return format, nil
}

// tagCollector is an exif.Walker that stores every tag as a string.
type tagCollector map[string]string

func (c tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if tag.Format() == tiff.StringVal {
		if s, err := tag.StringVal(); err == nil {
			c[string(name)] = s
			return nil
		}
	}
	c[string(name)] = tag.String()
	return nil
}

var _ photorg.MetadataReader = (*Reader)(nil)
