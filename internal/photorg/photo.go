package photorg

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"photorg/internal/digest"
)

// TimeSource records where a photo's capture time came from.
type TimeSource string

const (
	SourceMetadata TimeSource = "metadata"
	SourceFilename TimeSource = "filename"
	SourceMtime    TimeSource = "mtime"
	SourceUser     TimeSource = "user"
)

const (
	// TimestampLayout is the capture time format used in organized filenames
	// and accepted from the user.
	TimestampLayout = "2006-01-02 15:04:05"

	// MonthLayout names the per-month destination directories.
	MonthLayout = "2006-01"

	// metadataLayout is the fixed format of embedded capture tags.
	metadataLayout = "2006:01:02 15:04:05"

	// organizedStemLen is len("2006-01-02 15:04:05 001").
	organizedStemLen = 23
)

// Photo is a photo file with its resolved capture time.
type Photo struct {
	Path   *Path
	Size   int64
	Time   time.Time
	Source TimeSource

	// Tags holds the raw decoded embedded tags, for display only.
	Tags map[string]string

	opener Opener
	hashes map[string]string
}

// NewPhoto builds a Photo for path, resolving its capture time from, in order
// of increasing priority, the file's mtime, an organized filename and the
// embedded metadata. Resolution never fails: unreadable or unidentifiable
// files keep the best value found so far.
func NewPhoto(path *Path, opener Opener, reader MetadataReader) *Photo {
	info := path.Info()
	p := &Photo{
		Path:   path,
		Size:   info.Size(),
		Time:   info.ModTime(),
		Source: SourceMtime,
		Tags:   map[string]string{},
		opener: opener,
		hashes: map[string]string{},
	}

	if t, ok := parseOrganizedStem(path.Stem()); ok {
		p.Time = t
		p.Source = SourceFilename
	}

	tags, err := reader.Read(path)
	if err != nil {
		return p
	}
	p.Tags = tags

	for _, name := range captureTags {
		value, ok := tags[name]
		if !ok {
			continue
		}
		// Only the first present tag is considered, even if it fails to parse.
		t, err := time.ParseInLocation(metadataLayout, strings.TrimSpace(value), time.Local)
		if err == nil {
			p.Time = t
			p.Source = SourceMetadata
		}
		break
	}

	return p
}

// parseOrganizedStem parses stems of the form "YYYY-MM-DD HH:MM:SS NNN".
// The trailing sequence number is ignored.
func parseOrganizedStem(stem string) (time.Time, bool) {
	runes := []rune(stem)
	if len(runes) != organizedStemLen {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimestampLayout, string(runes[:len(TimestampLayout)]), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Uncertain reports whether the capture time needs confirmation before use.
func (p *Photo) Uncertain() bool {
	return p.Source != SourceMetadata && p.Source != SourceUser
}

// SetUserTime overrides the capture time with an explicit value.
func (p *Photo) SetUserTime(t time.Time) {
	p.Time = t
	p.Source = SourceUser
}

// Month returns the name of the directory this photo belongs in.
func (p *Photo) Month() string {
	return p.Time.Format(MonthLayout)
}

// Timestamp returns the capture time as used in organized filenames.
func (p *Photo) Timestamp() string {
	return p.Time.Format(TimestampLayout)
}

// Digest returns the hex digest of the photo's content under algorithm.
// The content is read at most once per algorithm; later calls use the cache.
func (p *Photo) Digest(algorithm string) (string, error) {
	algorithm = digest.Normalize(algorithm)
	if sum, ok := p.hashes[algorithm]; ok {
		return sum, nil
	}

	r, err := p.opener.Open(p.Path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", p.Path, err)
	}
	sum, err := digest.Sum(r, algorithm)
	r.Close()
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", p.Path, err)
	}

	p.hashes[algorithm] = sum
	return sum, nil
}

// Digests returns a copy of the digests computed so far, keyed by algorithm.
func (p *Photo) Digests() map[string]string {
	return maps.Clone(p.hashes)
}
