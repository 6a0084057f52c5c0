package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// defaultIgnorePatterns hide desktop and NAS clutter that commonly sits next
// to photos. They come before configured patterns, so a "!" line in the config
// or ignore file can bring any of them back.
var defaultIgnorePatterns = []string{
	IgnoreFileName,
	".DS_Store",
	"._*",
	"Thumbs.db",
	"desktop.ini",
	"@eaDir/",
	".thumbnails/",
}

// ignoreRule is one parsed line of an ignore list.
type ignoreRule struct {
	glob     string // lowercased, forward slashes
	anchored bool   // matched against the path below the target, not the name
	dirOnly  bool   // trailing '/': applies to directories only
	negate   bool   // leading '!': re-includes an entry an earlier rule ignored
}

func (r ignoreRule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	subject := path.Base(rel)
	if r.anchored {
		subject = rel
	}
	ok, err := path.Match(r.glob, subject)
	return err == nil && ok
}

// parseIgnoreRule returns false for blank lines and comments.
func parseIgnoreRule(line string) (ignoreRule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}

	var r ignoreRule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	line = filepath.ToSlash(line)
	if strings.Contains(line, "/") {
		r.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if line == "" {
		return ignoreRule{}, false
	}
	r.glob = strings.ToLower(line)
	return r, true
}

// IgnoreMatcher decides which entries of a photo tree are hidden from listings.
//
// Each line is a glob. A glob without '/' matches entry names anywhere in the
// tree; one with '/' matches the path relative to the target. A trailing '/'
// limits the line to directories and a leading '!' re-includes. Lines are
// evaluated in order and the last matching one wins. Matching ignores case,
// so "*.xmp" also hides "IMG_0001.XMP".
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher parses lines, skipping blanks and '#' comments.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, line := range lines {
		if r, ok := parseIgnoreRule(line); ok {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

// Match reports whether the entry at rel, relative to the target directory,
// is ignored.
func (m *IgnoreMatcher) Match(rel string, isDir bool) bool {
	rel = strings.ToLower(filepath.ToSlash(rel))
	if rel == "" || rel == "." {
		return false
	}

	ignored := false
	for _, r := range m.rules {
		if r.negate == ignored && r.matches(rel, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

// ReadIgnoreFile returns the lines of the ignore file at p, or nil when there
// is none.
func ReadIgnoreFile(p string) ([]string, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
