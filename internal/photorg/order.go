package photorg

import (
	"slices"
	"strings"
)

// Compare orders photos by capture time, then by directory depth with the
// deeper path first, then by filename. Photos already inside an organized
// directory therefore claim a shared timestamp before photos moved into it.
func Compare(a, b *Photo) int {
	if c := a.Time.Compare(b.Time); c != 0 {
		return c
	}
	if da, db := a.Path.Depth(), b.Path.Depth(); da != db {
		if da > db {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Path.Name(), b.Path.Name())
}

// Less reports whether a sorts before b.
func Less(a, b *Photo) bool {
	return Compare(a, b) < 0
}

// SortPhotos sorts photos in place by Compare.
func SortPhotos(photos []*Photo) {
	slices.SortStableFunc(photos, Compare)
}
