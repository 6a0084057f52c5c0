package photorg

// IsDuplicate reports whether a and b have the same content: equal sizes and
// equal digests under algorithm. Sizes are compared first, so digests are
// only computed for same-sized photos.
func IsDuplicate(a, b *Photo, algorithm string) (bool, error) {
	if a.Size != b.Size {
		return false, nil
	}
	da, err := a.Digest(algorithm)
	if err != nil {
		return false, err
	}
	db, err := b.Digest(algorithm)
	if err != nil {
		return false, err
	}
	return da == db, nil
}
