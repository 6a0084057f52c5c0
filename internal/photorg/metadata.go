package photorg

// Names of the embedded tags consulted for the capture time, in priority order.
const (
	TagDateTimeOriginal  = "DateTimeOriginal"
	TagDateTimeDigitized = "DateTimeDigitized"
	TagDateTime          = "DateTime"
)

// captureTags is the order in which embedded tags are tried.
var captureTags = []string{TagDateTimeOriginal, TagDateTimeDigitized, TagDateTime}

// MetadataReader extracts embedded tag data from image files.
type MetadataReader interface {
	// Read returns the decoded tag name to value mapping for path.
	// It returns ErrNotImage when the content is not an image. An image
	// without embedded tags yields an empty map and no error.
	Read(path *Path) (map[string]string, error)
}
