// Package storage provides the media store used for book and profile
// images. Files are grouped under a prefix (e.g. the book name) and
// addressed by a relative URL of the form bookImages/<prefix>/<fileName>.
package storage

// Storage is the interface the catalog consumes for image files. Store
// saves a file and returns its relative URL. DeleteAll removes every file
// under a prefix and reports whether anything existed to delete.
type Storage interface {
	Store(data []byte, prefix, fileName string) (string, error)
	DeleteAll(prefix string) (bool, error)
}

// ImagePrefix is the top-level directory for book image files.
const ImagePrefix = "bookImages"
