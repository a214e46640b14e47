package storage

import (
	"os"
	"path/filepath"
)

// FileSystem stores image files on the local disk under a web root
// directory. Relative URLs returned by Store are paths below that root.
type FileSystem struct {
	root string
}

// NewFileSystem returns a FileSystem store rooted at the given directory.
func NewFileSystem(root string) *FileSystem {
	return &FileSystem{root: root}
}

// Store writes a file under <root>/bookImages/<prefix>/ and returns its
// relative URL. The prefix directory is created if it does not exist.
func (fs *FileSystem) Store(data []byte, prefix, fileName string) (string, error) {
	dir := filepath.Join(fs.root, ImagePrefix, prefix)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", err
	}
	err = os.WriteFile(filepath.Join(dir, fileName), data, 0o644)
	if err != nil {
		return "", err
	}
	return ImagePrefix + "/" + prefix + "/" + fileName, nil
}

// DeleteAll removes the whole directory for a prefix. It returns false if
// the directory did not exist.
func (fs *FileSystem) DeleteAll(prefix string) (bool, error) {
	dir := filepath.Join(fs.root, ImagePrefix, prefix)
	_, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	err = os.RemoveAll(dir)
	if err != nil {
		return false, err
	}
	return true, nil
}
