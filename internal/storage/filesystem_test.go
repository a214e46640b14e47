package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystemStoreAndDeleteAll(t *testing.T) {
	root := t.TempDir()
	fs := NewFileSystem(root)

	url, err := fs.Store([]byte("front cover"), "Dune", "cover.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if url != "bookImages/Dune/cover.jpg" {
		t.Errorf("unexpected relative url %q", url)
	}
	contents, err := os.ReadFile(filepath.Join(root, "bookImages", "Dune", "cover.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != "front cover" {
		t.Errorf("unexpected file contents %q", contents)
	}

	existed, err := fs.DeleteAll("Dune")
	if err != nil {
		t.Fatal(err)
	}
	if !existed {
		t.Error("expected DeleteAll to report the directory existed")
	}
	if _, err := os.Stat(filepath.Join(root, "bookImages", "Dune")); !os.IsNotExist(err) {
		t.Error("expected directory to be removed")
	}
}

func TestFileSystemDeleteAllMissingDirectory(t *testing.T) {
	fs := NewFileSystem(t.TempDir())
	existed, err := fs.DeleteAll("No Such Book")
	if err != nil {
		t.Fatal(err)
	}
	if existed {
		t.Error("expected DeleteAll to report nothing existed")
	}
}
