package imagestore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.Save("location(4.6,-74.1)", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Fatalf("path = %q, want inside %q", path, dir)
	}
	if filepath.Ext(path) != ".png" {
		t.Fatalf("path = %q, want .png suffix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("data = %q", data)
	}
}

func TestDirStoreFlattensSeparators(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.Save("../escape/attempt", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path = %q escaped %q", path, dir)
	}
}

func TestDirStoreRejectsEmptyInput(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Save("", []byte("x")); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := store.Save("name", nil); err == nil {
		t.Fatal("expected error for empty data")
	}
	if _, err := NewDirStore("  "); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
