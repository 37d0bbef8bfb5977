package fileserver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {
	base := t.TempDir()
	fsrv := New(base)

	data := []byte("image bytes")
	n, err := fsrv.Write(filepath.Join("recipes", "cover.png"), data)
	if err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}
	if n != len(data) {
		t.Errorf("Write() wrote %d bytes, expected %d", n, len(data))
	}

	got, err := os.ReadFile(filepath.Join(base, "recipes", "cover.png"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("file contents %q, expected %q", got, data)
	}
}

func TestWriteOverwrites(t *testing.T) {
	base := t.TempDir()
	fsrv := New(base)

	if _, err := fsrv.Write("a.txt", []byte("first")); err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}
	if _, err := fsrv.Write("a.txt", []byte("second")); err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(base, "a.txt"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("file contents %q, expected %q", got, "second")
	}
}

func TestDelete(t *testing.T) {
	base := t.TempDir()
	fsrv := New(base)

	if _, err := fsrv.Write("a.txt", []byte("bytes")); err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}
	if err := fsrv.Delete("a.txt"); err != nil {
		t.Fatalf("Delete() returned unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "a.txt")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected file to be gone, stat err = %v", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	fsrv := New(t.TempDir())
	if err := fsrv.Delete("nope.txt"); err == nil {
		t.Error("expected an error deleting a missing file")
	}
}

func TestNilReceiver(t *testing.T) {
	var fsrv *FileServer

	if _, err := fsrv.Write("a.txt", []byte("x")); err != nil {
		t.Errorf("nil Write() returned error: %v", err)
	}
	if err := fsrv.Delete("a.txt"); err != nil {
		t.Errorf("nil Delete() returned error: %v", err)
	}
	if dir := fsrv.BaseDirectory(); dir != "" {
		t.Errorf("nil BaseDirectory() = %q, expected empty", dir)
	}
}
