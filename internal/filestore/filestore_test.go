package filestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalWriteRecipeImage(t *testing.T) {
	base := t.TempDir()
	store := NewLocal(base, "/media", "http://localhost:8080")

	url, err := store.WriteRecipeImage(context.Background(), "cover.png", "image/png", []byte("png bytes"))
	if err != nil {
		t.Fatalf("WriteRecipeImage() returned unexpected error: %v", err)
	}

	expected := "http://localhost:8080/media/recipes/cover.png"
	if url != expected {
		t.Errorf("url = %q, expected %q", url, expected)
	}

	got, err := os.ReadFile(filepath.Join(base, "recipes", "cover.png"))
	if err != nil {
		t.Fatalf("reading stored image: %v", err)
	}
	if string(got) != "png bytes" {
		t.Errorf("stored contents %q, expected %q", got, "png bytes")
	}
}

func TestLocalDeleteRecipeImage(t *testing.T) {
	base := t.TempDir()
	store := NewLocal(base, "/media", "http://localhost:8080")

	url, err := store.WriteRecipeImage(context.Background(), "cover.png", "image/png", []byte("png bytes"))
	if err != nil {
		t.Fatalf("WriteRecipeImage() returned unexpected error: %v", err)
	}

	if err := store.DeleteRecipeImage(context.Background(), url); err != nil {
		t.Fatalf("DeleteRecipeImage() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "recipes", "cover.png")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected image to be gone, stat err = %v", err)
	}
}

func TestLocalURLTrimsSlashes(t *testing.T) {
	store := NewLocal(t.TempDir(), "media/", "http://localhost:8080/")

	url, err := store.WriteRecipeImage(context.Background(), "a.png", "image/png", []byte("x"))
	if err != nil {
		t.Fatalf("WriteRecipeImage() returned unexpected error: %v", err)
	}
	if strings.Contains(url, "//media") || strings.Contains(url, "media//") {
		t.Errorf("url has doubled slashes: %q", url)
	}
}
