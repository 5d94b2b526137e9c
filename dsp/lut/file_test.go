package lut

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestWriteFileCreatesDirectoryAndReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")

	first, err := Encode([]int{1, 2, 3}, Uint16)
	if err != nil {
		t.Fatal(err)
	}

	path, err := WriteFile(dir, DefaultAssetName, first)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if want := filepath.Join(dir, DefaultAssetName); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}

	second, err := Encode([]int{9, 8}, Uint16)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(dir, DefaultAssetName, second); err != nil {
		t.Fatalf("WriteFile() replace error = %v", err)
	}

	got, err := ReadFile(path, Uint16)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got, []int{9, 8}) {
		t.Fatalf("ReadFile() = %v, want [9 8]", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Fatalf("directory holds %d entries, want only the asset", len(entries))
	}
}

func TestWriteFileRejectsBadNames(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"", "../escape.data", "sub/spwm.data"} {
		if _, err := WriteFile(dir, name, []byte{1}); err == nil {
			t.Fatalf("WriteFile(%q) succeeded", name)
		}
	}

	if _, err := WriteFile("", DefaultAssetName, []byte{1}); err == nil {
		t.Fatal("WriteFile with empty directory succeeded")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.data"), Uint8); err == nil {
		t.Fatal("expected error for missing file")
	}
}
