package emit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestWriteAllWritesFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	files := map[string]string{
		"Main.c":         "int main(void) { return 0; }\n",
		"Main.h":         "#ifndef MAIN_H\n#define MAIN_H\n#endif\n",
		"CMakeLists.txt": "cmake_minimum_required(VERSION 3.10)\n",
	}
	if err := w.WriteAll(files); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(got) != want {
			t.Fatalf("%s: got %q, want %q", name, got, want)
		}
	}
}

func TestWriteAllRemovesStaleSources(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "Removed.c")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seeding stale file: %v", err)
	}
	staleHeader := filepath.Join(dir, "Removed.h")
	if err := os.WriteFile(staleHeader, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seeding stale header: %v", err)
	}
	// Non-.c/.h files are left alone.
	keep := filepath.Join(dir, "CMakeLists.txt")
	if err := os.WriteFile(keep, []byte("old manifest"), 0o644); err != nil {
		t.Fatalf("seeding manifest: %v", err)
	}

	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteAll(map[string]string{"Survivor.c": "int x;\n"}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed, got err=%v", stale, err)
	}
	if _, err := os.Stat(staleHeader); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed, got err=%v", staleHeader, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Survivor.c")); err != nil {
		t.Fatalf("expected Survivor.c to exist: %v", err)
	}
}

// TestWriteAllSnapshotsDirectoryListing locks in the emitter's output
// directory layout the way a sorted `ls` would show it, alongside the
// file contents as actually written to disk.
func TestWriteAllSnapshotsDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	files := map[string]string{
		"Main.c":         "int main(void) { return 0; }\n",
		"Main.h":         "#ifndef MAIN_H\n#define MAIN_H\n#endif\n",
		"__int_array.c":  "#include \"__int_array.h\"\n",
		"__int_array.h":  "#ifndef __INT_ARRAY_H\n#endif\n",
		"CMakeLists.txt": "cmake_minimum_required(VERSION 3.10)\n",
	}
	if err := w.WriteAll(files); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var listing strings.Builder
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		listing.WriteString("=== " + name + " ===\n")
		listing.Write(content)
	}
	snaps.MatchSnapshot(t, "emitted_directory", listing.String())
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := NewWriter(dir); err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to exist as a directory, err=%v", dir, err)
	}
}
