package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Snapshot captures a directory tree as a map of slash-separated
// relative paths to file contents. Directories appear with a trailing
// slash and empty content. Compare snapshots with go-cmp to prove a
// tree changed, or did not.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot of %s failed: %v", root, err)
	}

	return tree
}

// TopLevel returns the sorted entry names directly under root.
func TopLevel(t *testing.T, root string) []string {
	t.Helper()

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("reading %s failed: %v", root, err)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
		if e.IsDir() {
			names[i] += "/"
		}
	}
	sort.Strings(names)
	return names
}
