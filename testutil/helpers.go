package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// THelper creates files for a single test and fails it on any I/O error.
type THelper struct {
	t    testing.TB
	perm os.FileMode
}

// T wraps t. Files are written with mode 0644 unless WithPerm says otherwise.
func T(t testing.TB) *THelper {
	return &THelper{t: t, perm: 0o644}
}

// WithPerm sets the mode of files written afterwards.
func (h *THelper) WithPerm(perm os.FileMode) *THelper {
	h.perm = perm
	return h
}

// Tree writes files into a fresh temporary directory and returns its path.
func (h *THelper) Tree(files map[string]string) string {
	h.t.Helper()
	root := h.t.TempDir()
	for rel, content := range files {
		h.Write(root, rel, content)
	}
	return root
}

// Write creates root/rel with content, making parent directories as needed.
func (h *THelper) Write(root, rel, content string) string {
	h.t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		h.t.Fatalf("create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), h.perm); err != nil {
		h.t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// Mkdir creates an empty directory root/rel.
func (h *THelper) Mkdir(root, rel string) string {
	h.t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(p, 0o755); err != nil {
		h.t.Fatalf("create directory %s: %v", rel, err)
	}
	return p
}

// Remove deletes path and everything below it.
func (h *THelper) Remove(path string) {
	h.t.Helper()
	if err := os.RemoveAll(path); err != nil {
		h.t.Fatalf("remove %s: %v", path, err)
	}
}

// ConfigFile writes a YAML config file into its own temporary directory.
func (h *THelper) ConfigFile(yaml string) string {
	h.t.Helper()
	return h.Write(h.t.TempDir(), "config.yml", yaml)
}

// Rel turns absolute paths under root into slash-separated relative ones.
func (h *THelper) Rel(root string, paths []string) []string {
	h.t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			h.t.Fatalf("relative path of %s: %v", p, err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}
