package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/kbukum/lazyflow/errors"
	"github.com/kbukum/lazyflow/pipeline"
)

// Dir returns a node listing the regular files under path, in lexical order.
// With recursive set, subdirectories are walked depth-first.
//
// The path is checked immediately: a missing path or a non-directory fails
// with NOT_A_DIRECTORY before any node exists. The listing itself is lazy and
// happens when the node, or anything derived from it, is forced.
func Dir(path string, recursive bool, opts ...pipeline.Option) (*pipeline.Node[string], error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, errors.NotADirectory(path)
	}

	opts = append([]pipeline.Option{pipeline.Named("dir")}, opts...)
	return pipeline.FromFunc(func(out pipeline.Container[string]) error {
		if recursive {
			return walk(path, out)
		}
		return list(path, out)
	}, opts...), nil
}

func list(root string, out pipeline.Container[string]) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return errors.Resource("list", root, err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			out.Append(filepath.Join(root, e.Name()))
		}
	}
	return nil
}

// walk relies on filepath.WalkDir visiting entries in lexical order.
func walk(root string, out pipeline.Container[string]) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			out.Append(p)
		}
		return nil
	})
	if err != nil {
		return errors.Resource("walk", root, err)
	}
	return nil
}

// HasExt returns a predicate matching paths whose extension is one of exts.
// Extensions include the leading dot and compare case-insensitively. With
// no exts every path matches.
func HasExt(exts ...string) func(string) bool {
	folded := make([]string, len(exts))
	for i, e := range exts {
		folded[i] = fold(e)
	}
	return func(p string) bool {
		return len(folded) == 0 || slices.Contains(folded, fold(filepath.Ext(p)))
	}
}

func fold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
