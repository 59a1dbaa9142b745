// Package testutil provides helpers for tests that read files from disk.
//
// Trees are created under t.TempDir and removed when the test ends:
//
//	func TestCount(t *testing.T) {
//	    root := testutil.T(t).Tree(fixtures.Animals)
//	    // root holds a.txt, c.md and sub/b.txt
//	}
//
// Paths in a tree map are slash-separated and relative to the root.
package testutil
