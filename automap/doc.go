// Package automap picks the cheapest associative container a key type allows.
//
// A Traits bundle names the operations available for a key: equality,
// ordering and hashing. Select resolves the bundle once, at composition time:
//
//   - hash with equality (or ordering): hash table
//   - ordering without hash: B-tree ordered map
//   - equality only: slice scanned linearly, with a one-slot lookup cache
//
// A bundle that allows none of these is a configuration error.
//
// # Usage
//
//	m, err := automap.New[string, int](automap.Strings())
//	m.Insert("a", 1)
//	v, ok := m.Get("a")
//
// Natural bundles are provided for comparable and ordered keys; custom key
// types supply their own functions:
//
//	traits := automap.Traits[Point]{
//	    Equal: func(a, b Point) bool { return a.X == b.X && a.Y == b.Y },
//	}
package automap
