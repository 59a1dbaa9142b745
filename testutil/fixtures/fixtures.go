// Package fixtures holds small directory trees shared by tests.
package fixtures

// Animals mixes case, punctuation and nesting. Walked recursively it yields
// the words The cat the dog the Cat bird, in that order.
var Animals = map[string]string{
	"a.txt":     "The cat. the dog!",
	"c.md":      "the",
	"sub/b.txt": "Cat, bird",
}

// Fish shares only "cat" with Animals.
var Fish = map[string]string{
	"x.txt": "cat cat fish",
}

// Hamlet is two plain text files and one file of another type.
var Hamlet = map[string]string{
	"one.txt":   "to be\nor not",
	"two.txt":   "to be",
	"skip.json": "{}",
}
