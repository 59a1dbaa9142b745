package main

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/lazyflow/automap"
	"github.com/kbukum/lazyflow/pipeline"
	"github.com/kbukum/lazyflow/source"
)

type wordCount = pipeline.KV[string, int]

// countWords builds the lazy word-count pipeline for one directory:
// list files, keep matching extensions, open them, split into words,
// normalize, drop short words and count per word. Nothing is read until the
// returned node is forced.
func countWords(dir string, cfg CountConfig, obs pipeline.Observer) (*pipeline.Node[wordCount], error) {
	files, err := source.Dir(dir, cfg.Recursive,
		pipeline.WithObserver(obs),
		pipeline.Into(containerKind(cfg.Container)),
	)
	if err != nil {
		return nil, err
	}

	count, err := pipeline.CountByKey(func(w string) string { return w }, wordTraits(cfg.Index), pipeline.Named("count"))
	if err != nil {
		return nil, err
	}

	matched := pipeline.Pipe(files, pipeline.Filter(source.HasExt(cfg.Extensions...), pipeline.Named("match_ext")))
	opened := pipeline.Pipe(matched, source.OpenFilesWith(cfg.Open))
	tokens := pipeline.Pipe(opened, pipeline.SplitReader[*os.File](cfg.Delimiters))
	words := pipeline.Pipe(tokens, pipeline.Compose(
		pipeline.Map(normalizer(cfg.FoldCase), pipeline.Named("normalize")),
		pipeline.Filter(longerThan(cfg.MinLength), pipeline.Named("drop_short")),
	))
	return pipeline.Pipe(words, count), nil
}

// wordTraits picks the key index used by counting and joining.
func wordTraits(index string) automap.Traits[string] {
	switch index {
	case "ordered":
		return automap.Sorted[string]()
	case "linear":
		return automap.EqualOnly[string]()
	default:
		return automap.Strings()
	}
}

func containerKind(name string) pipeline.ContainerKind {
	if name == "list" {
		return pipeline.ListKind
	}
	return pipeline.SliceKind
}

func normalizer(fold bool) func(string) string {
	if !fold {
		return strings.TrimSpace
	}
	return func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
}

// longerThan keeps non-empty words with at least minLen runes.
func longerThan(minLen int) func(string) bool {
	minLen = max(minLen, 1)
	return func(w string) bool { return utf8.RuneCountInString(w) >= minLen }
}

// rank orders counts and keeps the first top of them (all when top is 0).
// "first" keeps the order in which words were first seen; "count" puts the
// most frequent first; "word" sorts alphabetically. Ties break on the word.
func rank(order string, top int) pipeline.Adapter[wordCount, wordCount] {
	return pipeline.AdapterFunc[wordCount, wordCount](func(n *pipeline.Node[wordCount]) *pipeline.Node[wordCount] {
		return pipeline.Derive(n, func(in pipeline.Container[wordCount], out pipeline.Container[wordCount]) error {
			ranked := slices.Collect(in.All())
			switch order {
			case "count":
				slices.SortStableFunc(ranked, func(a, b wordCount) int {
					return cmp.Or(cmp.Compare(b.Value, a.Value), strings.Compare(a.Key, b.Key))
				})
			case "word":
				slices.SortStableFunc(ranked, func(a, b wordCount) int { return strings.Compare(a.Key, b.Key) })
			}
			if top > 0 && len(ranked) > top {
				ranked = ranked[:top]
			}
			for _, wc := range ranked {
				out.Append(wc)
			}
			return nil
		}, pipeline.Named("rank"))
	})
}

func formatCount(wc wordCount) string {
	return fmt.Sprintf("%s - %d", wc.Key, wc.Value)
}

type comparison = pipeline.JoinResult[wordCount, int]

// compareWords joins the ranked counts of left with the counts of right.
// Every left word appears once, with the right count when right has it.
func compareWords(left, right *pipeline.Node[wordCount], cfg CountConfig) (*pipeline.Node[comparison], error) {
	key := func(wc wordCount) string { return wc.Key }
	join, err := pipeline.Join(right,
		key, key,
		func(wc wordCount) wordCount { return wc },
		func(wc wordCount) int { return wc.Value },
		wordTraits(cfg.Index),
		pipeline.Named("join"),
	)
	if err != nil {
		return nil, err
	}
	return pipeline.Pipe(pipeline.Pipe(left, rank(cfg.Sort, cfg.Top)), join), nil
}

func formatComparison(c comparison) string {
	other := "-"
	if n, ok := c.Joined.Get(); ok {
		other = fmt.Sprint(n)
	}
	return fmt.Sprintf("%s - %d - %s", c.Base.Key, c.Base.Value, other)
}
