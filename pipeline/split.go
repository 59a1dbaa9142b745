package pipeline

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/lazyflow/errors"
)

// delimiterSet answers membership for the delimiter runes of a split.
type delimiterSet struct {
	ascii [utf8.RuneSelf]bool
	other map[rune]struct{}
}

func newDelimiterSet(delims string) *delimiterSet {
	d := &delimiterSet{}
	for _, r := range delims {
		if r < utf8.RuneSelf {
			d.ascii[r] = true
			continue
		}
		if d.other == nil {
			d.other = make(map[rune]struct{})
		}
		d.other[r] = struct{}{}
	}
	return d
}

func (d *delimiterSet) has(r rune) bool {
	if r >= 0 && r < utf8.RuneSelf {
		return d.ascii[r]
	}
	_, ok := d.other[r]
	return ok
}

// Split tokenizes each input string on any rune of delims. Every delimiter
// ends a token, so adjacent delimiters produce empty tokens, and the text
// after the last delimiter is always emitted, even when empty.
func Split(delims string, opts ...Option) Adapter[string, string] {
	set := newDelimiterSet(delims)
	return AdapterFunc[string, string](func(n *Node[string]) *Node[string] {
		return derive(n, buildOptions("split", opts), func(in Container[string], out Container[string]) error {
			for s := range in.All() {
				start := 0
				for i := 0; i < len(s); {
					r, size := utf8.DecodeRuneInString(s[i:])
					if set.has(r) {
						out.Append(s[start:i])
						start = i + size
					}
					i += size
				}
				out.Append(s[start:])
			}
			return nil
		})
	})
}

// SplitReader tokenizes the text of each input reader the way Split does,
// reading it incrementally. Readers that implement io.Closer are closed once
// drained. A read failure is reported as a RESOURCE_ERROR.
func SplitReader[R io.Reader](delims string, opts ...Option) Adapter[R, string] {
	set := newDelimiterSet(delims)
	return AdapterFunc[R, string](func(n *Node[R]) *Node[string] {
		return derive(n, buildOptions("split_reader", opts), func(in Container[R], out Container[string]) error {
			for r := range in.All() {
				if err := splitStream(r, set, out); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

const readChunk = 1024

func splitStream(r io.Reader, set *delimiterSet, out Container[string]) (err error) {
	if c, ok := r.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = errors.Resource("close", readerName(r), cerr)
			}
		}()
	}

	br := bufio.NewReaderSize(r, readChunk)
	var token strings.Builder
	for {
		ch, size, rerr := br.ReadRune()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return errors.Resource("read", readerName(r), rerr)
		}
		if set.has(ch) {
			out.Append(token.String())
			token.Reset()
			continue
		}
		if ch == utf8.RuneError && size == 1 {
			// keep invalid bytes as they are, like Split does
			_ = br.UnreadRune()
			b, _ := br.ReadByte()
			token.WriteByte(b)
			continue
		}
		token.WriteRune(ch)
	}
	out.Append(token.String())
	return nil
}

func readerName(r io.Reader) string {
	if named, ok := r.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "reader"
}
