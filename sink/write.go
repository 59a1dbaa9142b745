package sink

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kbukum/lazyflow/errors"
	"github.com/kbukum/lazyflow/pipeline"
)

// Write forces n and prints every value to w followed by delim. Values are
// formatted with fmt's %v verb, so types with a String method print through
// it. Output is buffered and flushed before Write returns.
//
// An evaluation error is returned unchanged and nothing is written. A
// failed write is reported as a RESOURCE_ERROR.
func Write[T any](n *pipeline.Node[T], w io.Writer, delim string) error {
	c, err := n.Content()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for v := range c.All() {
		if _, err := fmt.Fprint(bw, v); err != nil {
			return errors.Resource("write", "output", err)
		}
		if _, err := bw.WriteString(delim); err != nil {
			return errors.Resource("write", "output", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Resource("write", "output", err)
	}
	return nil
}

// Out writes one value per line.
func Out[T any](n *pipeline.Node[T], w io.Writer) error {
	return Write(n, w, "\n")
}
