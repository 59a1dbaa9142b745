// Package sink provides consumers that drain a pipeline node into an
// io.Writer. Draining forces the node, and with it every upstream stage.
package sink
