// Package errors provides the structured error taxonomy used by lazyflow.
// Configuration errors are raised while a pipeline is composed, lookup errors
// by the associative containers, and resource errors by producers.
package errors
