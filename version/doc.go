// Package version reports build information for lazyflow binaries.
//
// Release builds stamp the version through the linker:
//
//	go build -ldflags "-X github.com/kbukum/lazyflow/version.Version=v1.2.0" ./cmd/wordfreq
//
// Without it, Get falls back to the module version and VCS settings that
// the Go toolchain records in the binary.
package version
