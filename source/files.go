package source

import (
	"os"

	"github.com/kbukum/lazyflow/errors"
	"github.com/kbukum/lazyflow/pipeline"
	"github.com/kbukum/lazyflow/resilience"
)

// OpenFiles opens every input path for reading. A path that cannot be opened
// stops the stage with a RESOURCE_ERROR naming it. The files are closed by
// whatever drains them; SplitReader does so after reading each one.
//
// Opens failing with a transient error, such as running out of file
// descriptors, are retried with the default backoff.
func OpenFiles(opts ...pipeline.Option) pipeline.Adapter[string, *os.File] {
	return OpenFilesWith(resilience.DefaultRetryConfig(), opts...)
}

// OpenFilesWith is OpenFiles with an explicit retry configuration.
func OpenFilesWith(retry resilience.RetryConfig, opts ...pipeline.Option) pipeline.Adapter[string, *os.File] {
	opts = append([]pipeline.Option{pipeline.Named("open_files")}, opts...)
	return pipeline.TryMap(func(path string) (*os.File, error) {
		f, err := resilience.Retry(retry, func() (*os.File, error) { return os.Open(path) })
		if err != nil {
			return nil, errors.Resource("open", path, err)
		}
		return f, nil
	}, opts...)
}

// ReadFiles reads every input path into memory, one string per file.
func ReadFiles(opts ...pipeline.Option) pipeline.Adapter[string, string] {
	opts = append([]pipeline.Option{pipeline.Named("read_files")}, opts...)
	return pipeline.TryMap(func(path string) (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Resource("read", path, err)
		}
		return string(b), nil
	}, opts...)
}
