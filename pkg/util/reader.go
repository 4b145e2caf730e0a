// Package util provides small file helpers shared by the pipeline.
package util

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// OpenFile opens a log file, automatically decompressing gzip input.
// The caller must call the returned cleanup function when done reading.
func OpenFile(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if IsGzipFile(path) {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		cleanup := func() error {
			gz.Close()
			return file.Close()
		}
		return gz, cleanup, nil
	}

	return file, file.Close, nil
}

// IsGzipFile returns true if the path indicates gzip compression.
func IsGzipFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}
