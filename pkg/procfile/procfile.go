// Package procfile slurps kernel-exposed stat files to raw bytes.
package procfile

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// SoftnetStatPath is where the kernel exposes its per-CPU network
// receive-path counters.
const SoftnetStatPath = "/proc/net/softnet_stat"

// Read returns the full contents of a proc file. Proc files are
// generated on open, so a single ReadFile is a consistent snapshot.
func Read(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Errorf("%s does not exist", path)
	} else if err != nil {
		return nil, errors.Wrap(err, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return data, nil
}

// ReadAll drains a stream to exhaustion, for callers feeding a dump via
// stdin.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read stream")
	}

	return data, nil
}
