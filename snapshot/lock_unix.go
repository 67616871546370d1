//go:build unix

package snapshot

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// lockFile takes an advisory flock on path, exclusive for writers.
func lockFile(path string, exclusive bool) (func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open lock file")
	}

	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	if err := unix.Flock(int(file.Fd()), how); err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "flock %s", path)
	}

	return func() {
		_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
		file.Close()
	}, nil
}
