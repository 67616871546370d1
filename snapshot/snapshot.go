// Package snapshot persists cuckoo filter images to disk.
//
// Writes go to a temporary file in the target directory and are renamed into
// place, so readers observe either the previous or the new image. Reads map
// the file into memory and decode from the mapping; the returned filter owns
// its own copy.
package snapshot

import (
	"os"
	"path/filepath"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"github.com/vitalvas/gocuckoo/cuckoo"
	"go.uber.org/zap"
)

// ErrEmpty is returned when loading a zero-length snapshot.
var ErrEmpty = errors.New("snapshot: empty file")

// Encoder is implemented by *cuckoo.Filter and *cuckoo.Locked.
type Encoder interface {
	Encode(compress bool) ([]byte, error)
}

type Store struct {
	path     string
	compress bool
	logger   *zap.Logger
}

// NewStore returns a store for path. A nil logger discards output.
func NewStore(path string, compress bool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		path:     path,
		compress: compress,
		logger:   logger.With(zap.String("path", path)),
	}
}

func (s *Store) Path() string {
	return s.path
}

// Save atomically replaces the snapshot with the image of f.
func (s *Store) Save(f Encoder) error {
	data, err := f.Encode(s.compress)
	if err != nil {
		return errors.Wrap(err, "encode filter")
	}

	unlock, err := lockFile(s.path+".lock", true)
	if err != nil {
		return err
	}
	defer unlock()

	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", tmp.Name())
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "sync %s", tmp.Name())
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "rename to %s", s.path)
	}

	s.logger.Debug("snapshot saved", zap.Int("size", len(data)), zap.Bool("compressed", s.compress))

	return nil
}

// Load decodes the snapshot. Options are passed to cuckoo.Decode.
func (s *Store) Load(opts ...cuckoo.Option) (*cuckoo.Filter, error) {
	unlock, err := lockFile(s.path+".lock", false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat snapshot")
	}

	if info.Size() == 0 {
		return nil, errors.Wrapf(ErrEmpty, "load %s", s.path)
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "mmap snapshot")
	}
	defer func() {
		if err := m.Unmap(); err != nil {
			s.logger.Warn("unmap snapshot", zap.Error(err))
		}
	}()

	f, err := cuckoo.Decode(m, s.compress, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}

	s.logger.Debug("snapshot loaded",
		zap.Int64("size", info.Size()),
		zap.Uint64("count", f.Count()),
		zap.Uint64("buckets", f.NumBuckets()),
	)

	return f, nil
}
