package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akyro/liftlog/internal/models"
	"github.com/google/uuid"
)

const recordExt = ".yaml"

// FileStore keeps one record file per workout under a root directory.
// File names are the hex SHA-256 of the workout name plus ".yaml"; the name
// itself lives inside the record.
type FileStore struct {
	dir string
	log *slog.Logger
}

// NewFileStore opens (or creates) a file store rooted at dir.
func NewFileStore(dir string, log *slog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioErr(fmt.Sprintf("creating store dir %s", dir), err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save validates w and atomically replaces its record: the data is written
// to a temp file in the same directory, synced, then renamed over the
// target.
func (s *FileStore) Save(ctx context.Context, w *models.Workout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}

	data, err := EncodeRecord(w)
	if err != nil {
		return err
	}

	target := s.RecordPath(w.Name)
	tmp := filepath.Join(s.dir, "."+uuid.NewString()+".tmp")
	if err := writeSynced(tmp, data); err != nil {
		os.Remove(tmp)
		return ioErr(fmt.Sprintf("writing workout %q", w.Name), err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return ioErr(fmt.Sprintf("replacing workout %q", w.Name), err)
	}
	syncDir(s.dir)

	s.log.Debug("workout saved", "name", w.Name, "exercises", w.Size(), "file", target)
	return nil
}

// Load reads and decodes the record for name.
func (s *FileStore) Load(ctx context.Context, name string) (*models.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateWorkoutName(name); err != nil {
		return nil, notFoundErr(name)
	}

	data, err := os.ReadFile(s.RecordPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundErr(name)
		}
		return nil, ioErr(fmt.Sprintf("reading workout %q", name), err)
	}

	w, err := DecodeRecord(data)
	if err != nil {
		s.log.Warn("corrupt workout record", "name", name, "error", err)
		return nil, corruptErr(name, err)
	}
	if w.Name != name {
		return nil, corruptErr(name, fmt.Errorf("record is for workout %q", w.Name))
	}
	return w, nil
}

// List returns every stored workout name in ascending order, read back from
// the records. Temp files and files that do not look like records are
// skipped.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, ioErr(fmt.Sprintf("reading %s", s.dir), err)
	}

	names := []string{}
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || strings.HasPrefix(fname, ".") || !strings.HasSuffix(fname, recordExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, fname))
		if err != nil {
			return nil, ioErr(fmt.Sprintf("reading %s", fname), err)
		}
		name, err := recordName(data)
		if err != nil {
			s.log.Warn("skipping unrecognized file", "file", fname, "error", err)
			continue
		}
		if recordFile(name) != fname {
			s.log.Warn("skipping misplaced record", "file", fname, "name", name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the record for name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := models.ValidateWorkoutName(name); err != nil {
		return notFoundErr(name)
	}

	if err := os.Remove(s.RecordPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFoundErr(name)
		}
		return ioErr(fmt.Sprintf("deleting workout %q", name), err)
	}
	syncDir(s.dir)

	s.log.Debug("workout deleted", "name", name)
	return nil
}

// Close is a no-op; the file store holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

// RecordPath returns the file that holds the record for name.
func (s *FileStore) RecordPath(name string) string {
	return filepath.Join(s.dir, recordFile(name))
}

// recordFile is fixed-length and hex-only, so every name lands directly
// inside dir regardless of its length or script, and names differing only
// in case stay distinct on case-insensitive filesystems.
func recordFile(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:]) + recordExt
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// syncDir flushes directory metadata so a rename or unlink survives a crash.
// Not every platform supports syncing a directory; failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
