package record

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/aceteam-ai/cronwatch/internal/platform"
)

// Store persists failure records keyed by job identifier.
type Store interface {
	// Put creates or replaces the record for id. Readers never observe a
	// partially written record.
	Put(id string, content []byte) error
	// Delete removes the record for id. A missing record is not an error.
	Delete(id string) error
	// List returns the identifiers of all records currently present.
	List() ([]string, error)
	// Path returns where the record for id lives, for display and open actions.
	Path(id string) string
}

// DirStore is a Store backed by a directory of cronjob-<id>.log files.
// The directory itself is owned by system setup and is never created here.
type DirStore struct {
	Dir string
}

// NewDirStore returns a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{Dir: dir}
}

// Path returns the record path for id.
func (s *DirStore) Path(id string) string {
	return filepath.Join(s.Dir, FileName(id))
}

// Put writes content to a temporary file in the same directory and renames it
// over the final name, so a concurrent List or reader sees either the old
// record or the new one.
func (s *DirStore) Put(id string, content []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	target, err := platform.WithinDir(s.Dir, FileName(id))
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, "."+FilePrefix+id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp record: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename record into place: %w", err)
	}
	committed = true
	return nil
}

// Delete removes the record for id, treating a missing file as success.
func (s *DirStore) Delete(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := os.Remove(s.Path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}

// List returns the identifiers of every record in the directory, in directory
// order. An entry whose name is not valid UTF-8 fails the whole listing.
func (s *DirStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, name)
		}
		if id, ok := ParseFilename(name); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
