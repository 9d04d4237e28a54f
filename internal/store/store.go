// Package store reads and writes task files on disk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/logging"
	"github.com/nibzard/tasker/internal/todo"
)

// Ext is the extension added to task file names that lack it.
const Ext = ".tsk"

// ResolveName appends Ext to name unless it already ends with it.
func ResolveName(name string) string {
	if strings.HasSuffix(name, Ext) {
		return name
	}
	return name + Ext
}

// Store maps task file names to paths under a data directory.
type Store struct {
	dir    string
	format todo.Format
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithFormat sets the encoding used by Save.
func WithFormat(format todo.Format) Option {
	return func(s *Store) {
		s.format = format
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Store rooted at dir. An empty dir means the working directory.
func New(dir string, opts ...Option) *Store {
	if dir == "" {
		dir = "."
	}
	s := &Store{
		dir:    dir,
		format: todo.FormatJSON,
		logger: logging.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Format returns the encoding used by Save.
func (s *Store) Format() todo.Format {
	return s.format
}

// Path returns the file path for a task file name. Absolute names are kept.
func (s *Store) Path(name string) string {
	name = ResolveName(name)
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(s.dir, name)
}

// Exists reports whether the named task file exists and returns its path.
func (s *Store) Exists(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	path := s.Path(name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}

// Load reads and validates the named task file.
// Every failure is returned as a *todo.LoadError.
func (s *Store) Load(name string) ([]todo.Task, error) {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &todo.LoadError{Path: path, Err: fmt.Errorf("the file %s does not exist", path)}
		}
		return nil, &todo.LoadError{Path: path, Err: err}
	}

	tasks, err := todo.Unmarshal(data)
	if err != nil {
		return nil, &todo.LoadError{Path: path, Err: err}
	}

	s.logger.Debug("loaded task file", "path", path, "tasks", len(tasks))
	return tasks, nil
}

// Save writes tasks to the named file atomically: the previous content
// stays in place until the new file has been fully written and synced.
// Every failure is returned as a *todo.SaveError.
func (s *Store) Save(name string, tasks []todo.Task) error {
	path := s.Path(name)

	data, err := todo.Marshal(tasks, s.format)
	if err != nil {
		return &todo.SaveError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return &todo.SaveError{Path: path, Err: err}
	}

	s.logger.Debug("saved task file", "path", path, "tasks", len(tasks), "format", s.format)
	return nil
}

// Remove deletes the named task file.
func (s *Store) Remove(name string) error {
	path, ok := s.Exists(name)
	if !ok {
		return fmt.Errorf("%s is not a valid file", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove task file: %w", err)
	}
	s.logger.Debug("removed task file", "path", path)
	return nil
}

// List returns the names of the task files in the data directory, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	// Some platforms cannot sync directories; the rename already happened.
	_ = d.Sync()
	return nil
}
