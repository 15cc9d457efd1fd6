package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrOutsideResults is returned for names that would resolve outside the
// results directory.
var ErrOutsideResults = errors.New("path escapes results directory")

// ResultsDir keeps rendered timetables on local disk.
type ResultsDir struct {
	baseDir string
}

// NewResultsDir creates the directory when missing.
func NewResultsDir(baseDir string) (*ResultsDir, error) {
	if baseDir == "" {
		baseDir = "./results"
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve results directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return &ResultsDir{baseDir: abs}, nil
}

// Save writes data under name and returns the name relative to the
// results directory.
func (s *ResultsDir) Save(name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare result directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write result %s: %w", name, err)
	}
	return filepath.ToSlash(name), nil
}

// Open returns a read-only handle for a stored result.
func (s *ResultsDir) Open(name string) (*os.File, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result %s: %w", name, err)
	}
	return file, nil
}

// CleanupOlderThan removes results last modified before now-ttl and returns
// their relative names.
func (s *ResultsDir) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	var removed []string
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		removed = append(removed, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup results: %w", err)
	}
	return removed, nil
}

// Path returns the absolute location of a stored result.
func (s *ResultsDir) Path(name string) string {
	path, err := s.resolve(name)
	if err != nil {
		return ""
	}
	return path
}

func (s *ResultsDir) resolve(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", ErrOutsideResults
	}
	path := filepath.Join(s.baseDir, filepath.FromSlash(name))
	if path != s.baseDir && !strings.HasPrefix(path, s.baseDir+string(filepath.Separator)) {
		return "", ErrOutsideResults
	}
	return path, nil
}
