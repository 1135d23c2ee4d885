package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/export"
	"github.com/emiliopalmerini/codebuddy/internal/util"
)

const snapshotExt = ".json.gz"

// SnapshotStorage keeps gzipped JSON copies of the problem table on disk.
type SnapshotStorage struct {
	baseDir string
}

// NewSnapshotStorage stores snapshots under the XDG data directory.
func NewSnapshotStorage() (*SnapshotStorage, error) {
	baseDir, err := util.GetXDGDataDir()
	if err != nil {
		return nil, err
	}
	return NewSnapshotStorageAt(filepath.Join(baseDir, "snapshots"))
}

func NewSnapshotStorageAt(dir string) (*SnapshotStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshots directory: %w", err)
	}
	return &SnapshotStorage{baseDir: dir}, nil
}

// maxNameAttempts bounds the suffixes tried when a snapshot name is taken.
const maxNameAttempts = 1000

// Store writes problems as a new snapshot and returns its name and file
// path. An existing snapshot is never replaced: when name is taken the
// first free name-1, name-2, ... is used.
func (s *SnapshotStorage) Store(ctx context.Context, name string, problems []*domain.Problem) (string, string, error) {
	if err := checkName(name); err != nil {
		return "", "", err
	}

	dest, stored, err := s.create(name)
	if err != nil {
		return "", "", err
	}
	destPath := dest.Name()

	if err := export.WriteGzip(dest, export.FormatJSON, problems); err != nil {
		_ = dest.Close()
		_ = os.Remove(destPath)
		return "", "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", "", fmt.Errorf("failed to close snapshot file: %w", err)
	}

	return stored, destPath, nil
}

func (s *SnapshotStorage) create(name string) (*os.File, string, error) {
	candidate := name
	for i := 1; i <= maxNameAttempts; i++ {
		f, err := os.OpenFile(s.getPath(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create snapshot file: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d", name, i)
	}
	return nil, "", fmt.Errorf("failed to create snapshot file: too many snapshots named %q", name)
}

func (s *SnapshotStorage) Get(ctx context.Context, name string) ([]export.Problem, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	file, err := os.Open(s.getPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer func() { _ = file.Close() }()

	gr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var problems []export.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return problems, nil
}

func (s *SnapshotStorage) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(s.getPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(s.getPath(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// List returns snapshot names, oldest first.
func (s *SnapshotStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), snapshotExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *SnapshotStorage) getPath(name string) string {
	return filepath.Join(s.baseDir, name+snapshotExt)
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return &domain.ValidationError{Field: "snapshot", Message: fmt.Sprintf("invalid snapshot name %q", name)}
	}
	return nil
}
