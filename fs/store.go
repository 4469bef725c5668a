package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/shopinsight"
)

// Ensure ResultStore implements shopinsight.ResultWriter at compile time.
var _ shopinsight.ResultWriter = (*ResultStore)(nil)

// ResultStore stages a batch of results and publishes them on Commit.
// Results are saved to a temporary directory, then moved file by file into
// the final directory. Files already in the final directory that the batch
// did not write are left alone.
type ResultStore struct {
	baseDir string
	name    string
}

// NewResultStore creates a new ResultStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewResultStore(baseDir, name string) *ResultStore {
	return &ResultStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ResultStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ResultStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteResult saves result into the temporary directory.
func (s *ResultStore) WriteResult(ctx context.Context, result *shopinsight.InsightResult) error {
	return writeResult(s.tempDir(), result)
}

// Commit moves every staged result into the final directory, replacing
// results for the same store. A batch that wrote nothing still leaves the
// final directory in place.
func (s *ResultStore) Commit() error {
	if err := os.MkdirAll(s.finalDir(), 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.tempDir())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, entry := range entries {
		// Skip half-written files left by a failed write.
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		src := filepath.Join(s.tempDir(), entry.Name())
		dst := filepath.Join(s.finalDir(), entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}
	return os.RemoveAll(s.tempDir())
}

// Abort discards everything written since the store was created.
func (s *ResultStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
