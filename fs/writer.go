// Package fs provides file-based storage for insight results.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/shopinsight"
)

// URLToPath converts a store URL to a relative file path.
// Example: https://shop.example.com:8443/collections → shop.example.com_8443.json
func URLToPath(storeURL string) (string, error) {
	u, err := url.Parse(storeURL)
	if err != nil {
		return "", shopinsight.WrapError(shopinsight.EINVALID, err, "invalid store URL %q", storeURL)
	}
	if u.Host == "" {
		return "", shopinsight.Errorf(shopinsight.EINVALID, "store URL %q has no host", storeURL)
	}

	name := strings.ToLower(u.Host)
	name = strings.ReplaceAll(name, ":", "_")
	return name + ".json", nil
}

// resultFile is the on-disk shape of an InsightResult.
type resultFile struct {
	BrandID    string                     `json:"brand_id,omitempty"`
	StoreURL   string                     `json:"store_url"`
	Insights   *shopinsight.BrandInsights `json:"insights"`
	Structured map[string]any             `json:"structured"`
}

// FormatResult encodes a result as indented JSON.
func FormatResult(result *shopinsight.InsightResult) ([]byte, error) {
	if result == nil || result.Insights == nil {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "result has no insights")
	}
	b, err := json.MarshalIndent(resultFile{
		BrandID:    result.BrandID,
		StoreURL:   result.Insights.StoreURL,
		Insights:   result.Insights,
		Structured: result.Structured,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Ensure Writer implements shopinsight.ResultWriter at compile time.
var _ shopinsight.ResultWriter = (*Writer)(nil)

// Writer writes results as JSON files to a directory, one file per store.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult writes result to <host>.json, replacing any earlier file.
func (w *Writer) WriteResult(ctx context.Context, result *shopinsight.InsightResult) error {
	return writeResult(w.baseDir, result)
}

func writeResult(dir string, result *shopinsight.InsightResult) error {
	content, err := FormatResult(result)
	if err != nil {
		return err
	}

	relPath, err := URLToPath(result.Insights.StoreURL)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Write next to the target and rename so readers never see a partial file.
	fullPath := filepath.Join(dir, relPath)
	tmp, err := os.CreateTemp(dir, "."+relPath+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fullPath)
}
