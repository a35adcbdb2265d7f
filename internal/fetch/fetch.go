// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads paper evidence files and writes their
// metadata sidecars, gating each download on duplicate detection
// against the stored record set.
package fetch

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/paper-verifier/internal/dedup"
	"github.com/meshintel/paper-verifier/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// Item is one download request: the paper's web metadata plus the URL
// of the evidence file to retrieve.
type Item struct {
	Record  types.MetadataRecord `yaml:"record"`
	FileURL string               `yaml:"file_url"`
}

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Duplicates int
	Failed     int
}

// Total returns the total number of items processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Duplicates + r.Failed
}

// HasFailures reports whether any items failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchOne downloads a single evidence file. Duplicates of a prior
// record and files already on disk are skipped, not errors. Returns the
// path of the evidence file on disk.
func FetchOne(client *http.Client, item Item, priors []types.MetadataRecord, cfg types.FetchConfig, w io.Writer) (path string, skipped bool, err error) {
	if v := dedup.IsDuplicate(item.Record, priors); v.Duplicate {
		fmt.Fprintf(w, "duplicate: %s (%s)\n", slug(item), v.Reason)
		return "", true, nil
	}

	s := slug(item)
	pdfPath := filepath.Join(cfg.PapersDir, rawDir, s+".pdf")
	metaPath := filepath.Join(cfg.PapersDir, metadataDir, s+".yaml")

	if _, statErr := os.Stat(pdfPath); statErr == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", s)
		return pdfPath, true, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.PapersDir, rawDir),
		filepath.Join(cfg.PapersDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", s)
	if err := downloadFile(client, item.FileURL, pdfPath, cfg); err != nil {
		return "", false, fmt.Errorf("downloading %s: %w", s, err)
	}

	if err := writeSidecar(metaPath, item); err != nil {
		return "", false, fmt.Errorf("writing metadata for %s: %w", s, err)
	}
	return pdfPath, false, nil
}

// FetchBatch processes items sequentially, printing per-item status and
// continuing after individual failures. A delay applies between
// consecutive downloads so source sites are not hammered.
func FetchBatch(client *http.Client, items []Item, priors []types.MetadataRecord, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, item := range items {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}
		_, wasSkipped, err := FetchOne(client, item, priors, cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", slug(item), err)
			result.Failed++
		case wasSkipped && dedup.IsDuplicate(item.Record, priors).Duplicate:
			result.Duplicates++
		case wasSkipped:
			result.Skipped++
		default:
			result.Downloaded++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d duplicates, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Duplicates, result.Failed, result.Total())
	return result
}

// downloadFile fetches url to destPath through a temporary file so a
// failed download never leaves a partial evidence file behind.
func downloadFile(client *http.Client, url, destPath string, cfg types.FetchConfig) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func writeSidecar(path string, item Item) error {
	data, err := yaml.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// slug derives the on-disk name for an item from its identity fields.
func slug(item Item) string {
	h := sha256.New()
	h.Write([]byte(item.Record.Title))
	h.Write([]byte(item.Record.FirstAuthor))
	h.Write([]byte(item.FileURL))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}
