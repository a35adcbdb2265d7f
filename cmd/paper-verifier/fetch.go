package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/paper-verifier/internal/fetch"
	"github.com/meshintel/paper-verifier/internal/store"
	"github.com/meshintel/paper-verifier/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "paper-verifier/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [items-file]",
	Short: "Download evidence files listed in a YAML items file",
	Long: `Fetch reads a YAML file of download items (web metadata record plus
evidence file URL), downloads each file to papers/raw/, and writes a
metadata sidecar to papers/metadata/. Files already on disk are
skipped, and items that duplicate a stored record are suppressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	fetchCmd.Flags().String("papers-dir", "papers", "base directory for evidence files")
	fetchCmd.Flags().String("index-dir", "index", "directory of the paper index used for duplicate checks")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading items file: %w", err)
	}
	var items []fetch.Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parsing items file: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("items file %s contains no download items", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fc := fetchConfig(cmd, cfg.Fetch)

	indexDir, _ := cmd.Flags().GetString("index-dir")
	if !cmd.Flags().Changed("index-dir") && cfg.Store.IndexDir != "" {
		indexDir = cfg.Store.IndexDir
	}
	priors, err := loadPriors(indexDir)
	if err != nil {
		return err
	}

	client := &http.Client{
		Timeout: fc.Timeout,
	}

	result := fetch.FetchBatch(client, items, priors, fc, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to download", result.Failed)
	}
	return nil
}

// fetchConfig layers flag values over the fetch section of the config
// file, filling anything still unset with the stage defaults.
func fetchConfig(cmd *cobra.Command, fc types.FetchConfig) types.FetchConfig {
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout != 0 {
		fc.Timeout = timeout
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay != 0 {
		fc.DownloadDelay = delay
	}
	if cmd.Flags().Changed("papers-dir") || fc.PapersDir == "" {
		fc.PapersDir, _ = cmd.Flags().GetString("papers-dir")
	}

	if fc.Timeout == 0 {
		fc.Timeout = defaultTimeout
	}
	if fc.DownloadDelay == 0 {
		fc.DownloadDelay = defaultDelay
	}
	if fc.UserAgent == "" {
		fc.UserAgent = defaultUserAgent
	}
	return fc
}

// loadPriors reads the stored records used for duplicate suppression.
// A missing index means no priors, not an error.
func loadPriors(indexDir string) ([]types.MetadataRecord, error) {
	if _, err := os.Stat(indexDir); os.IsNotExist(err) {
		return nil, nil
	}
	s, err := store.Open(types.StoreConfig{IndexDir: indexDir})
	if err != nil {
		return nil, fmt.Errorf("opening paper index: %w", err)
	}
	defer s.Close()

	priors, err := s.Snapshot(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading paper index: %w", err)
	}
	return priors, nil
}
