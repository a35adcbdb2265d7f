package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/paper-verifier/internal/recognize"
	"github.com/meshintel/paper-verifier/pkg/types"
)

const sampleConfig = `fetch:
  timeout: 30s
  user_agent: verifier-test/1.0
  download_delay: 2s
  papers_dir: /tmp/papers
recognition:
  base_url: https://api.example.com/v1
  model: vision-model
  max_retries: 5
  timeout: 90s
structuring:
  model: text-model
  max_input_chars: 4000
store:
  index_dir: /tmp/index
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper-verifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	viper.Reset()
	defer viper.Reset()
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := loadConfig()
	require.NoError(t, err)

	require.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	require.Equal(t, "verifier-test/1.0", cfg.Fetch.UserAgent)
	require.Equal(t, 2*time.Second, cfg.Fetch.DownloadDelay)
	require.Equal(t, "/tmp/papers", cfg.Fetch.PapersDir)

	require.Equal(t, "https://api.example.com/v1", cfg.Recognition.BaseURL)
	require.Equal(t, "vision-model", cfg.Recognition.Model)
	require.Equal(t, 5, cfg.Recognition.MaxRetries)
	require.Equal(t, 90*time.Second, cfg.Recognition.Timeout)

	require.Equal(t, "text-model", cfg.Structuring.Model)
	require.Equal(t, 4000, cfg.Structuring.MaxInputChars)
	require.Equal(t, "", cfg.Structuring.BaseURL, "unset sections stay empty")

	require.Equal(t, "/tmp/index", cfg.Store.IndexDir)
}

func TestClientFromConfigFallback(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("structuring-url", "", "")
	cmd.Flags().String("structuring-model", "", "")

	fallback := &recognize.Client{
		BaseURL: "https://api.example.com/v1",
		APIKey:  "key-1",
		Model:   "vision-model",
	}
	c, err := clientFromConfig(cmd, "structuring", types.AIConfig{}, 0, "structuring-api-key", fallback)
	require.NoError(t, err)
	require.Equal(t, fallback.BaseURL, c.BaseURL)
	require.Equal(t, fallback.Model, c.Model)
	require.Equal(t, fallback.APIKey, c.APIKey)
	require.Equal(t, defaultTimeout, c.HTTPClient.Timeout)
}

func TestClientFromConfigSectionValues(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("recognition-url", "", "")
	cmd.Flags().String("recognition-model", "", "")

	ai := types.AIConfig{
		BaseURL:    "https://api.example.com/v1",
		Model:      "vision-model",
		APIKey:     "key-2",
		MaxRetries: 4,
	}
	c, err := clientFromConfig(cmd, "recognition", ai, 90*time.Second, "recognition-api-key", nil)
	require.NoError(t, err)
	require.Equal(t, ai.BaseURL, c.BaseURL)
	require.Equal(t, ai.Model, c.Model)
	require.Equal(t, ai.APIKey, c.APIKey)
	require.Equal(t, 4, c.MaxRetries)
	require.Equal(t, 90*time.Second, c.HTTPClient.Timeout)
}

func TestFetchConfigLayering(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Duration("timeout", 0, "")
	cmd.Flags().Duration("delay", 0, "")
	cmd.Flags().String("papers-dir", "papers", "")

	t.Run("defaults when nothing set", func(t *testing.T) {
		fc := fetchConfig(cmd, types.FetchConfig{})
		require.Equal(t, defaultTimeout, fc.Timeout)
		require.Equal(t, defaultDelay, fc.DownloadDelay)
		require.Equal(t, defaultUserAgent, fc.UserAgent)
		require.Equal(t, "papers", fc.PapersDir)
	})

	t.Run("config file values survive", func(t *testing.T) {
		fc := fetchConfig(cmd, types.FetchConfig{
			HTTPConfig:    types.HTTPConfig{Timeout: 30 * time.Second, UserAgent: "custom/1.0"},
			DownloadDelay: 2 * time.Second,
			PapersDir:     "/tmp/papers",
		})
		require.Equal(t, 30*time.Second, fc.Timeout)
		require.Equal(t, 2*time.Second, fc.DownloadDelay)
		require.Equal(t, "custom/1.0", fc.UserAgent)
		require.Equal(t, "/tmp/papers", fc.PapersDir)
	})

	t.Run("flag overrides config", func(t *testing.T) {
		require.NoError(t, cmd.Flags().Set("timeout", "10s"))
		fc := fetchConfig(cmd, types.FetchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: 30 * time.Second},
		})
		require.Equal(t, 10*time.Second, fc.Timeout)
	})
}
