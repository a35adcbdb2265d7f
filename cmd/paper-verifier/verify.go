package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/paper-verifier/internal/pdftext"
	"github.com/meshintel/paper-verifier/internal/recognize"
	"github.com/meshintel/paper-verifier/internal/store"
	"github.com/meshintel/paper-verifier/internal/verify"
	"github.com/meshintel/paper-verifier/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [metadata-file] [evidence-pdf]",
	Short: "Reconcile web metadata against a downloaded evidence file",
	Long: `Verify loads a web metadata record from a YAML or JSON file, extracts
a second record from the evidence PDF, and optionally runs an
optical-recognition and structuring pass over a page image supplied
with --image. The three records are reconciled field by field and the
result is printed and stored in the paper index.

The command exits non-zero when no field matched.`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("image", "", "page image for the recognition pass (png/jpeg)")
	verifyCmd.Flags().String("recognition-url", "", "chat-completions base URL for recognition")
	verifyCmd.Flags().String("recognition-model", "", "model identifier for recognition")
	verifyCmd.Flags().String("structuring-url", "", "chat-completions base URL for structuring (default: recognition URL)")
	verifyCmd.Flags().String("structuring-model", "", "model identifier for structuring (default: recognition model)")
	verifyCmd.Flags().String("index-dir", "index", "directory of the paper index")
	verifyCmd.Flags().Bool("json", false, "output the result as JSON")
	verifyCmd.Flags().Bool("no-store", false, "do not persist the record and result")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	web, err := loadWebRecord(args[0])
	if err != nil {
		return err
	}

	doc, err := pdftext.Record(args[1])
	if err != nil {
		return &types.StageError{Stage: "document", Err: err}
	}

	var recog types.MetadataRecord
	imagePath, _ := cmd.Flags().GetString("image")
	if imagePath != "" {
		recog, err = recognitionRecord(cmd, cfg, imagePath)
		if err != nil {
			return err
		}
	}

	result := verify.Verify(web, doc, recog)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := printResult(result, jsonOutput); err != nil {
		return err
	}

	noStore, _ := cmd.Flags().GetBool("no-store")
	if !noStore {
		indexDir, _ := cmd.Flags().GetString("index-dir")
		if !cmd.Flags().Changed("index-dir") && cfg.Store.IndexDir != "" {
			indexDir = cfg.Store.IndexDir
		}
		s, err := store.Open(types.StoreConfig{IndexDir: indexDir})
		if err != nil {
			return &types.StageError{Stage: "store", Err: err}
		}
		defer s.Close()

		id, err := s.Append(context.Background(), web, &result)
		if err != nil {
			return &types.StageError{Stage: "store", Err: err}
		}
		fmt.Fprintf(os.Stderr, "Stored record %s\n", id)
	}

	if !result.Passed() {
		return fmt.Errorf("verification failed: no field matched")
	}
	return nil
}

// loadWebRecord reads the web metadata record from a YAML or JSON file.
func loadWebRecord(path string) (types.MetadataRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.MetadataRecord{}, fmt.Errorf("reading metadata file: %w", err)
	}
	var rec types.MetadataRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return types.MetadataRecord{}, fmt.Errorf("parsing metadata file: %w", err)
	}
	if rec.Source == "" {
		rec.Source = types.SourceWeb
	}
	return rec, nil
}

// recognitionRecord runs the recognition and structuring passes over a
// page image and returns the resulting metadata record.
func recognitionRecord(cmd *cobra.Command, cfg types.VerifierConfig, imagePath string) (types.MetadataRecord, error) {
	ctx := context.Background()

	recogClient, err := clientFromConfig(cmd, "recognition", cfg.Recognition.AIConfig, cfg.Recognition.Timeout, "recognition-api-key", nil)
	if err != nil {
		return types.MetadataRecord{}, err
	}

	dataURL, err := recognize.ImageFileDataURL(imagePath)
	if err != nil {
		return types.MetadataRecord{}, &types.StageError{Stage: "recognition", Err: err}
	}

	text, err := recognize.ExtractText(ctx, recogClient, dataURL)
	if err != nil {
		return types.MetadataRecord{}, &types.StageError{Stage: "recognition", Err: err}
	}

	structClient, err := clientFromConfig(cmd, "structuring", cfg.Structuring.AIConfig, cfg.Structuring.Timeout, "structuring-api-key", recogClient)
	if err != nil {
		return types.MetadataRecord{}, err
	}

	maxChars := cfg.Structuring.MaxInputChars
	if maxChars == 0 {
		maxChars = recognize.DefaultMaxInputChars
	}

	res, err := recognize.Structure(ctx, structClient, text, maxChars)
	if err != nil {
		return types.MetadataRecord{}, &types.StageError{Stage: "structuring", Err: err}
	}
	if res.IsStructured() {
		return res.Structured.ToRecord(), nil
	}
	fmt.Fprintf(os.Stderr, "warning: structuring produced no parseable answer (%s); falling back to raw text\n", res.ParseError)
	return recognize.RawRecord(text), nil
}

// clientFromConfig builds a chat-completions client for stage from
// flags, the stage's config section, and secrets, falling back to the
// given client's values for unset fields.
func clientFromConfig(cmd *cobra.Command, stage string, ai types.AIConfig, timeout time.Duration, secretKey string, fallback *recognize.Client) (*recognize.Client, error) {
	baseURL, _ := cmd.Flags().GetString(stage + "-url")
	if baseURL == "" {
		baseURL = ai.BaseURL
	}
	model, _ := cmd.Flags().GetString(stage + "-model")
	if model == "" {
		model = ai.Model
	}
	apiKey := secretDefault(secretKey, ai.APIKey)

	if fallback != nil {
		if baseURL == "" {
			baseURL = fallback.BaseURL
		}
		if model == "" {
			model = fallback.Model
		}
		if apiKey == "" {
			apiKey = fallback.APIKey
		}
	}
	if baseURL == "" || model == "" {
		return nil, fmt.Errorf("%s stage not configured: set --%s-url and --%s-model or the %s section of the config file", stage, stage, stage, stage)
	}

	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &recognize.Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: timeout},
		MaxRetries: ai.MaxRetries,
	}, nil
}

func printResult(result types.MatchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Printf("passed: %v\n%s", result.Passed(), out)
	return nil
}
