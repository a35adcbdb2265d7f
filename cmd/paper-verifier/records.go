package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/paper-verifier/internal/dedup"
	"github.com/meshintel/paper-verifier/internal/store"
	"github.com/meshintel/paper-verifier/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the persisted paper index (list, check, result, export)",
	Long: `Records manages the local SQLite index of verified papers. Use
subcommands to list stored records, check a candidate for duplication,
look up a stored verification result, or export the index.`,
}

// --- list subcommand ---

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored paper records",
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	s, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Snapshot(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No records stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-11s  %-50s  %s\n", "ID", "Source", "Title", "First author")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, rec := range records {
		title := rec.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-11s  %-50s  %s\n",
			store.RecordID(rec), rec.Source, title, rec.FirstAuthor)
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
	return nil
}

// --- check subcommand ---

var recordsCheckCmd = &cobra.Command{
	Use:   "check [metadata-file]",
	Short: "Check whether a candidate record duplicates a stored one",
	Long: `Check loads a metadata record from a YAML or JSON file and tests it
against every stored record using the duplicate rules (source id,
source URL, then combined title and author similarity). Exits non-zero
when a duplicate is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsCheck,
}

func runRecordsCheck(cmd *cobra.Command, args []string) error {
	candidate, err := loadWebRecord(args[0])
	if err != nil {
		return err
	}

	s, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	priors, err := s.Snapshot(context.Background())
	if err != nil {
		return err
	}

	verdict := dedup.IsDuplicate(candidate, priors)
	if !verdict.Duplicate {
		fmt.Println("No duplicate found.")
		return nil
	}

	fmt.Printf("Duplicate: %s\n", verdict.Reason)
	out, err := yaml.Marshal(verdict.Matched)
	if err != nil {
		return fmt.Errorf("marshaling matched record: %w", err)
	}
	fmt.Printf("Matched record (%s):\n%s", store.RecordID(*verdict.Matched), out)
	return fmt.Errorf("candidate duplicates a stored record")
}

// --- result subcommand ---

var recordsResultCmd = &cobra.Command{
	Use:   "result [record-id]",
	Short: "Print the stored verification result for a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsResult,
}

func runRecordsResult(cmd *cobra.Command, args []string) error {
	s, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	match, err := s.MatchResult(context.Background(), args[0])
	if err != nil {
		return err
	}
	if match == nil {
		fmt.Println("Record has no stored verification result.")
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printResult(*match, jsonOutput)
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the paper index to YAML or JSON",
	RunE:  runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	s, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Snapshot(context.Background())
	if err != nil {
		return err
	}

	indexDir, _ := cmd.Flags().GetString("index-dir")
	format, _ := cmd.Flags().GetString("format")

	var path string
	var data []byte
	switch format {
	case "yaml", "":
		path = filepath.Join(indexDir, "export.yaml")
		data, err = yaml.Marshal(records)
	case "json":
		path = filepath.Join(indexDir, "export.json")
		data, err = json.MarshalIndent(records, "", "  ")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("Exported %d records to %s\n", len(records), path)
	return nil
}

// --- shared helpers ---

func openIndex(cmd *cobra.Command) (*store.Store, error) {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	s, err := store.Open(types.StoreConfig{IndexDir: indexDir})
	if err != nil {
		return nil, fmt.Errorf("opening paper index: %w", err)
	}
	return s, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	recordsCmd.PersistentFlags().String("index-dir", "index", "directory of the paper index")

	recordsListCmd.Flags().Bool("json", false, "output records as JSON")
	recordsResultCmd.Flags().Bool("json", false, "output the result as JSON")
	recordsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsCheckCmd)
	recordsCmd.AddCommand(recordsResultCmd)
	recordsCmd.AddCommand(recordsExportCmd)

	rootCmd.AddCommand(recordsCmd)
}
