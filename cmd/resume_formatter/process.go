package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/stream"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract a resume file through the extraction service and normalize it",
	Long: `Uploads a resume file (PDF, DOCX) to the extraction service, waits for its
final_data event and writes the normalized record.`,
	RunE: runProcess,
}

var (
	processFile        string
	processURL         string
	processOutputFile  string
	processStandardize bool
)

func init() {
	processCmd.Flags().StringVarP(&processFile, "file", "f", "", "Path to the resume file to extract (required)")
	processCmd.Flags().StringVar(&processURL, "url", "", "Extraction service base URL (default from config extraction_url)")
	processCmd.Flags().StringVarP(&processOutputFile, "out", "o", "", "Path to write the canonical record (default stdout)")
	processCmd.Flags().BoolVar(&processStandardize, "standardize", false, "Standardize work periods, locations and bullet prefixes")

	_ = processCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if processURL == "" {
		processURL = cfg.ExtractionURL
	}
	if processURL == "" {
		return fmt.Errorf("extraction service URL not set: use --url or RF_EXTRACTION_URL")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	content, err := os.ReadFile(processFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	ev, err := stream.NewClient(processURL, logger).Process(cmd.Context(), filepath.Base(processFile), content)
	if err != nil {
		return err
	}

	record, diags := parsing.NormalizeJSONWithOptions(ev.Data, parsing.Options{StandardizeFormats: processStandardize})
	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDiagnostics(diags)
		printer.PrintResumeSummary(&record)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return writeOutput(cmd, processOutputFile, append(data, '\n'))
}
