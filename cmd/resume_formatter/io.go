package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/logging"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stdinPath selects standard input for --in
const stdinPath = "-"

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// readInput reads a file, or standard input when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// writeOutput writes to a file, creating its directory, or to stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// normalizeInput reads raw JSON and repairs it into a canonical record.
// Unlike the library normalizer, malformed JSON is an error here.
func normalizeInput(cmd *cobra.Command, path string, standardize bool) (types.ResumeRecord, parsing.Diagnostics, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return types.ResumeRecord{}, nil, err
	}
	raw, err := parsing.DecodeJSON(data)
	if err != nil {
		return types.ResumeRecord{}, nil, err
	}

	record, diags := parsing.NormalizeWithOptions(raw, parsing.Options{StandardizeFormats: standardize})
	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDiagnostics(diags)
		printer.PrintResumeSummary(&record)
	}
	return record, diags, nil
}
