package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Repair resume JSON into the canonical record",
	Long: `Reads loosely structured resume JSON and writes the canonical record.
Every field is present in the output and every list is a list, whatever the input shape.`,
	RunE: runNormalize,
}

var (
	normalizeInputFile   string
	normalizeOutputFile  string
	normalizeStandardize bool
	normalizeDiagnostics bool
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInputFile, "in", "i", "", "Path to raw resume JSON, or - for stdin (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOutputFile, "out", "o", "", "Path to write the canonical record (default stdout)")
	normalizeCmd.Flags().BoolVar(&normalizeStandardize, "standardize", false, "Standardize work periods, locations and bullet prefixes")
	normalizeCmd.Flags().BoolVar(&normalizeDiagnostics, "diagnostics", false, "Emit {record, diagnostics} instead of the bare record")

	_ = normalizeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(normalizeCmd)
}

type normalizeOutput struct {
	Record      types.ResumeRecord  `json:"record"`
	Diagnostics parsing.Diagnostics `json:"diagnostics"`
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	record, diags, err := normalizeInput(cmd, normalizeInputFile, normalizeStandardize)
	if err != nil {
		return err
	}

	var out any = record
	if normalizeDiagnostics {
		if diags == nil {
			diags = parsing.Diagnostics{}
		}
		out = normalizeOutput{Record: record, Diagnostics: diags}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return writeOutput(cmd, normalizeOutputFile, append(data, '\n'))
}
