package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check JSON against the canonical resume record schema",
	Long: `Validates a JSON file against the canonical record schema without repairing it.
With --normalize the input is repaired first, which always yields a conforming record.`,
	RunE: runValidate,
}

var (
	validateInputFile  string
	validateSchemaFile string
	validateNormalize  bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to resume JSON, or - for stdin (required)")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Validate against this JSON Schema file instead of the canonical record schema")
	validateCmd.Flags().BoolVar(&validateNormalize, "normalize", false, "Normalize before validating")

	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	switch {
	case validateSchemaFile != "":
		schema, rerr := os.ReadFile(validateSchemaFile)
		if rerr != nil {
			return fmt.Errorf("failed to read schema file: %w", rerr)
		}
		data, rerr := readInput(cmd, validateInputFile)
		if rerr != nil {
			return rerr
		}
		err = schemas.ValidateAgainst(schema, data)
	case validateNormalize:
		record, _, nerr := normalizeInput(cmd, validateInputFile, false)
		if nerr != nil {
			return nerr
		}
		err = schemas.ValidateRecord(record)
	default:
		data, rerr := readInput(cmd, validateInputFile)
		if rerr != nil {
			return rerr
		}
		err = schemas.ValidateRecordJSON(data)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), validationErr.Error())
		return fmt.Errorf("%d schema violation(s)", len(validationErr.Errors))
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✅ document conforms to the schema")
	return nil
}
