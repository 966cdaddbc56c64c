package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

const (
	messyInput = "../../testdata/raw/messy_extraction.json"
	emptyInput = "../../testdata/raw/empty.json"
)

// getBinaryPath returns the path to the resume_formatter binary for testing
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "resume_formatter")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_formatter ./cmd/resume_formatter'", binaryPath)
	}
	return binaryPath
}

// testCommand returns a command wired to in-memory streams
func testCommand(stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(context.Background())
	return cmd, &stdout, &stderr
}

// setFlag assigns a package-level flag variable for one test
func setFlag[T any](t *testing.T, target *T, value T) {
	t.Helper()
	prev := *target
	*target = value
	t.Cleanup(func() { *target = prev })
}

// isolateConfig keeps the developer's environment out of config loading
func isolateConfig(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRATION_HOURS", "CHROME_PATH", "EXTRACTION_URL",
		"RF_PORT", "RF_DATABASE_URL", "RF_JWT_SECRET", "RF_JWT_EXPIRATION_HOURS", "RF_CHROME_PATH",
		"RF_EXTRACTION_URL", "RF_OUTPUT_DIR", "RF_ENVIRONMENT", "RF_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	setFlag(t, &configFile, "")
	setFlag(t, &verbose, false)
}
