package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCommand_MissingInFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "normalize").CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"in\" not set")
}

func TestRenderCommand_UnsupportedFormat(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render", "--in", messyInput, "--format", "latex", "--out-dir", t.TempDir())
	output, err := cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "unsupported format")
}

func TestRenderCommand_WritesDocx(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outDir := t.TempDir()

	cmd := exec.Command(binaryPath, "render", "--in", messyInput, "--out-dir", outDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.FileExists(t, filepath.Join(outDir, "Ada Lovelace.docx"))
}

func TestValidateCommand_ExitsNonZeroOnViolations(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "validate", "--in", messyInput).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "validation failed")
}
