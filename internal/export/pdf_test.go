package export

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// findChrome returns a Chrome binary on PATH, or "" when none is installed
func findChrome() string {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func TestNewPDFRenderer_Defaults(t *testing.T) {
	r := NewPDFRenderer("/opt/chrome", nil)
	assert.Equal(t, "/opt/chrome", r.ChromePath)
	assert.Equal(t, DefaultPDFTimeout, r.Timeout)
	assert.NotNil(t, r.Logger)
	assert.Len(t, r.allocatorOptions(), len(NewPDFRenderer("", nil).allocatorOptions())+1)
}

func TestPDFRenderer_RenderHTML_LogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewPDFRenderer("/nonexistent/chrome", zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderHTML(ctx, []byte("<html><body>x</body></html>"))
	require.Error(t, err)

	entries := logs.FilterMessage("starting headless browser").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 27, entries[0].ContextMap()["html_bytes"])
}

func TestPDFRenderer_RenderPDF_Integration(t *testing.T) {
	chrome := findChrome()
	if chrome == "" {
		t.Skip("Chrome not installed")
	}

	r := NewPDFRenderer(chrome, nil)
	r.Timeout = 90 * time.Second

	pdf, err := r.RenderPDF(context.Background(), testRecord())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
