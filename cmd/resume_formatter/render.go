package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render resume JSON as .docx, HTML or PDF",
	Long: `Normalizes the input and renders it in each requested format. Files are
named after the candidate and written into the output directory.`,
	RunE: runRender,
}

var (
	renderInputFile   string
	renderOutputDir   string
	renderFormats     []string
	renderStandardize bool
	renderChromePath  string
)

const (
	formatDOCX = docx.Extension
	formatHTML = "html"
	formatPDF  = "pdf"
)

var supportedFormats = []string{formatDOCX, formatHTML, formatPDF}

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to raw resume JSON, or - for stdin (required)")
	renderCmd.Flags().StringVarP(&renderOutputDir, "out-dir", "o", "", "Output directory (default from config output_dir)")
	renderCmd.Flags().StringSliceVarP(&renderFormats, "format", "f", []string{formatDOCX}, "Formats to render: docx, html, pdf")
	renderCmd.Flags().BoolVar(&renderStandardize, "standardize", false, "Standardize work periods, locations and bullet prefixes")
	renderCmd.Flags().StringVar(&renderChromePath, "chrome", "", "Chrome binary for PDF output (default from config chrome_path)")

	_ = renderCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(renderCmd)
}

// artifact is one rendered file
type artifact struct {
	format string
	path   string
	size   int
}

func runRender(cmd *cobra.Command, _ []string) error {
	formats, err := parseFormats(renderFormats)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if renderOutputDir == "" {
		renderOutputDir = cfg.OutputDir
	}
	if renderChromePath == "" {
		renderChromePath = cfg.ChromePath
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	record, _, err := normalizeInput(cmd, renderInputFile, renderStandardize)
	if err != nil {
		return err
	}

	artifacts, err := renderAll(cmd.Context(), logger, record, formats, renderOutputDir, renderChromePath)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, a := range artifacts {
		if verbose {
			printer.PrintArtifact(a.format, a.path, a.size)
			continue
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.path)
	}
	return nil
}

func parseFormats(requested []string) ([]string, error) {
	var formats []string
	for _, f := range requested {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if !slices.Contains(supportedFormats, f) {
			return nil, fmt.Errorf("unsupported format %q (want one of %s)", f, strings.Join(supportedFormats, ", "))
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one --format is required")
	}
	return formats, nil
}

// renderAll renders every format concurrently. Output order follows formats.
func renderAll(ctx context.Context, logger *zap.Logger, record types.ResumeRecord, formats []string, dir, chromePath string) ([]artifact, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	byFormat := make(map[string]artifact, len(formats))

	for _, format := range formats {
		g.Go(func() error {
			res, err := renderFormat(ctx, logger, record, format, chromePath)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", format, err)
			}
			path, err := export.WriteFile(ctx, dir, res)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", format, err)
			}

			mu.Lock()
			byFormat[format] = artifact{format: format, path: path, size: len(res.Data)}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]artifact, 0, len(formats))
	for _, format := range formats {
		out = append(out, byFormat[format])
	}
	return out, nil
}

func renderFormat(ctx context.Context, logger *zap.Logger, record types.ResumeRecord, format, chromePath string) (export.Result, error) {
	switch format {
	case formatDOCX:
		return export.NewGenerator(logger).Generate(ctx, record)
	case formatHTML:
		html, err := rendering.PreviewHTML(record)
		if err != nil {
			return export.Result{}, err
		}
		return export.Result{FileName: export.FileName(record, formatHTML), Data: html}, nil
	case formatPDF:
		pdf, err := export.NewPDFRenderer(chromePath, logger).RenderPDF(ctx, record)
		if err != nil {
			return export.Result{}, err
		}
		return export.Result{FileName: export.FileName(record, formatPDF), Data: pdf}, nil
	}
	return export.Result{}, fmt.Errorf("unsupported format %q", format)
}

