// Package export turns canonical resume records into saved document files.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// FallbackFileName is used when the record carries no usable name
const FallbackFileName = "Resume"

// Result is a generated document ready to be saved or sent
type Result struct {
	FileName string
	Data     []byte
}

// Generator renders and serializes documents, one at a time
type Generator struct {
	sem       *semaphore.Weighted
	logger    *zap.Logger
	render    func(types.ResumeRecord) (*document.Document, error)
	serialize func(*document.Document) ([]byte, error)
}

// NewGenerator creates a Generator. A nil logger disables logging.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		sem:       semaphore.NewWeighted(1),
		logger:    logger,
		render:    rendering.SafeRenderDocument,
		serialize: docx.Bytes,
	}
}

// Generate renders record into .docx bytes. It fails fast with
// ErrGenerationInProgress when another generation holds the generator, and
// reports every other failure as a *GenerationError.
func (g *Generator) Generate(ctx context.Context, record types.ResumeRecord) (res Result, err error) {
	if !g.sem.TryAcquire(1) {
		return Result{}, ErrGenerationInProgress
	}
	defer g.sem.Release(1)

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = g.fail(record, fmt.Errorf("panic during generation: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, g.fail(record, err)
	}

	doc, err := g.render(record)
	if err != nil {
		return Result{}, g.fail(record, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, g.fail(record, err)
	}

	data, err := g.serialize(doc)
	if err != nil {
		return Result{}, g.fail(record, err)
	}

	return Result{FileName: FileName(record, docx.Extension), Data: data}, nil
}

func (g *Generator) fail(record types.ResumeRecord, cause error) error {
	g.logger.Error("document generation failed",
		zap.String("resume", record.Name),
		zap.Error(cause),
	)
	return &GenerationError{Cause: cause}
}

// Save generates the document and writes it into dir. The file is written to
// a temporary name first and renamed into place, so a failed or cancelled
// save leaves no partial file behind.
func (g *Generator) Save(ctx context.Context, record types.ResumeRecord, dir string) (string, error) {
	res, err := g.Generate(ctx, record)
	if err != nil {
		return "", err
	}
	return WriteFile(ctx, dir, res)
}

// WriteFile atomically writes a generated result into dir and returns its path
func WriteFile(ctx context.Context, dir string, res Result) (path string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &GenerationError{Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".resume-*.tmp")
	if err != nil {
		return "", &GenerationError{Cause: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(res.Data); err != nil {
		return "", &GenerationError{Cause: err}
	}
	if err = tmp.Sync(); err != nil {
		return "", &GenerationError{Cause: err}
	}
	if err = tmp.Close(); err != nil {
		return "", &GenerationError{Cause: err}
	}
	if err = ctx.Err(); err != nil {
		return "", &GenerationError{Cause: err}
	}

	path = filepath.Join(dir, res.FileName)
	if err = os.Rename(tmpName, path); err != nil {
		return "", &GenerationError{Cause: err}
	}
	return path, nil
}

var unsafeFileChars = regexp.MustCompile(`[\x00-\x1f<>:"/\\|?*]+`)

// FileName derives "<name>.<ext>" from the record holder's name, falling
// back to "Resume" when the name is blank or has no usable characters.
func FileName(record types.ResumeRecord, ext string) string {
	name := unsafeFileChars.ReplaceAllString(record.Name, " ")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, ". ")
	if name == "" {
		name = FallbackFileName
	}
	if ext == "" {
		return name
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
