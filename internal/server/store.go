package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/types"
)

// ResumeStore persists normalized resumes and their generated documents.
// *db.DB implements it.
type ResumeStore interface {
	Ping(ctx context.Context) error
	CreateResume(ctx context.Context, record types.ResumeRecord, source json.RawMessage) (*db.Resume, error)
	UpdateResume(ctx context.Context, id uuid.UUID, record types.ResumeRecord, source json.RawMessage) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, limit int) ([]db.ResumeSummary, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	SaveDocument(ctx context.Context, resumeID uuid.UUID, version time.Time, format, fileName string, content []byte) (*db.Document, error)
	GetDocument(ctx context.Context, resumeID uuid.UUID, format string) (*db.Document, error)
}

var _ ResumeStore = (*db.DB)(nil)
