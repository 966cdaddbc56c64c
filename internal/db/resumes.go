package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-formatter/internal/types"
)

// DefaultListLimit caps ListResumes when no limit is given
const DefaultListLimit = 50

// Resume is a stored normalized record together with the raw payload it came from
type Resume struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Source    json.RawMessage    `json:"source,omitempty"`
	Record    types.ResumeRecord `json:"record"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ResumeSummary is a lightweight view of a resume for listing
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is a generated file stored for a resume
type Document struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  uuid.UUID `json:"resume_id"`
	Format    string    `json:"format"`
	FileName  string    `json:"file_name"`
	Content   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateResume stores a normalized record. source may be nil.
func (db *DB) CreateResume(ctx context.Context, record types.ResumeRecord, source json.RawMessage) (*Resume, error) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var sourceArg any
	if len(source) > 0 {
		sourceArg = []byte(source)
	}

	res := &Resume{Name: record.Name, Source: source, Record: record}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (name, source, record)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		record.Name, sourceArg, recordJSON,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return res, nil
}

// UpdateResume replaces the stored record and its raw source, and drops
// documents generated from the old one. source may be nil.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, record types.ResumeRecord, source json.RawMessage) (*Resume, error) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var sourceArg any
	if len(source) > 0 {
		sourceArg = []byte(source)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res := &Resume{ID: id, Name: record.Name, Source: source, Record: record}
	err = tx.QueryRow(ctx,
		`UPDATE resumes SET name = $1, source = $2, record = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING created_at, updated_at`,
		record.Name, sourceArg, recordJSON, id,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM resume_documents WHERE resume_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear documents: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit resume update: %w", err)
	}
	return res, nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var res Resume
	var source, recordJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, source, record, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&res.ID, &res.Name, &source, &recordJSON, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(recordJSON, &res.Record); err != nil {
		return nil, fmt.Errorf("failed to decode stored record: %w", err)
	}
	res.Source = source
	return &res, nil
}

// ListResumes retrieves the most recent resumes
func (db *DB) ListResumes(ctx context.Context, limit int) ([]ResumeSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, COALESCE(record->>'title', ''), created_at
		 FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Title, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// DeleteResume deletes a resume and its documents (via cascade)
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDocument stores a generated file, replacing any earlier one of the same
// format. version is the UpdatedAt of the resume the file was generated from;
// if the resume has changed since, nothing is stored and ErrStale is returned.
func (db *DB) SaveDocument(ctx context.Context, resumeID uuid.UUID, version time.Time, format, fileName string, content []byte) (*Document, error) {
	doc := &Document{ResumeID: resumeID, Format: format, FileName: fileName, Content: content}
	// FOR SHARE orders the insert against a concurrent UpdateResume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_documents (resume_id, format, file_name, content)
		 SELECT id, $2, $3, $4 FROM resumes
		 WHERE id = $1 AND updated_at = $5
		 FOR SHARE
		 ON CONFLICT (resume_id, format) DO UPDATE
		 SET file_name = EXCLUDED.file_name, content = EXCLUDED.content, created_at = NOW()
		 RETURNING id, created_at`,
		resumeID, format, fileName, content, version,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStale
		}
		return nil, fmt.Errorf("failed to save %s document: %w", format, err)
	}
	return doc, nil
}

// GetDocument retrieves the stored file of the given format for a resume
func (db *DB) GetDocument(ctx context.Context, resumeID uuid.UUID, format string) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, format, file_name, content, created_at
		 FROM resume_documents WHERE resume_id = $1 AND format = $2`,
		resumeID, format,
	).Scan(&doc.ID, &doc.ResumeID, &doc.Format, &doc.FileName, &doc.Content, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s document: %w", format, err)
	}
	return &doc, nil
}
