package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/server/middleware"
	"github.com/jonathan/resume-formatter/internal/types"
	"go.uber.org/zap"
)

// ResumeResponse is a stored resume with the diagnostics from its latest normalization
type ResumeResponse struct {
	*db.Resume
	Diagnostics parsing.Diagnostics `json:"diagnostics,omitempty"`
}

// resumeFields identifies a resume and, when authenticated, the calling client
func resumeFields(r *http.Request, id uuid.UUID) []zap.Field {
	fields := []zap.Field{zap.String("resume_id", id.String())}
	if clientID, err := middleware.GetClientID(r); err == nil {
		fields = append(fields, zap.String("client_id", clientID.String()))
	}
	return fields
}

// decodeResumeRequest reads, validates and normalizes a ResumeRequest
func (s *Server) decodeResumeRequest(w http.ResponseWriter, r *http.Request) (*ResumeRequest, types.ResumeRecord, parsing.Diagnostics, error) {
	body, err := readBody(w, r)
	if err != nil {
		return nil, types.ResumeRecord{}, nil, err
	}

	var req ResumeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, types.ResumeRecord{}, nil, &ErrValidation{Field: "body", Message: "must be a JSON object with a data field"}
	}
	if err := s.validateStruct(&req); err != nil {
		return nil, types.ResumeRecord{}, nil, err
	}

	record, diags, err := normalizeBody(req.Data, req.Standardize)
	if err != nil {
		return nil, types.ResumeRecord{}, nil, err
	}
	return &req, record, diags, nil
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStorageDisabled)
		return
	}

	req, record, diags, err := s.decodeResumeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.store.CreateResume(r.Context(), record, req.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("resume created", resumeFields(r, res.ID)...)
	s.jsonResponse(w, http.StatusCreated, ResumeResponse{Resume: res, Diagnostics: diags})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStorageDisabled)
		return
	}

	q, err := parseListQuery(r)
	if err == nil {
		err = s.validateStruct(&q)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summaries, err := s.store.ListResumes(r.Context(), q.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries, "count": len(summaries)})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: res})
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStorageDisabled)
		return
	}
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req, record, diags, err := s.decodeResumeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.store.UpdateResume(r.Context(), id, record, req.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.documents.Forget(id.String())
	s.logger.Info("resume updated", resumeFields(r, id)...)
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: res, Diagnostics: diags})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStorageDisabled)
		return
	}
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.documents.Forget(id.String())
	s.logger.Info("resume deleted", resumeFields(r, id)...)
	w.WriteHeader(http.StatusNoContent)
}

// handleResumeDocument serves the stored .docx, generating and caching it on
// first request. Concurrent requests for one resume share a single generation.
func (s *Server) handleResumeDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrStorageDisabled)
		return
	}
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err, shared := s.documents.Do(id.String(), func() (any, error) {
		// shared by every coalesced caller
		return s.documentFor(context.WithoutCancel(r.Context()), id)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if shared {
		s.logger.Debug("document request coalesced", zap.String("resume_id", id.String()))
	}

	doc := v.(*db.Document)
	writeBytes(w, docx.ContentType, doc.FileName, doc.Content)
}

func (s *Server) documentFor(ctx context.Context, id uuid.UUID) (*db.Document, error) {
	doc, err := s.store.GetDocument(ctx, id, docx.Extension)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	res, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.Generate(ctx, res.Record)
	if err != nil {
		return nil, err
	}

	doc, err = s.store.SaveDocument(ctx, id, res.UpdatedAt, docx.Extension, generated.FileName, generated.Data)
	switch {
	case errors.Is(err, db.ErrStale):
		s.logger.Debug("resume changed during generation, document not cached", zap.String("resume_id", id.String()))
	case err != nil:
		s.logger.Warn("failed to cache document", zap.String("resume_id", id.String()), zap.Error(err))
	default:
		return doc, nil
	}
	// Serve the fresh document even when it was not cached
	return &db.Document{ResumeID: id, Format: docx.Extension, FileName: generated.FileName, Content: generated.Data}, nil
}

func (s *Server) handleResumePreview(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadResume(w, r)
	if !ok {
		return
	}

	html, err := rendering.PreviewHTML(res.Record)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, "text/html; charset=utf-8", "", html)
}

// loadResume resolves the {id} path value to a stored resume, writing the
// error response itself when it cannot.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (*db.Resume, bool) {
	if s.store == nil {
		s.writeError(w, r, ErrStorageDisabled)
		return nil, false
	}
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}

	res, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return res, true
}
