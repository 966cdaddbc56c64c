package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/schemas"
	"go.uber.org/zap"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "storage": "disabled"}
	if s.store != nil {
		resp["storage"] = "up"
		if err := s.store.Ping(r.Context()); err != nil {
			resp["status"] = "degraded"
			resp["storage"] = "down"
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleNormalize turns any JSON payload into a canonical record
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	record, diags, err := recordFromRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, NormalizeResponse{Record: record, Diagnostics: diags})
}

// handleValidate checks a canonical record against the published JSON schema
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !json.Valid(body) {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "must be valid JSON"})
		return
	}

	resp := ValidateResponse{Valid: true, Errors: []FieldIssue{}}
	if err := schemas.ValidateRecordJSON(body); err != nil {
		var valErr *schemas.ValidationError
		if !errors.As(err, &valErr) {
			s.writeError(w, r, err)
			return
		}
		resp.Valid = false
		for _, fe := range valErr.Errors {
			resp.Errors = append(resp.Errors, FieldIssue{Field: fe.Field, Message: fe.Message})
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handlePreview renders the HTML preview of a payload
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	record, _, err := recordFromRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	html, err := rendering.PreviewHTML(record)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, "text/html; charset=utf-8", "", html)
}

// handlePDF prints the preview to PDF with headless Chrome
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	if s.pdf == nil {
		s.writeError(w, r, ErrFeatureDisabled)
		return
	}
	record, _, err := recordFromRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	pdf, err := s.pdf.RenderPDF(r.Context(), record)
	if err != nil {
		s.writeError(w, r, &export.GenerationError{Cause: err})
		return
	}
	writeBytes(w, "application/pdf", export.FileName(record, "pdf"), pdf)
}

// handleDocument generates the .docx for a payload
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	record, _, err := recordFromRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.generator.Generate(r.Context(), record)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, docx.ContentType, res.FileName, res.Data)
}

// handleStreamNormalize answers with the extraction service's event-stream
// framing: one final_data event carrying the record, then [DONE].
func (s *Server) handleStreamNormalize(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer sse.WriteDone()

	record, _, err := normalizeBody(body, queryBool(r, "standardize"))
	if err != nil {
		sse.WriteError(publicMessage(err))
		return
	}
	if err := sse.WriteFinalData(record); err != nil {
		s.logger.Error("failed to write stream event", zap.Error(err))
	}
}

// handleProcess uploads a resume file to the extraction service and
// normalizes the extracted payload.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.writeError(w, r, ErrFeatureDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "required"})
		return
	}
	defer file.Close() //nolint:errcheck

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "unreadable"})
		return
	}

	ev, err := s.extractor.Process(r.Context(), header.Filename, buf.Bytes())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	record, diags := parsing.NormalizeJSONWithOptions(ev.Data, parsing.Options{StandardizeFormats: queryBool(r, "standardize")})
	s.jsonResponse(w, http.StatusOK, NormalizeResponse{Record: record, Diagnostics: diags})
}

// writeBytes sends a binary body, as an attachment when fileName is set
func writeBytes(w http.ResponseWriter, contentType, fileName string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if fileName != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
