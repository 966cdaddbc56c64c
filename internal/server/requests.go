package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
)

// ResumeRequest creates or replaces a stored resume. Data is any extraction
// payload; it is normalized before storage.
type ResumeRequest struct {
	Data        json.RawMessage `json:"data" validate:"required"`
	Standardize bool            `json:"standardize"`
}

// ListQuery bounds list endpoints
type ListQuery struct {
	Limit int `validate:"min=0,max=200"`
}

// NormalizeResponse is returned by the normalize and process endpoints
type NormalizeResponse struct {
	Record      types.ResumeRecord  `json:"record"`
	Diagnostics parsing.Diagnostics `json:"diagnostics"`
}

// ValidateResponse reports schema conformance of a canonical record
type ValidateResponse struct {
	Valid  bool         `json:"valid"`
	Errors []FieldIssue `json:"errors"`
}

// FieldIssue is one schema violation
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateStruct runs struct-tag validation and reports the first failure
func (s *Server) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return extractValidationErrors(err)
	}
	return nil
}

func extractValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// readBody reads the request body up to MaxBodyBytes
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "body", Message: "too large"}
		}
		return nil, &ErrValidation{Field: "body", Message: "unreadable"}
	}
	return body, nil
}

// normalizeBody decodes a JSON body and normalizes it. The payload may have
// any shape, but it must be well-formed JSON.
func normalizeBody(body []byte, standardize bool) (types.ResumeRecord, parsing.Diagnostics, error) {
	raw, err := parsing.DecodeJSON(body)
	if err != nil {
		return types.ResumeRecord{}, nil, &ErrValidation{Field: "body", Message: "must be valid JSON"}
	}
	record, diags := parsing.NormalizeWithOptions(raw, parsing.Options{StandardizeFormats: standardize})
	if diags == nil {
		diags = parsing.Diagnostics{}
	}
	return record, diags, nil
}

// recordFromRequest normalizes the request body into a canonical record
func recordFromRequest(w http.ResponseWriter, r *http.Request) (types.ResumeRecord, parsing.Diagnostics, error) {
	body, err := readBody(w, r)
	if err != nil {
		return types.ResumeRecord{}, nil, err
	}
	return normalizeBody(body, queryBool(r, "standardize"))
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

func parseListQuery(r *http.Request) (ListQuery, error) {
	var q ListQuery
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, &ErrValidation{Field: "limit", Message: "must be an integer"}
		}
		q.Limit = limit
	}
	return q, nil
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}
