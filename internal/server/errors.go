package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/stream"
)

// ErrStorageDisabled is returned by resume endpoints when no database is configured
var ErrStorageDisabled = errors.New("resume storage is not configured")

// ErrFeatureDisabled is returned when an optional collaborator (PDF, extraction) is not configured
var ErrFeatureDisabled = errors.New("feature is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var valErr *ErrValidation
	var upstreamErr *stream.UpstreamError
	var statusErr *stream.StatusError
	var transportErr *stream.TransportError

	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrStorageDisabled), errors.Is(err, ErrFeatureDisabled):
		return http.StatusNotImplemented
	case errors.As(err, &upstreamErr), errors.As(err, &statusErr), errors.As(err, &transportErr),
		errors.Is(err, stream.ErrNoTerminalEvent):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the text safe to show a client for err. Upstream
// messages pass through verbatim; unexpected failures are not described.
func publicMessage(err error) string {
	var genErr *export.GenerationError
	var upstreamErr *stream.UpstreamError
	var transportErr *stream.TransportError

	switch {
	case errors.As(err, &genErr):
		return export.GenerationMessage
	case errors.As(err, &transportErr):
		return "extraction service unreachable"
	case errors.As(err, &upstreamErr):
		return upstreamErr.Message
	case HTTPStatus(err) == http.StatusInternalServerError:
		return "internal server error"
	}
	return err.Error()
}
