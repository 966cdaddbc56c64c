package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/resume-formatter/internal/stream"
)

// SSEWriter writes event-stream frames in the extraction service's format
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the stream headers. It fails when w cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event frame
func (s *SSEWriter) WriteEvent(ev stream.Event) error {
	if err := stream.Encode(s.w, ev); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteFinalData sends a final_data event carrying payload
func (s *SSEWriter) WriteFinalData(payload any) error {
	ev, err := stream.NewFinalData(payload)
	if err != nil {
		return err
	}
	return s.WriteEvent(ev)
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(stream.NewError(message)) //nolint:errcheck
}

// WriteDone terminates the stream
func (s *SSEWriter) WriteDone() {
	if err := stream.EncodeDone(s.w); err == nil {
		s.flusher.Flush()
	}
}
