// Package stream consumes the event stream published by the resume
// extraction service.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Event types carried on the stream
const (
	EventFinalData = "final_data"
	EventError     = "error"
)

// DoneMarker is the data payload that terminates a stream
const DoneMarker = "[DONE]"

// ErrNoTerminalEvent is returned when a stream ends without a final_data or
// error event.
var ErrNoTerminalEvent = errors.New("stream ended without a terminal event")

// Event is one decoded "data:" line
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// IsTerminal reports whether the event ends an upload attempt
func (e *Event) IsTerminal() bool {
	return e.Type == EventFinalData || e.Type == EventError
}

// Err returns the upstream failure carried by an error event, or nil
func (e *Event) Err() error {
	if e == nil || e.Type != EventError {
		return nil
	}
	return &UpstreamError{Message: e.Message}
}

// UpstreamError carries the extraction service's message verbatim
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// StatusError reports a non-success HTTP response from the extraction service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("extraction service returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError reports that the extraction service could not be reached
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("extraction service unreachable: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewFinalData builds a final_data event carrying payload
func NewFinalData(payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: EventFinalData, Data: data, Timestamp: timestamp()}, nil
}

// NewError builds an error event
func NewError(message string) Event {
	return Event{Type: EventError, Message: message, Timestamp: timestamp()}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Encode writes ev as a single "data:" frame
func Encode(w io.Writer, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}

// EncodeDone writes the stream terminator frame
func EncodeDone(w io.Writer) error {
	_, err := fmt.Fprintf(w, "data: %s\n\n", DoneMarker)
	return err
}
