package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single frame; final_data carries the whole resume
const maxLineSize = 16 << 20

// ReadTerminal scans r for the first terminal event. Non-terminal events and
// lines that are not valid frames are skipped. A [DONE] marker or end of
// input without a terminal event yields ErrNoTerminalEvent.
func ReadTerminal(ctx context.Context, r io.Reader) (*Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		payload = strings.TrimSpace(payload)
		if payload == DoneMarker {
			return nil, ErrNoTerminalEvent
		}

		var ev Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			continue
		}
		if ev.IsTerminal() {
			return &ev, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoTerminalEvent
}
