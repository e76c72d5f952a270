package sse

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Action is what the caller should do with a classified line.
type Action int

const (
	// Skip ignores the line and keeps reading.
	Skip Action = iota
	// Yield hands Data to the consumer.
	Yield
	// Fail terminates the stream with Payload as the error frame.
	Fail
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case Yield:
		return "yield"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Outcome is the result of classifying one line.
type Outcome struct {
	Action Action

	// Data is the raw JSON of a data line. Set for Yield.
	Data []byte

	// Payload is the decoded error frame. Set for Fail.
	Payload map[string]any

	// Reason says why a line was skipped.
	Reason string
}

// FieldData is the only SSE field that carries frames.
const FieldData = "data"

// ErrorEvent is the "event" value that marks an error frame.
const ErrorEvent = "error"

// Classify decides what to do with a single raw line.
func Classify(line string) Outcome {
	line = strings.TrimSpace(line)
	if line == "" {
		return skip("blank line")
	}

	field, value, ok := strings.Cut(line, ":")
	if !ok {
		return skip("no field separator")
	}
	field = strings.TrimSpace(field)
	value = strings.TrimSpace(value)

	if field != FieldData {
		return skip("non-data field " + field)
	}
	if !gjson.Valid(value) {
		return skip("invalid JSON")
	}

	if ev := gjson.Get(value, "event"); ev.Type == gjson.String && strings.EqualFold(ev.Str, ErrorEvent) {
		var payload map[string]any
		if err := json.Unmarshal([]byte(value), &payload); err != nil {
			return skip("undecodable error frame")
		}
		return Outcome{Action: Fail, Payload: payload}
	}

	return Outcome{Action: Yield, Data: []byte(value)}
}

func skip(reason string) Outcome {
	return Outcome{Action: Skip, Reason: reason}
}
