package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Every frame is one JSON object per line; input lines are either JSON strings or raw text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// systemMessage is the JSON-Lines envelope of SystemOutput.
type systemMessage struct {
	System string `json:"system"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, frame Frame) error {
	return h.Encoder.Encode(frame)
}

// Input reads the next usable line. Lines that fail sanitization are reported
// as system messages and skipped.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return "", err
		}

		clean, err := SanitizeInput(decodeLine(strings.TrimSpace(text)))
		if err != nil {
			if err := h.SystemOutput(ctx, fmt.Sprintf("invalid input: %v", err)); err != nil {
				return "", err
			}
			continue
		}
		return clean, nil
	}
}

// decodeLine unquotes a JSON string; anything else is taken as plain text.
func decodeLine(text string) string {
	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val
	}
	return text
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(systemMessage{System: msg})
}
