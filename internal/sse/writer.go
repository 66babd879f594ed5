// Package sse encodes a token stream as Server-Sent Events frames.
//
// Each frame is "data: <JSON>\n\n" where the JSON carries either a content
// fragment or an error message; a successful stream ends with the literal
// "data: [DONE]\n\n" frame. A Writer emits exactly one terminal frame per
// response regardless of how the stream ends.
package sse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// doneFrame terminates a successful stream.
const doneFrame = "data: [DONE]\n\n"

type contentPayload struct {
	Content string `json:"content"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Writer relays events to an HTTP response as SSE frames, in call order,
// flushing after every frame. Write failures (typically a disconnected
// client) are recorded and logged once; subsequent writes become no-ops so
// an abandoned response cannot crash the request handler.
//
// Writer is not safe for concurrent use; the streaming pipeline is
// strictly sequential by design.
type Writer struct {
	rw         http.ResponseWriter
	flusher    http.Flusher
	logger     *slog.Logger
	terminated bool
	writeErr   error
}

// NewWriter prepares w for event streaming and sets the stream headers.
// It fails if the underlying ResponseWriter cannot flush incrementally.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &Writer{
		rw:      w,
		flusher: flusher,
		logger:  slog.Default(),
	}, nil
}

// WriteContent emits one content frame. No-op after termination or a
// failed write.
func (w *Writer) WriteContent(text string) {
	if w.terminated || w.writeErr != nil {
		return
	}
	w.writeFrame(contentPayload{Content: text})
}

// WriteError emits an error frame and terminates the stream. The error
// frame itself is the terminal frame; no [DONE] follows it.
func (w *Writer) WriteError(message string) {
	if w.terminated {
		return
	}
	w.terminated = true
	if w.writeErr != nil {
		return
	}
	w.writeFrame(errorPayload{Error: message})
}

// WriteDone emits the [DONE] frame and terminates the stream. Calling it
// again, or after WriteError, is a no-op.
func (w *Writer) WriteDone() {
	if w.terminated {
		return
	}
	w.terminated = true
	if w.writeErr != nil {
		return
	}
	if _, err := fmt.Fprint(w.rw, doneFrame); err != nil {
		w.fail(err)
		return
	}
	w.flusher.Flush()
}

// Terminated reports whether a terminal frame has been emitted.
func (w *Writer) Terminated() bool {
	return w.terminated
}

// Err returns the first write error, if any. A non-nil value means the
// response was abandoned mid-stream.
func (w *Writer) Err() error {
	return w.writeErr
}

func (w *Writer) writeFrame(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.fail(err)
		return
	}
	if _, err := fmt.Fprintf(w.rw, "data: %s\n\n", data); err != nil {
		w.fail(err)
		return
	}
	w.flusher.Flush()
}

// fail records the first write error. The client is already gone, so the
// error is logged rather than surfaced.
func (w *Writer) fail(err error) {
	if w.writeErr != nil {
		return
	}
	w.writeErr = err
	w.logger.Warn("event stream write failed, response abandoned", "error", err)
}
