package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/bdobrica/launchdock/internal/launchdock/index"
)

type iconSource struct {
	Name string `json:"Name,omitempty"`
}

type searchResult struct {
	ID          uint32      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        *iconSource `json:"icon,omitempty"`
}

type contextOption struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

type contextMenu struct {
	ID      uint32          `json:"id"`
	Options []contextOption `json:"options"`
}

// Writer is the shared response channel. It is safe for concurrent use;
// each response is written as one whole line.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

func (w *Writer) send(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// Append sends an Append response for p. It satisfies index.Emitter.
func (w *Writer) Append(ctx context.Context, p index.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := searchResult{ID: p.ID, Name: p.Name, Description: p.Description}
	if p.Icon != "" {
		res.Icon = &iconSource{Name: p.Icon}
	}
	return w.send(map[string]searchResult{"Append": res})
}

// Fill asks the launcher to replace the query with text.
func (w *Writer) Fill(text string) error {
	return w.send(map[string]string{"Fill": text})
}

// Context sends the context menu of result id.
func (w *Writer) Context(id uint32, opts []index.ContextOption) error {
	menu := contextMenu{ID: id, Options: make([]contextOption, len(opts))}
	for i, o := range opts {
		menu.Options[i] = contextOption{ID: o.ID, Name: o.Label}
	}
	return w.send(map[string]contextMenu{"Context": menu})
}

// Finished ends the response sequence of one query.
func (w *Writer) Finished() error {
	return w.send("Finished")
}

// Close asks the launcher to close its window.
func (w *Writer) Close() error {
	return w.send("Close")
}
