// Package protocol speaks the launcher's line-delimited JSON protocol:
// requests arrive one per line on stdin, responses leave one per line on
// stdout. Enum variants are externally tagged, so unit variants are bare
// strings ("Interrupt") and the rest are single-key objects ({"Activate":3}).
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies a request variant.
type Kind int

const (
	KindSearch Kind = iota
	KindActivate
	KindActivateContext
	KindComplete
	KindContext
	KindInterrupt
	KindExit
	KindQuit
)

var kindNames = map[Kind]string{
	KindSearch:          "Search",
	KindActivate:        "Activate",
	KindActivateContext: "ActivateContext",
	KindComplete:        "Complete",
	KindContext:         "Context",
	KindInterrupt:       "Interrupt",
	KindExit:            "Exit",
	KindQuit:            "Quit",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Request is one decoded launcher request.
type Request struct {
	Kind Kind
	// Query is set for Search.
	Query string
	// ID is the result id for Activate, ActivateContext, Complete, Context and Quit.
	ID uint32
	// Context is the context id for ActivateContext.
	Context uint32
}

type activateContext struct {
	ID      uint32 `json:"id"`
	Context uint32 `json:"context"`
}

// DecodeRequest parses one request line.
func DecodeRequest(line []byte) (Request, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Request{}, fmt.Errorf("empty request")
	}

	if line[0] == '"' {
		var name string
		if err := json.Unmarshal(line, &name); err != nil {
			return Request{}, fmt.Errorf("decode request: %w", err)
		}
		switch name {
		case "Interrupt":
			return Request{Kind: KindInterrupt}, nil
		case "Exit":
			return Request{Kind: KindExit}, nil
		}
		return Request{}, fmt.Errorf("unknown request %q", name)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(line, &obj); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if len(obj) != 1 {
		return Request{}, fmt.Errorf("request must have exactly one variant, got %d", len(obj))
	}

	for name, raw := range obj {
		req, err := decodeVariant(name, raw)
		if err != nil {
			return Request{}, fmt.Errorf("decode %s: %w", name, err)
		}
		return req, nil
	}
	panic("unreachable")
}

func decodeVariant(name string, raw json.RawMessage) (Request, error) {
	switch name {
	case "Search":
		var q string
		err := json.Unmarshal(raw, &q)
		return Request{Kind: KindSearch, Query: q}, err
	case "Activate", "Complete", "Context", "Quit":
		var id uint32
		if err := json.Unmarshal(raw, &id); err != nil {
			return Request{}, err
		}
		kind := map[string]Kind{"Activate": KindActivate, "Complete": KindComplete, "Context": KindContext, "Quit": KindQuit}[name]
		return Request{Kind: kind, ID: id}, nil
	case "ActivateContext":
		var ac activateContext
		if err := json.Unmarshal(raw, &ac); err != nil {
			return Request{}, err
		}
		return Request{Kind: KindActivateContext, ID: ac.ID, Context: ac.Context}, nil
	case "Interrupt":
		return Request{Kind: KindInterrupt}, nil
	case "Exit":
		return Request{Kind: KindExit}, nil
	}
	return Request{}, fmt.Errorf("unknown request variant")
}
