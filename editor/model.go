package editor

import (
	"encoding/json"
	"fmt"
)

// BlockData carries the payload of a single block. Fields are a union over
// the built-in block types, renderers pick what they need.
type BlockData struct {
	Text  string   `json:"text,omitempty"`
	Level int      `json:"level,omitempty"`
	Style string   `json:"style,omitempty"`
	Items []string `json:"items,omitempty"`
}

// BlockRecord is the persisted form of one block: its type, payload and the
// per-tune values keyed by tune name.
type BlockRecord struct {
	ID    string            `json:"id,omitempty"`
	Type  string            `json:"type"`
	Data  BlockData         `json:"data"`
	Tunes map[string]string `json:"tunes,omitempty"`
}

// Document is the persisted form of an editor session.
type Document struct {
	ID     string        `json:"id,omitempty"`
	Title  string        `json:"title,omitempty"`
	Blocks []BlockRecord `json:"blocks"`
}

// ParseDocument reads a document from its JSON form.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse document JSON: %w", err)
	}
	return &doc, nil
}
