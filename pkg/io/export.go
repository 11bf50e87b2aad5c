package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stitchrow/pkg/pattern"
)

// WriteJSON encodes a chart as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(c *pattern.Chart, w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	out := chart{
		Width:  c.Width,
		Height: c.Height,
		Rows:   make([]string, len(c.Grid)),
	}
	for r, row := range c.Grid {
		cells := make([]byte, len(row))
		for i, purl := range row {
			if purl {
				cells[i] = purlCell
			} else {
				cells[i] = knitCell
			}
		}
		out.Rows[r] = string(cells)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the JSON encoding of c.
func MarshalJSON(c *pattern.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a chart to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(c *pattern.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
