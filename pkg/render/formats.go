package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func renderText(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range doc.Rows {
		fmt.Fprintf(&buf, "Row %3d: %s\n", r.Row, r.Instruction)
	}
	return buf.Bytes(), nil
}

func renderJSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func renderMarkdown(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("| Row | Instruction |\n")
	buf.WriteString("| ---: | --- |\n")
	for _, r := range doc.Rows {
		fmt.Fprintf(&buf, "| %d | %s |\n", r.Row, r.Instruction)
	}
	return buf.Bytes(), nil
}

// renderTable draws a bordered table. The caller decides whether the output
// terminal supports color; this renderer uses no colors so the bytes are
// stable.
func renderTable(doc Document) ([]byte, error) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Row", "Side", "Instruction", "K", "P")
	for _, r := range doc.Rows {
		t.Row(strconv.Itoa(r.Row), string(r.Side), r.Instruction, strconv.Itoa(r.Knit), strconv.Itoa(r.Purl))
	}
	return []byte(t.Render() + "\n"), nil
}
