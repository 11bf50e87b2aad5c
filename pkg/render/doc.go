// Package render turns encoded chart rows into output documents.
//
// # Overview
//
// A [Document] is the structured form of a set of row instructions: for
// every selected row it carries the instruction string, the token list, the
// side of the fabric (RS for odd rows, WS for even rows) and stitch counts.
// Build one from an encoder with [NewDocument] and serialize it with
// [Render]:
//
//	doc, err := render.NewDocument(enc, nil) // nil selects every row
//	out, err := render.Render(render.FormatText, doc)
//
// # Formats
//
//   - text: one "Row %3d: instruction" line per row
//   - json: the Document itself, indented
//   - markdown: a two-column "| Row | Instruction |" table
//   - table: a bordered terminal table (lipgloss)
//
// Rows are emitted in the order they were selected; [NewDocument] with a nil
// selection lists them bottom first, the order they are knitted in.
package render
