package render

import (
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatTable    = "table"
)

// Formats lists the supported formats in display order.
var Formats = []string{FormatText, FormatJSON, FormatMarkdown, FormatTable}

// renderers maps each format to its implementation.
var renderers = map[string]func(Document) ([]byte, error){
	FormatText:     renderText,
	FormatJSON:     renderJSON,
	FormatMarkdown: renderMarkdown,
	FormatTable:    renderTable,
}

// Document is the structured form of a set of encoded rows.
type Document struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Rows   []Row `json:"rows"`
}

// Row is one encoded row.
type Row struct {
	Row         int          `json:"row"`
	Side        pattern.Side `json:"side"`
	Instruction string       `json:"instruction"`
	Tokens      []Token      `json:"tokens"`
	Knit        int          `json:"knit"`
	Purl        int          `json:"purl"`
}

// Token is the JSON form of a pattern.Token.
type Token struct {
	Stitch string `json:"stitch"`
	Count  int    `json:"count"`
}

// NewDocument encodes the selected rows of enc. A nil selection means every
// row, bottom first.
func NewDocument(enc *pattern.Encoder, rows []int) (Document, error) {
	if rows == nil {
		rows = pattern.AllRows(enc.Height())
	}
	doc := Document{
		Width:  enc.Width(),
		Height: enc.Height(),
		Rows:   make([]Row, 0, len(rows)),
	}
	for _, n := range rows {
		tokens, err := enc.Tokens(n)
		if err != nil {
			return Document{}, err
		}
		doc.Rows = append(doc.Rows, newRow(n, tokens))
	}
	return doc, nil
}

func newRow(n int, tokens []pattern.Token) Row {
	stats := pattern.Stats(tokens)
	r := Row{
		Row:         n,
		Side:        pattern.SideOf(n),
		Instruction: pattern.FormatTokens(tokens),
		Tokens:      make([]Token, len(tokens)),
		Knit:        stats.Knit,
		Purl:        stats.Purl,
	}
	for i, t := range tokens {
		r.Tokens[i] = Token{Stitch: t.Stitch.Abbrev(), Count: t.Count}
	}
	return r
}

// Render serializes doc in the named format.
func Render(format string, doc Document) ([]byte, error) {
	fn, ok := renderers[format]
	if !ok {
		return nil, invalidFormat(format)
	}
	return fn(doc)
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if _, ok := renderers[format]; !ok {
		return invalidFormat(format)
	}
	return nil
}

func invalidFormat(format string) error {
	return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}
