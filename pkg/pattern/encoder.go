package pattern

import (
	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// Encoder produces row instructions for an immutable chart.
type Encoder struct {
	width  int
	height int
	grid   Grid
}

// NewEncoder validates the grid against width and height and returns an
// encoder that owns a private copy of it.
func NewEncoder(width, height int, grid Grid) (*Encoder, error) {
	if err := validateShape(width, height, grid); err != nil {
		return nil, err
	}
	return &Encoder{width: width, height: height, grid: grid.Clone()}, nil
}

// NewEncoderFromChart is shorthand for NewEncoder(c.Width, c.Height, c.Grid).
func NewEncoderFromChart(c *Chart) (*Encoder, error) {
	return NewEncoder(c.Width, c.Height, c.Grid)
}

// Width returns the number of stitches per row.
func (e *Encoder) Width() int { return e.width }

// Height returns the number of rows.
func (e *Encoder) Height() int { return e.height }

// EncodeRow returns the instruction for row (1 = bottom row).
func (e *Encoder) EncodeRow(row int) (string, error) {
	tokens, err := e.Tokens(row)
	if err != nil {
		return "", err
	}
	return FormatTokens(tokens), nil
}

// Tokens returns the run-length tokens of row in presentation order.
func (e *Encoder) Tokens(row int) ([]Token, error) {
	cells, err := e.cells(row)
	if err != nil {
		return nil, err
	}
	if e.width == 0 {
		return nil, errs.New(errs.ErrCodeShape, "cannot encode row %d of a zero-width chart", row)
	}

	tokens := scan(cells)
	if row%2 == 0 {
		reverse(tokens)
	}
	return tokens, nil
}

// EncodeAll returns the instructions for every row, bottom row first.
func (e *Encoder) EncodeAll() ([]string, error) {
	out := make([]string, 0, e.height)
	for row := 1; row <= e.height; row++ {
		line, err := e.EncodeRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// Row returns a copy of the cells of row, left to right.
func (e *Encoder) Row(row int) ([]bool, error) {
	cells, err := e.cells(row)
	if err != nil {
		return nil, err
	}
	return append([]bool(nil), cells...), nil
}

// cells resolves a row number to its storage row.
func (e *Encoder) cells(row int) ([]bool, error) {
	if row < 1 || row > e.height {
		return nil, errs.New(errs.ErrCodeOutOfRange, "row %d is out of bounds (1-%d)", row, e.height)
	}
	return e.grid[e.height-row], nil
}

// scan run-length encodes cells from the last column to the first.
func scan(cells []bool) []Token {
	var tokens []Token
	last := len(cells) - 1
	current, count := cells[last], 1
	for col := last - 1; col >= 0; col-- {
		if cells[col] == current {
			count++
			continue
		}
		tokens = append(tokens, Token{Stitch: StitchOf(current), Count: count})
		current, count = cells[col], 1
	}
	return append(tokens, Token{Stitch: StitchOf(current), Count: count})
}

func reverse(tokens []Token) {
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
}

// Expand turns the tokens of row back into cells, left to right. It is the
// inverse of [Encoder.Tokens] and is used to check hand-written instructions
// against a chart.
func Expand(row int, tokens []Token) []bool {
	ordered := append([]Token(nil), tokens...)
	if row%2 != 0 {
		// odd rows are presented right to left
		reverse(ordered)
	}
	var cells []bool
	for _, t := range ordered {
		for i := 0; i < t.Count; i++ {
			cells = append(cells, bool(t.Stitch))
		}
	}
	return cells
}
