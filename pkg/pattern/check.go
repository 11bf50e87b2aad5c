package pattern

import (
	"fmt"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// Mismatch describes where a written instruction departs from the chart.
type Mismatch struct {
	Row int
	// Stitch is the 1-based position, in working order, of the first wrong
	// stitch. It is zero when only the stitch totals differ.
	Stitch int
	Want   Stitch
	Got    Stitch
	// WantTotal and GotTotal are the stitch counts of the row and of the
	// instruction.
	WantTotal int
	GotTotal  int
}

func (m *Mismatch) String() string {
	if m.Stitch == 0 {
		return fmt.Sprintf("row %d: instruction covers %d stitches, chart row has %d", m.Row, m.GotTotal, m.WantTotal)
	}
	return fmt.Sprintf("row %d, stitch %d: chart says %s, instruction says %s", m.Row, m.Stitch, m.Want, m.Got)
}

// Check compares a hand-written instruction against row. It returns nil
// when the instruction knits the row exactly. Stitches are counted in the
// order the row is worked, so stitch 1 is the first stitch of the
// instruction.
func (e *Encoder) Check(row int, instruction string) (*Mismatch, error) {
	cells, err := e.cells(row)
	if err != nil {
		return nil, err
	}
	if e.width == 0 {
		return nil, errs.New(errs.ErrCodeShape, "cannot check row %d of a zero-width chart", row)
	}
	tokens, err := ParseInstruction(instruction)
	if err != nil {
		return nil, err
	}

	got := Expand(row, tokens)
	width := len(cells)
	for i := 1; i <= min(width, len(got)); i++ {
		col := i - 1
		if row%2 != 0 {
			col = width - i
		}
		// got is left to right; an odd row is worked from the right edge
		gotCol := col
		if row%2 != 0 {
			gotCol = len(got) - i
		}
		if cells[col] != got[gotCol] {
			return &Mismatch{
				Row:       row,
				Stitch:    i,
				Want:      StitchOf(cells[col]),
				Got:       StitchOf(got[gotCol]),
				WantTotal: width,
				GotTotal:  len(got),
			}, nil
		}
	}
	if len(got) != width {
		return &Mismatch{Row: row, WantTotal: width, GotTotal: len(got)}, nil
	}
	return nil, nil
}
