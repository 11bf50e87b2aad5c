// Package pattern turns a two-color knitting chart into row-by-row
// instructions.
//
// # Overview
//
// A chart is a [Grid] of booleans: true cells are purl stitches and false
// cells are knit stitches. Row 0 of the grid is the top of the chart as it
// was drawn. Knitters count rows from the bottom, so callers address rows by
// a 1-based row number where row 1 is the bottom row and row height is the
// top row.
//
// Each row is written as alternating runs of the two stitch types:
//
//	p10, k79, p5, k20, p10
//
// # Reading Direction
//
// Every row is scanned from the rightmost column to the leftmost column and
// run-length encoded. Odd rows present the runs in that scan order. Even rows
// present them reversed, so that they read left to right across the chart.
// This mirrors how a flat piece is worked back and forth: the knitter turns
// the work at the end of every row.
//
// # Basic Usage
//
//	enc, err := pattern.NewEncoder(width, height, grid)
//	if err != nil {
//	    return err // shape mismatch
//	}
//	line, err := enc.EncodeRow(1) // bottom row
//	all, err := enc.EncodeAll()   // bottom row first
//
// # Errors
//
// Construction fails with an [errors.ErrCodeShape] error when the grid does
// not match its declared dimensions. Row lookups outside 1..height fail with
// [errors.ErrCodeOutOfRange]. Encoding a row of a zero-width chart is a
// shape error rather than an empty instruction.
//
// # Concurrency
//
// An [Encoder] copies its grid on construction and never mutates it, so a
// single Encoder may be shared by any number of goroutines.
//
// [errors.ErrCodeShape]: github.com/matzehuels/stitchrow/pkg/errors.ErrCodeShape
// [errors.ErrCodeOutOfRange]: github.com/matzehuels/stitchrow/pkg/errors.ErrCodeOutOfRange
package pattern
