package pattern

import (
	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// Grid holds chart cells indexed as grid[row][column], row 0 at the top and
// column 0 at the left. A true cell is a purl stitch.
type Grid [][]bool

// NewGrid returns a height×width grid of knit stitches.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for r := range g {
		g[r] = make([]bool, width)
	}
	return g
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]bool(nil), row...)
	}
	return out
}

// Chart is the hand-off from a loader to the encoder: a grid together with
// the dimensions the source document declared.
type Chart struct {
	Width  int
	Height int
	Grid   Grid
}

// MaxCells caps the number of cells a loader will allocate for one chart.
const MaxCells = 4 << 20

// CheckSize rejects declared chart sizes that are negative or exceed
// MaxCells. A zero dimension counts as one so that a tall zero-width chart
// is still bounded.
func CheckSize(width, height int) error {
	if width < 0 || height < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "negative chart size %dx%d", width, height)
	}
	w, h := max(width, 1), max(height, 1)
	if w > MaxCells || h > MaxCells || w*h > MaxCells {
		return errs.New(errs.ErrCodeInvalidInput, "chart size %dx%d exceeds %d cells", width, height, MaxCells)
	}
	return nil
}

// NewChart returns an all-knit chart of the given size.
func NewChart(width, height int) *Chart {
	return &Chart{Width: width, Height: height, Grid: NewGrid(width, height)}
}

// Set marks the cell at (row, col) as purl or knit. Coordinates outside the
// chart are ignored, matching how loaders treat out-of-bounds entries.
func (c *Chart) Set(row, col int, purl bool) {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
		return
	}
	c.Grid[row][col] = purl
}

// Validate checks that the grid matches the declared dimensions.
func (c *Chart) Validate() error {
	return validateShape(c.Width, c.Height, c.Grid)
}

// Counts returns the number of knit and purl cells in the chart.
func (c *Chart) Counts() (knit, purl int) {
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell {
				purl++
			} else {
				knit++
			}
		}
	}
	return knit, purl
}

func validateShape(width, height int, grid Grid) error {
	if width < 0 || height < 0 {
		return errs.New(errs.ErrCodeShape, "dimensions must be non-negative (got %dx%d)", width, height)
	}
	if len(grid) != height {
		return errs.New(errs.ErrCodeShape, "grid has %d rows, want %d", len(grid), height)
	}
	for r, row := range grid {
		if len(row) != width {
			return errs.New(errs.ErrCodeShape, "grid row %d has %d cells, want %d", r, len(row), width)
		}
	}
	return nil
}
