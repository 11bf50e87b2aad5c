package pattern

import (
	"strings"
	"sync"
	"testing"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

const (
	F = false
	T = true
)

// chartOf builds a chart from rows given top to bottom.
func chartOf(rows ...[]bool) *Chart {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	return &Chart{Width: width, Height: len(rows), Grid: Grid(rows)}
}

// runs expands left-to-right runs into cells.
func runs(tokens ...Token) []bool {
	var cells []bool
	for _, t := range tokens {
		for i := 0; i < t.Count; i++ {
			cells = append(cells, bool(t.Stitch))
		}
	}
	return cells
}

func mustEncoder(t *testing.T, c *Chart) *Encoder {
	t.Helper()
	enc, err := NewEncoderFromChart(c)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	return enc
}

func TestEncodeRowLiterals(t *testing.T) {
	tests := []struct {
		name  string
		cells []bool
		row   int // row number the cells are placed at
		want  string
	}{
		{"all knit", []bool{F, F, F, F, F}, 1, "k5"},
		{"odd row keeps scan order", []bool{T, T, T, F, F}, 1, "k2, p3"},
		{"even row reverses", []bool{T, T, T, F, F}, 2, "p3, k2"},
		{"wide purl", runs(Token{Purl, 124}), 1, "p124"},
		// k1, p1, k1, p1 is the even-row (reversed) reading of F T F T;
		// the same cells on an odd row read right to left from the purl.
		{"alternating even", []bool{F, T, F, T}, 2, "k1, p1, k1, p1"},
		{"alternating odd", []bool{F, T, F, T}, 1, "p1, k1, p1, k1"},
		{"width one odd", []bool{T}, 1, "p1"},
		{"width one even", []bool{F}, 2, "k1"},
		{"single run even", []bool{F, F, F}, 2, "k3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Place the row so that it becomes row tt.row counted from the bottom.
			rows := make([][]bool, tt.row)
			for i := range rows {
				rows[i] = make([]bool, len(tt.cells))
			}
			rows[0] = tt.cells
			enc := mustEncoder(t, chartOf(rows...))

			got, err := enc.EncodeRow(tt.row)
			if err != nil {
				t.Fatalf("EncodeRow(%d) error = %v", tt.row, err)
			}
			if got != tt.want {
				t.Errorf("EncodeRow(%d) = %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestEncodeRowSweaterChart(t *testing.T) {
	// Rows taken from a 124-stitch sweater chart. Cells are listed left to
	// right; odd rows read right to left, even rows left to right.
	row25 := runs(Token{Purl, 10}, Token{Knit, 20}, Token{Purl, 5}, Token{Knit, 79}, Token{Purl, 10})
	row26 := runs(Token{Purl, 10}, Token{Knit, 20}, Token{Purl, 4}, Token{Knit, 80}, Token{Purl, 10})

	enc := mustEncoder(t, chartOf(row26, row25))

	if got, _ := enc.EncodeRow(1); got != "p10, k79, p5, k20, p10" {
		t.Errorf("row 1 = %q", got)
	}
	if got, _ := enc.EncodeRow(2); got != "p10, k20, p4, k80, p10" {
		t.Errorf("row 2 = %q", got)
	}
}

func TestEncodeRowBounds(t *testing.T) {
	enc := mustEncoder(t, chartOf([]bool{F, T}, []bool{T, F}, []bool{F, F}))

	for _, row := range []int{0, -1, 4, 100} {
		_, err := enc.EncodeRow(row)
		if !errs.IsOutOfRange(err) {
			t.Errorf("EncodeRow(%d) error = %v, want OUT_OF_RANGE", row, err)
			continue
		}
		if !strings.Contains(err.Error(), "(1-3)") {
			t.Errorf("EncodeRow(%d) error %q should report bounds 1-3", row, err)
		}
	}
}

func TestEncodeRowZeroWidth(t *testing.T) {
	enc := mustEncoder(t, &Chart{Width: 0, Height: 2, Grid: Grid{{}, {}}})

	if _, err := enc.EncodeRow(1); !errs.IsShape(err) {
		t.Errorf("EncodeRow(1) error = %v, want SHAPE_ERROR", err)
	}
	if _, err := enc.EncodeAll(); !errs.IsShape(err) {
		t.Errorf("EncodeAll() error = %v, want SHAPE_ERROR", err)
	}
	// Range checks still come first.
	if _, err := enc.EncodeRow(3); !errs.IsOutOfRange(err) {
		t.Errorf("EncodeRow(3) error = %v, want OUT_OF_RANGE", err)
	}
}

func TestNewEncoderShape(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		grid   Grid
	}{
		{"too few rows", 2, 3, Grid{{F, F}, {F, F}}},
		{"too many rows", 2, 1, Grid{{F, F}, {F, F}}},
		{"short row", 3, 2, Grid{{F, F, F}, {F, F}}},
		{"long row", 1, 1, Grid{{F, T}}},
		{"negative width", -1, 0, Grid{}},
		{"negative height", 0, -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder(tt.width, tt.height, tt.grid)
			if !errs.IsShape(err) {
				t.Errorf("NewEncoder() error = %v, want SHAPE_ERROR", err)
			}
		})
	}
}

func TestEncodeAll(t *testing.T) {
	enc := mustEncoder(t, chartOf(
		[]bool{T, T, F, F}, // row 3
		[]bool{F, F, F, T}, // row 2
		[]bool{T, F, F, F}, // row 1
	))

	all, err := enc.EncodeAll()
	if err != nil {
		t.Fatalf("EncodeAll() error = %v", err)
	}
	want := []string{"k3, p1", "k3, p1", "k2, p2"}
	if len(all) != len(want) {
		t.Fatalf("EncodeAll() returned %d rows, want %d", len(all), len(want))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("EncodeAll()[%d] = %q, want %q", i, all[i], want[i])
		}
		single, _ := enc.EncodeRow(i + 1)
		if all[i] != single {
			t.Errorf("EncodeAll()[%d] = %q, EncodeRow(%d) = %q", i, all[i], i+1, single)
		}
	}
}

func TestEncodeAllEmpty(t *testing.T) {
	for _, c := range []*Chart{
		{Width: 0, Height: 0, Grid: Grid{}},
		{Width: 5, Height: 0, Grid: nil},
	} {
		enc := mustEncoder(t, c)
		all, err := enc.EncodeAll()
		if err != nil {
			t.Fatalf("EncodeAll() error = %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Errorf("EncodeAll() = %#v, want empty slice", all)
		}
	}
}

func TestEncoderCopiesGrid(t *testing.T) {
	grid := Grid{{F, F, F}}
	enc, err := NewEncoder(3, 1, grid)
	if err != nil {
		t.Fatal(err)
	}
	grid[0][0] = T

	if got, _ := enc.EncodeRow(1); got != "k3" {
		t.Errorf("EncodeRow(1) = %q after caller mutation, want k3", got)
	}

	cells, _ := enc.Row(1)
	cells[1] = T
	if got, _ := enc.EncodeRow(1); got != "k3" {
		t.Errorf("EncodeRow(1) = %q after mutating Row() result, want k3", got)
	}
}

// stripes returns a deterministic chart with varied runs.
func stripes(width, height int) *Chart {
	c := NewChart(width, height)
	for r := 0; r < height; r++ {
		for col := 0; col < width; col++ {
			c.Grid[r][col] = (col*7+r*3)%5 < 2 || (col/(r+1))%2 == 1
		}
	}
	return c
}

func TestEncodeProperties(t *testing.T) {
	c := stripes(37, 24)
	enc := mustEncoder(t, c)

	for row := 1; row <= c.Height; row++ {
		tokens, err := enc.Tokens(row)
		if err != nil {
			t.Fatalf("Tokens(%d) error = %v", row, err)
		}

		if total := Stats(tokens).Total(); total != c.Width {
			t.Errorf("row %d: counts sum to %d, want %d", row, total, c.Width)
		}
		for i := 1; i < len(tokens); i++ {
			if tokens[i].Stitch == tokens[i-1].Stitch {
				t.Errorf("row %d: tokens %d and %d share stitch %s", row, i-1, i, tokens[i].Stitch)
			}
		}

		cells, _ := enc.Row(row)
		expanded := Expand(row, tokens)
		if len(expanded) != len(cells) {
			t.Fatalf("row %d: Expand produced %d cells, want %d", row, len(expanded), len(cells))
		}
		for col := range cells {
			if expanded[col] != cells[col] {
				t.Errorf("row %d: Expand differs at column %d", row, col)
				break
			}
		}
	}
}

func TestEncodeParitySymmetry(t *testing.T) {
	cells := []bool{T, T, F, T, F, F, F, T}
	mirrored := make([]bool, len(cells))
	for i := range cells {
		mirrored[len(cells)-1-i] = cells[i]
	}

	// Row 1 (odd) and row 2 (even) hold the same cells; row 3 (odd) holds
	// them mirrored.
	enc := mustEncoder(t, chartOf(mirrored, cells, cells))

	odd, _ := enc.Tokens(1)
	even, _ := enc.Tokens(2)
	mirroredOdd, _ := enc.Tokens(3)

	if len(odd) != len(even) || len(odd) != len(mirroredOdd) {
		t.Fatalf("token counts differ: %d, %d, %d", len(odd), len(even), len(mirroredOdd))
	}
	for i := range odd {
		j := len(odd) - 1 - i
		if odd[i] != even[j] {
			t.Errorf("odd[%d] = %v, want reversed even[%d] = %v", i, odd[i], j, even[j])
		}
		if odd[i] != mirroredOdd[j] {
			t.Errorf("odd[%d] = %v, want reversed mirrored[%d] = %v", i, odd[i], j, mirroredOdd[j])
		}
	}
}

func TestEncoderConcurrentUse(t *testing.T) {
	c := stripes(64, 40)
	enc := mustEncoder(t, c)
	want, err := enc.EncodeAll()
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := 1; row <= c.Height; row++ {
				got, err := enc.EncodeRow(row)
				if err != nil || got != want[row-1] {
					t.Errorf("row %d = %q, %v", row, got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestChartSetIgnoresOutOfBounds(t *testing.T) {
	c := NewChart(2, 2)
	c.Set(-1, 0, true)
	c.Set(0, 2, true)
	c.Set(2, 0, true)
	c.Set(1, 1, true)

	knit, purl := c.Counts()
	if knit != 3 || purl != 1 {
		t.Errorf("Counts() = %d knit, %d purl, want 3, 1", knit, purl)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		width, height int
		ok            bool
	}{
		{0, 0, true},
		{124, 80, true},
		{2048, 2048, true},
		{MaxCells, 1, true},
		{MaxCells + 1, 1, false},
		{2049, 2048, false},
		{0, MaxCells + 1, false},
		{-1, 4, false},
		{1 << 40, 1 << 40, false},
	}
	for _, tt := range tests {
		err := CheckSize(tt.width, tt.height)
		if (err == nil) != tt.ok {
			t.Errorf("CheckSize(%d, %d) = %v, want ok=%v", tt.width, tt.height, err, tt.ok)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("CheckSize(%d, %d) code = %s, want INVALID_INPUT", tt.width, tt.height, errs.GetCode(err))
		}
	}
}
