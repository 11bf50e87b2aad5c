package pattern

import (
	"testing"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

func TestCheck(t *testing.T) {
	// Row 2 (top, even) is worked left to right, row 1 (bottom, odd) right to left.
	enc := mustEncoder(t, chartOf(
		[]bool{T, T, F, F},
		[]bool{F, T, F, T},
	))

	tests := []struct {
		name        string
		row         int
		instruction string
		want        *Mismatch
	}{
		{"odd row exact", 1, "p1, k1, p1, k1", nil},
		{"even row exact", 2, "p2, k2", nil},
		{"odd row wrong stitch", 1, "p2, k2", &Mismatch{Row: 1, Stitch: 2, Want: Knit, Got: Purl, WantTotal: 4, GotTotal: 4}},
		{"even row wrong first", 2, "k2, p2", &Mismatch{Row: 2, Stitch: 1, Want: Purl, Got: Knit, WantTotal: 4, GotTotal: 4}},
		{"too short", 1, "p1, k1, p1", &Mismatch{Row: 1, WantTotal: 4, GotTotal: 3}},
		{"too long", 2, "p2, k3", &Mismatch{Row: 2, WantTotal: 4, GotTotal: 5}},
		{"unmerged runs still match", 2, "p1, p1, k2", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Check(tt.row, tt.instruction)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("Check() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	enc := mustEncoder(t, chartOf([]bool{F, T}))

	if _, err := enc.Check(2, "k2"); !errs.IsOutOfRange(err) {
		t.Errorf("Check(2) error = %v, want OUT_OF_RANGE", err)
	}
	if _, err := enc.Check(1, "knit two"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Check(bad instruction) error = %v, want INVALID_INPUT", err)
	}

	empty, err := NewEncoder(0, 1, Grid{{}})
	if err != nil {
		t.Fatal(err)
	}
	for _, instruction := range []string{"k1", "not an instruction"} {
		if m, err := empty.Check(1, instruction); !errs.IsShape(err) || m != nil {
			t.Errorf("zero-width Check(1, %q) = %v, %v, want SHAPE_ERROR", instruction, m, err)
		}
	}
	if _, err := empty.Check(2, "k1"); !errs.IsOutOfRange(err) {
		t.Errorf("zero-width Check(2) error = %v, want OUT_OF_RANGE", err)
	}
}

func TestMismatchString(t *testing.T) {
	m := &Mismatch{Row: 3, Stitch: 5, Want: Knit, Got: Purl, WantTotal: 10, GotTotal: 10}
	if got, want := m.String(), "row 3, stitch 5: chart says knit, instruction says purl"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	m = &Mismatch{Row: 3, WantTotal: 10, GotTotal: 9}
	if got, want := m.String(), "row 3: instruction covers 9 stitches, chart row has 10"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
