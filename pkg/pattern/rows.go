package pattern

import (
	"sort"
	"strconv"
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// Side names the face of the work a row is worked on.
type Side string

const (
	RightSide Side = "RS"
	WrongSide Side = "WS"
)

// SideOf returns RS for odd rows and WS for even rows.
func SideOf(row int) Side {
	if row%2 == 0 {
		return WrongSide
	}
	return RightSide
}

// ParseRowRange parses a row selection like "1-5,8,12-" against a chart of
// the given height. An open-ended range runs to the top row and "-4" runs
// from row 1. The result is sorted and free of duplicates. An empty
// selection means every row.
func ParseRowRange(s string, height int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AllRows(height), nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, err := parseSpan(part, height)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, errs.New(errs.ErrCodeInvalidInput, "row range %q is reversed", part)
		}
		if lo < 1 || hi > height {
			return nil, errs.New(errs.ErrCodeOutOfRange, "row range %q is out of bounds (1-%d)", part, height)
		}
		for r := lo; r <= hi; r++ {
			seen[r] = true
		}
	}

	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows, nil
}

func parseSpan(part string, height int) (lo, hi int, err error) {
	if part == "" {
		return 0, 0, errs.New(errs.ErrCodeInvalidInput, "empty row range")
	}
	from, to, isRange := strings.Cut(part, "-")
	if !isRange {
		n, err := parseRowNumber(part)
		return n, n, err
	}

	lo, hi = 1, height
	if from = strings.TrimSpace(from); from != "" {
		if lo, err = parseRowNumber(from); err != nil {
			return 0, 0, err
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if hi, err = parseRowNumber(to); err != nil {
			return 0, 0, err
		}
	}
	return lo, hi, nil
}

func parseRowNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid row number %q", s)
	}
	return n, nil
}

// AllRows returns 1..height.
func AllRows(height int) []int {
	rows := make([]int, height)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows
}
