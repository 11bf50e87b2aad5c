package pattern

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

// Stitch is one of the two stitch types a chart distinguishes.
type Stitch bool

const (
	Knit Stitch = false
	Purl Stitch = true
)

// StitchOf converts a grid cell to its stitch type.
func StitchOf(cell bool) Stitch { return Stitch(cell) }

// Abbrev returns the pattern abbreviation, "k" or "p".
func (s Stitch) Abbrev() string {
	if s == Purl {
		return "p"
	}
	return "k"
}

// String returns the stitch name.
func (s Stitch) String() string {
	if s == Purl {
		return "purl"
	}
	return "knit"
}

// Token is a maximal run of one stitch type.
type Token struct {
	Stitch Stitch
	Count  int
}

// String renders the token as "k{count}" or "p{count}".
func (t Token) String() string {
	return t.Stitch.Abbrev() + strconv.Itoa(t.Count)
}

// separator joins tokens within a row instruction.
const separator = ", "

// FormatTokens joins tokens into a row instruction.
func FormatTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, separator)
}

// ParseInstruction parses a row instruction such as "k2, p3" into tokens.
// Whitespace around tokens is ignored and the prefixes are case-insensitive.
// Consecutive tokens of the same stitch are accepted as written; callers
// that care about maximal runs should use [Merge].
func ParseInstruction(s string) ([]Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty instruction")
	}
	fields := strings.Split(s, ",")
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) < 2 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid token %q", f)
		}
		var st Stitch
		switch f[0] {
		case 'k', 'K':
			st = Knit
		case 'p', 'P':
			st = Purl
		default:
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid stitch in token %q (want k or p)", f)
		}
		n, err := strconv.Atoi(f[1:])
		if err != nil || n < 1 || f[1] == '+' || f[1] == '0' {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid count in token %q", f)
		}
		tokens = append(tokens, Token{Stitch: st, Count: n})
	}
	return tokens, nil
}

// Merge collapses adjacent tokens of the same stitch type.
func Merge(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if n := len(out); n > 0 && out[n-1].Stitch == t.Stitch {
			out[n-1].Count += t.Count
			continue
		}
		out = append(out, t)
	}
	return out
}

// RowStats summarizes a row instruction.
type RowStats struct {
	Knit int // total knit stitches
	Purl int // total purl stitches
	Runs int // number of tokens
}

// Total returns the number of stitches in the row.
func (s RowStats) Total() int { return s.Knit + s.Purl }

// Stats tallies stitches per type across tokens.
func Stats(tokens []Token) RowStats {
	s := RowStats{Runs: len(tokens)}
	for _, t := range tokens {
		if t.Stitch == Purl {
			s.Purl += t.Count
		} else {
			s.Knit += t.Count
		}
	}
	return s
}
