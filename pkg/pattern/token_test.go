package pattern

import (
	"testing"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Knit, 1}, "k1"},
		{Token{Purl, 3}, "p3"},
		{Token{Knit, 124}, "k124"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("Token%v.String() = %q, want %q", tt.tok, got, tt.want)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	if got := FormatTokens([]Token{{Knit, 2}, {Purl, 3}}); got != "k2, p3" {
		t.Errorf("FormatTokens() = %q, want %q", got, "k2, p3")
	}
	if got := FormatTokens([]Token{{Purl, 5}}); got != "p5" {
		t.Errorf("FormatTokens() = %q, want %q", got, "p5")
	}
}

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Token
		wantErr bool
	}{
		{"single", "k5", []Token{{Knit, 5}}, false},
		{"pair", "k2, p3", []Token{{Knit, 2}, {Purl, 3}}, false},
		{"loose spacing", " P10 ,k79,p5 ", []Token{{Purl, 10}, {Knit, 79}, {Purl, 5}}, false},
		{"repeated stitch", "k1, k2", []Token{{Knit, 1}, {Knit, 2}}, false},

		{"empty", "", nil, true},
		{"no count", "k", nil, true},
		{"zero count", "k0", nil, true},
		{"leading zero", "p05", nil, true},
		{"signed count", "k+2", nil, true},
		{"negative count", "k-2", nil, true},
		{"unknown stitch", "s2", nil, true},
		{"trailing comma", "k2,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstruction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInstruction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errs.Is(err, errs.ErrCodeInvalidInput) {
					t.Errorf("ParseInstruction(%q) error code = %s", tt.input, errs.GetCode(err))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseInstruction(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseInstructionRoundTrip(t *testing.T) {
	enc := mustEncoder(t, stripes(29, 9))
	for row := 1; row <= enc.Height(); row++ {
		line, _ := enc.EncodeRow(row)
		tokens, err := ParseInstruction(line)
		if err != nil {
			t.Fatalf("ParseInstruction(%q) error = %v", line, err)
		}
		if got := FormatTokens(tokens); got != line {
			t.Errorf("round trip = %q, want %q", got, line)
		}
	}
}

func TestMerge(t *testing.T) {
	got := Merge([]Token{{Knit, 1}, {Knit, 2}, {Purl, 1}, {Purl, 1}, {Knit, 4}})
	want := []Token{{Knit, 3}, {Purl, 2}, {Knit, 4}}
	if FormatTokens(got) != FormatTokens(want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
	if len(Merge(nil)) != 0 {
		t.Error("Merge(nil) should be empty")
	}
}

func TestStats(t *testing.T) {
	s := Stats([]Token{{Purl, 10}, {Knit, 79}, {Purl, 5}})
	if s.Knit != 79 || s.Purl != 15 || s.Runs != 3 || s.Total() != 94 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestStitch(t *testing.T) {
	if StitchOf(true) != Purl || StitchOf(false) != Knit {
		t.Error("StitchOf maps true to purl and false to knit")
	}
	if Purl.Abbrev() != "p" || Knit.Abbrev() != "k" {
		t.Error("unexpected abbreviations")
	}
	if Purl.String() != "purl" || Knit.String() != "knit" {
		t.Error("unexpected names")
	}
}
