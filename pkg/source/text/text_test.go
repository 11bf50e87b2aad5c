package text

import (
	"context"
	"strings"
	"testing"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source"
)

func TestLoad(t *testing.T) {
	doc := `; cable panel
..XX..

.x#p
1
`
	c, err := New().Load(context.Background(), strings.NewReader(doc), source.Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Width != 6 || c.Height != 3 {
		t.Fatalf("size = %dx%d, want 6x3", c.Width, c.Height)
	}

	want := "..XX..\n.XXX..\nX.....\n"
	if got := Format(c); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestLoadEncodes(t *testing.T) {
	c, err := New().Load(context.Background(), strings.NewReader("XXX..\nXXX..\n"), source.Options{})
	if err != nil {
		t.Fatal(err)
	}
	enc, err := pattern.NewEncoderFromChart(c)
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := enc.EncodeAll()
	if rows[0] != "k2, p3" || rows[1] != "p3, k2" {
		t.Errorf("EncodeAll() = %v", rows)
	}
}

func TestLoadEmpty(t *testing.T) {
	c, err := New().Load(context.Background(), strings.NewReader("; nothing here\n\n"), source.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 0 || c.Height != 0 {
		t.Errorf("size = %dx%d, want 0x0", c.Width, c.Height)
	}
}

func TestIsPurl(t *testing.T) {
	for _, ch := range "Xx#pP1" {
		if !IsPurl(ch) {
			t.Errorf("IsPurl(%q) = false", ch)
		}
	}
	for _, ch := range ".-k0 o" {
		if IsPurl(ch) {
			t.Errorf("IsPurl(%q) = true", ch)
		}
	}
}

func TestLoadRejectsHugeCharts(t *testing.T) {
	// One long line pads every short line to its width.
	doc := strings.Repeat("X", 3000) + "\n" + strings.Repeat(".\n", 2000)
	_, err := New().Load(context.Background(), strings.NewReader(doc), source.Options{})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Load() error = %v, want INVALID_INPUT", err)
	}
}
