// Package raster loads charts from bitmap images.
//
// Each cell of the chart is a CellSize×CellSize square of pixels; the pixel
// at the center of the square decides the stitch. A pixel within the
// palette's tolerance of the purl color is a purl stitch, anything else is a
// knit stitch. Transparent pixels are knit.
//
// PNG, GIF and JPEG are decoded with the standard library; BMP, TIFF and
// WebP come from golang.org/x/image.
package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source"
)

// MaxPixels caps the decoded image size. The header is checked before any
// pixel data is decoded.
const MaxPixels = 16 << 20

// Loader reads bitmap charts.
type Loader struct{}

// New returns a raster loader.
func New() *Loader { return &Loader{} }

func (*Loader) Name() string { return "raster" }

func (*Loader) Supports(filename string) bool {
	return source.HasExt(filename, ".png", ".gif", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp")
}

// Load decodes an image and samples one pixel per cell. Trailing pixels
// that do not fill a whole cell are dropped.
func (l *Loader) Load(ctx context.Context, r io.Reader, opts source.Options) (*pattern.Chart, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	purl, err := source.ParseHex(opts.Palette.Purl)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode image header")
	}
	if cfg.Width > MaxPixels || cfg.Height > MaxPixels || cfg.Width*cfg.Height > MaxPixels {
		return nil, errs.New(errs.ErrCodeInvalidInput, "image size %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}
	if err := pattern.CheckSize(cfg.Width/opts.CellSize, cfg.Height/opts.CellSize); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode image")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Sample(img, opts.CellSize, purl, opts.Palette.Tolerance)
}

// Sample converts img to a chart with cellSize pixels per cell edge.
func Sample(img image.Image, cellSize int, purl color.RGBA, tolerance int) (*pattern.Chart, error) {
	if cellSize < 1 {
		cellSize = 1
	}
	b := img.Bounds()
	if err := pattern.CheckSize(b.Dx()/cellSize, b.Dy()/cellSize); err != nil {
		return nil, err
	}
	c := pattern.NewChart(b.Dx()/cellSize, b.Dy()/cellSize)
	half := cellSize / 2
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			px := img.At(b.Min.X+col*cellSize+half, b.Min.Y+row*cellSize+half)
			c.Grid[row][col] = matches(px, purl, tolerance)
		}
	}
	return c, nil
}

// matches compares px against want channel by channel.
func matches(px color.Color, want color.RGBA, tolerance int) bool {
	n := color.NRGBAModel.Convert(px).(color.NRGBA)
	if n.A == 0 {
		return false
	}
	return within(n.R, want.R, tolerance) && within(n.G, want.G, tolerance) && within(n.B, want.B, tolerance)
}

func within(a, b uint8, tolerance int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
