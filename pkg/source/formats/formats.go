// Package formats provides the complete list of chart loaders.
//
// This package exists to break import cycles: the individual format packages
// (svg, raster, ...) import pkg/source, so pkg/source cannot import them back.
// Consumers that need the full list import this package instead.
//
// Usage:
//
//	l, err := formats.All.Detect("sweater.svg")
//	if err != nil {
//	    return err
//	}
//	chart, err := l.Load(ctx, f, source.DefaultOptions())
package formats

import (
	pkgio "github.com/matzehuels/stitchrow/pkg/io"
	"github.com/matzehuels/stitchrow/pkg/source"
	"github.com/matzehuels/stitchrow/pkg/source/raster"
	"github.com/matzehuels/stitchrow/pkg/source/svg"
	"github.com/matzehuels/stitchrow/pkg/source/text"
)

// All is the canonical list of chart loaders in detection order.
var All = source.Registry{
	svg.New(),
	raster.New(),
	pkgio.NewLoader(),
	text.New(),
}
