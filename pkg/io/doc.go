// Package io provides JSON import and export for knitting charts.
//
// # Overview
//
// JSON is the one chart format stitchrow writes. It is meant for:
//
//   - Saving a chart decoded from an SVG or image so it can be edited by hand
//   - Exchanging charts with other tools
//   - Caching loaded charts between runs
//
// # JSON Format
//
//	{
//	  "width": 6,
//	  "height": 3,
//	  "rows": [
//	    "..XX..",
//	    ".XXXX.",
//	    "..XX.."
//	  ]
//	}
//
// Rows are listed top row first, exactly as the chart is drawn. An "X" cell
// is a purl stitch; any other character is a knit stitch.
//
// # Import
//
// Use [ImportJSON] to read a chart from a file path, or [ReadJSON] to read
// from any io.Reader. Unlike the lenient SVG and raster loaders, the JSON
// reader is strict about shape: the number of rows must equal height and
// every row must be exactly width cells long, otherwise a SHAPE_ERROR is
// returned.
//
// # Export
//
// Use [ExportJSON] to write a chart to a file, or [WriteJSON] to write to
// any io.Writer. Export followed by import reproduces the chart exactly.
//
// # Loader
//
// [Loader] adapts the reader to the source.Loader interface so JSON charts
// can be detected by file extension like every other format.
package io
