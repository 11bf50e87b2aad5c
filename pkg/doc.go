// Package pkg provides the core libraries for stitchrow.
//
// # Overview
//
// stitchrow turns a two-color knitting chart into the written instructions a
// knitter follows, one row at a time ("k2, p3, k4"). The pkg directory is
// organized into these areas:
//
//  1. [pattern] - Domain logic (chart grid, row encoder, instruction tokens)
//  2. [source] - Chart loaders (SVG, bitmap, plain text) and [io] (JSON)
//  3. [render] - Output formats for encoded rows
//  4. [pipeline] - Orchestration (load → encode → render) with caching
//  5. Infrastructure: [cache], [config], [session], [remote], [server],
//     [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	chart file or URL (.svg, .png, .txt, .json)
//	         ↓
//	    [source] loaders (color matching → grid)
//	         ↓
//	    [pattern] encoder (grid → rows of tokens)
//	         ↓
//	    [render] (text, json, markdown, table)
//
// # Quick Start
//
//	grid := pattern.Grid{
//	    {false, false, true, true, true},
//	    {false, false, false, false, false},
//	}
//	enc, err := pattern.NewEncoder(5, 2, grid)
//	if err != nil {
//	    return err
//	}
//	row, _ := enc.EncodeRow(1) // "k5"
//	row, _ = enc.EncodeRow(2)  // "k2, p3"
//
// Rows are numbered from the bottom of the chart. Odd rows are worked right
// to left, even rows left to right.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/pattern/...  # Specific package
//	go test -run Example       # Examples only
package pkg
