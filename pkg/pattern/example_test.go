package pattern_test

import (
	"fmt"

	"github.com/matzehuels/stitchrow/pkg/pattern"
)

func ExampleEncoder_EncodeRow() {
	// Two rows of five stitches, top row first as drawn.
	grid := pattern.Grid{
		{true, true, true, false, false},
		{true, true, true, false, false},
	}

	enc, err := pattern.NewEncoder(5, 2, grid)
	if err != nil {
		panic(err)
	}

	row1, _ := enc.EncodeRow(1)
	row2, _ := enc.EncodeRow(2)
	fmt.Println("Row 1:", row1)
	fmt.Println("Row 2:", row2)
	// Output:
	// Row 1: k2, p3
	// Row 2: p3, k2
}

func ExampleEncoder_EncodeAll() {
	c := pattern.NewChart(4, 3)
	c.Set(0, 0, true) // top-left
	c.Set(2, 3, true) // bottom-right

	enc, _ := pattern.NewEncoderFromChart(c)
	rows, _ := enc.EncodeAll()
	for i, r := range rows {
		fmt.Printf("Row %d: %s\n", i+1, r)
	}
	// Output:
	// Row 1: p1, k3
	// Row 2: k4
	// Row 3: k3, p1
}

func ExampleEncoder_EncodeRow_outOfRange() {
	enc, _ := pattern.NewEncoder(1, 1, pattern.Grid{{false}})
	_, err := enc.EncodeRow(2)
	fmt.Println(err)
	// Output:
	// OUT_OF_RANGE: row 2 is out of bounds (1-1)
}

func ExampleParseInstruction() {
	tokens, _ := pattern.ParseInstruction("p10, k20, p4")
	fmt.Println(len(tokens), tokens[1].Stitch, tokens[1].Count)
	fmt.Println(pattern.Stats(tokens).Total())
	// Output:
	// 3 knit 20
	// 34
}
