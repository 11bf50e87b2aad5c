package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stitchrow/pkg/session"
	"github.com/matzehuels/stitchrow/pkg/source"
	"github.com/matzehuels/stitchrow/pkg/source/text"
)

func testChartID(t *testing.T) string {
	t.Helper()
	chart, err := text.New().Load(context.Background(), strings.NewReader(testChart), source.Options{})
	if err != nil {
		t.Fatal(err)
	}
	id, err := chartID(chart)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestProgressCommands(t *testing.T) {
	isolate(t)
	chart := writeChart(t, "chart.txt", testChart)
	ctx := context.Background()

	res, err := runCLI(t, "progress", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.status, "No saved progress") {
		t.Errorf("empty list status = %q", res.status)
	}

	store, err := session.NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	id := testChartID(t)
	sess := session.New(id, "chart.txt", time.Hour)
	sess.Advance(2, 1)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	res, err = runCLI(t, "progress", "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"chart.txt", "row 2", "1 done"} {
		if !strings.Contains(res.status, want) {
			t.Errorf("list status missing %q: %q", want, res.status)
		}
	}

	if _, err := runCLI(t, "progress", "reset", chart); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, id); got != nil {
		t.Error("reset should delete the saved progress")
	}

	if _, err := runCLI(t, "progress", "prune"); err != nil {
		t.Fatal(err)
	}
}

func TestChartIDStable(t *testing.T) {
	a, b := testChartID(t), testChartID(t)
	if a != b || len(a) != 32 {
		t.Errorf("chartID() = %q, %q", a, b)
	}
}
