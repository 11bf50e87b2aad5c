package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchrow/pkg/cache"
	errs "github.com/matzehuels/stitchrow/pkg/errors"
	pkgio "github.com/matzehuels/stitchrow/pkg/io"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/render"
	"github.com/matzehuels/stitchrow/pkg/session"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDoneStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Stitch glyphs for the row preview.
const (
	glyphKnit = "□"
	glyphPurl = "■"
)

// browseCommand creates the browse command, an interactive row tracker.
func (c *CLI) browseCommand() *cobra.Command {
	var flags sourceFlags
	var start int
	var noSave bool

	cmd := &cobra.Command{
		Use:   "browse <chart>",
		Short: "Step through a chart row by row while knitting",
		Long: `Step through a chart row by row while knitting.

Keys:
  ↑/k  next row up        ↓/j  previous row
  ⏎/n  finish row         g/G  first/last row
  q    quit and save progress

Progress is saved per chart. Running browse again on the same chart resumes
where you stopped unless --start is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := c.loadChart(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			enc, err := pattern.NewEncoderFromChart(chart)
			if err != nil {
				return err
			}
			doc, err := render.NewDocument(enc, nil)
			if err != nil {
				return err
			}
			if len(doc.Rows) == 0 {
				return errs.New(errs.ErrCodeInvalidInput, "chart has no rows")
			}

			id, err := chartID(chart)
			if err != nil {
				return err
			}
			store, err := openProgressStore()
			if err != nil {
				return err
			}
			sess, err := store.Get(cmd.Context(), id)
			if err != nil {
				loggerFromContext(cmd.Context()).Warn("ignoring saved progress", "error", err)
				sess = nil
			}
			if sess == nil {
				sess = session.New(id, filepath.Base(args[0]), session.DefaultTTL)
			} else if !cmd.Flags().Changed("start") {
				start = max(1, min(sess.Row, len(doc.Rows)))
			}

			m, err := newRowTrackerModel(enc, doc, start)
			if err != nil {
				return err
			}
			m = m.resume(sess.Done)

			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			tm, ok := final.(rowTrackerModel)
			if !ok {
				return nil
			}
			printInfo("Stopped at row %d of %d", tm.Row(), tm.Height())
			if noSave {
				printNextStep("Resume", fmt.Sprintf("stitchrow browse %s --start %d", args[0], tm.Row()))
				return nil
			}
			sess.Advance(tm.Row(), tm.Done())
			if err := store.Set(cmd.Context(), sess); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidPath, err, "save progress")
			}
			printDetail("Progress saved; run browse again to resume")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&start, "start", 1, "row to start on (default: saved progress)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not save progress on quit")

	return cmd
}

// =============================================================================
// rowTrackerModel - Interactive row tracker
// =============================================================================

// rowTrackerModel is the bubbletea model for stepping through a chart.
// Cursor indexes doc.Rows, which run bottom row first.
type rowTrackerModel struct {
	enc    *pattern.Encoder
	doc    render.Document
	cursor int
	done   int // number of finished rows, counted from the bottom
	height int // visible table rows
}

func newRowTrackerModel(enc *pattern.Encoder, doc render.Document, start int) (rowTrackerModel, error) {
	if start < 1 || start > len(doc.Rows) {
		return rowTrackerModel{}, errs.New(errs.ErrCodeOutOfRange, "row %d is out of bounds (1-%d)", start, len(doc.Rows))
	}
	return rowTrackerModel{
		enc:    enc,
		doc:    doc,
		cursor: start - 1,
		done:   start - 1,
		height: 15,
	}, nil
}

// chartID identifies a chart by its contents for saved progress.
func chartID(chart *pattern.Chart) (string, error) {
	data, err := pkgio.MarshalJSON(chart)
	if err != nil {
		return "", err
	}
	return cache.Hash(data)[:32], nil
}

// resume marks rows below done as already finished.
func (m rowTrackerModel) resume(done int) rowTrackerModel {
	m.done = max(m.done, min(done, len(m.doc.Rows)))
	return m
}

// Row returns the current 1-based row number.
func (m rowTrackerModel) Row() int { return m.doc.Rows[m.cursor].Row }

// Done returns the number of finished rows.
func (m rowTrackerModel) Done() int { return m.done }

// Height returns the number of rows in the chart.
func (m rowTrackerModel) Height() int { return len(m.doc.Rows) }

func (m rowTrackerModel) Init() tea.Cmd {
	return nil
}

func (m rowTrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor < len(m.doc.Rows)-1 {
				m.cursor++
			}
		case "down", "j":
			if m.cursor > 0 {
				m.cursor--
			}
		case "g":
			m.cursor = 0
		case "G":
			m.cursor = len(m.doc.Rows) - 1
		case "enter", "n":
			m.done = max(m.done, m.cursor+1)
			if m.cursor < len(m.doc.Rows)-1 {
				m.cursor++
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// window returns the slice bounds of doc.Rows shown in the table, keeping
// the cursor roughly centered.
func (m rowTrackerModel) window() (lo, hi int) {
	n := len(m.doc.Rows)
	lo = max(m.cursor-m.height/2, 0)
	hi = min(lo+m.height, n)
	lo = max(hi-m.height, 0)
	return lo, hi
}

func (m rowTrackerModel) View() string {
	var b strings.Builder

	current := m.doc.Rows[m.cursor]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Row %d", current.Row)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %d knit · %d purl", current.Side, current.Knit, current.Purl)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ finish row  q quit"))
	b.WriteString("\n\n")
	b.WriteString(StyleValue.Render(current.Instruction))
	b.WriteString("\n")
	b.WriteString(m.preview(current.Row))
	b.WriteString("\n\n")

	// Top row first, the way the chart is drawn.
	lo, hi := m.window()
	var rows [][]string
	var index []int
	for i := hi - 1; i >= lo; i-- {
		r := m.doc.Rows[i]
		marker := "  "
		if i == m.cursor {
			marker = "▸ "
		} else if i < m.done {
			marker = iconSuccess + " "
		}
		rows = append(rows, []string{marker, strconv.Itoa(r.Row), string(r.Side), r.Instruction})
		index = append(index, i)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Row", "Side", "Instruction").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(index) {
				return lipgloss.NewStyle()
			}
			switch i := index[row]; {
			case i == m.cursor:
				return listSelectedStyle
			case i < m.done:
				return listDoneStyle
			default:
				return listDimStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d done", current.Row, len(m.doc.Rows), m.done)))

	return b.String()
}

// preview draws the row's stitches in working order.
func (m rowTrackerModel) preview(row int) string {
	cells, err := m.enc.Row(row)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for i := range cells {
		// Odd rows are worked from the right edge.
		cell := cells[i]
		if row%2 != 0 {
			cell = cells[len(cells)-1-i]
		}
		if cell {
			b.WriteString(glyphPurl)
		} else {
			b.WriteString(glyphKnit)
		}
	}
	return b.String()
}
