package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
)

// ProjectionTable renders a scrollable window over projection rows
type ProjectionTable struct {
	Rows          []domain.ProjectionRow
	Offset        int
	VisibleRows   int
	HighlightYear int
}

// NewProjectionTable creates a table showing up to visible rows at a time
func NewProjectionTable(rows []domain.ProjectionRow, visible int) *ProjectionTable {
	if visible < 1 {
		visible = 1
	}
	return &ProjectionTable{Rows: rows, VisibleRows: visible}
}

// ScrollDown moves the window one row, stopping at the last page
func (t *ProjectionTable) ScrollDown() {
	if t.Offset+t.VisibleRows < len(t.Rows) {
		t.Offset++
	}
}

// ScrollUp moves the window back one row
func (t *ProjectionTable) ScrollUp() {
	if t.Offset > 0 {
		t.Offset--
	}
}

const projectionTableHeader = "%-6s %-7s %12s %12s %12s %7s %12s  %s"

// Render returns the visible rows with a header
func (t *ProjectionTable) Render() string {
	if len(t.Rows) == 0 {
		return tuistyles.InfoStyle.Render("No projection rows")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf(projectionTableHeader,
		"Year", "Ages", "Home Value", "Mortgage", "Equity", "Factor", "Net Proceeds", "Status")))
	b.WriteString("\n")

	end := t.Offset + t.VisibleRows
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	for _, row := range t.Rows[t.Offset:end] {
		ages := fmt.Sprintf("%d", row.Age)
		if row.SpouseAge != nil {
			ages = fmt.Sprintf("%d/%d", row.Age, *row.SpouseAge)
		}
		line := fmt.Sprintf("%-6d %-7s %12s %12s %12s %7s %12s  ",
			row.Year, ages,
			tuistyles.FormatCurrency(row.HomeValue),
			tuistyles.FormatCurrency(row.RemainingMortgageBalance),
			tuistyles.FormatCurrency(row.HomeEquity),
			row.LendingLimitFactor.StringFixed(3),
			tuistyles.FormatCurrency(row.ReverseMortgageNetProceeds))

		style := tuistyles.TableCellStyle
		if row.Year == t.HighlightYear {
			style = tuistyles.TableHighlightStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString(tuistyles.StatusStyle(row.Status).Render(string(row.Status)))
		b.WriteString("\n")
	}

	if len(t.Rows) > t.VisibleRows {
		b.WriteString(tuistyles.TableMutedStyle.Render(
			fmt.Sprintf("rows %d-%d of %d", t.Offset+1, end, len(t.Rows))))
	}
	return b.String()
}
