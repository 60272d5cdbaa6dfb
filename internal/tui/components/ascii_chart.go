package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hecmproj/internal/domain"
	"github.com/rgehrsitz/hecmproj/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// DataSeries is one plotted line
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
	Glyph  string
}

// ASCIIChart plots one or more series over projection years
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

var seriesGlyphs = []string{"●", "◆", "■", "▲"}

// AddSeries adds a line to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
		Glyph:  seriesGlyphs[len(c.Series)%len(seriesGlyphs)],
	})
	return c
}

// WithLabels sets the x-axis labels, one per point
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the plot area dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// ProjectionChart plots home value, forward mortgage balance and net proceeds by year
func ProjectionChart(result *domain.ProjectionResult, width, height int) *ASCIIChart {
	chart := NewASCIIChart("Projection by Year").WithSize(width, height)
	if result == nil || len(result.Rows) == 0 {
		return chart
	}

	n := len(result.Rows)
	home := make([]float64, n)
	balance := make([]float64, n)
	proceeds := make([]float64, n)
	labels := make([]string, n)
	for i, row := range result.Rows {
		home[i] = toFloat(row.HomeValue)
		balance[i] = toFloat(row.RemainingMortgageBalance)
		proceeds[i] = toFloat(row.ReverseMortgageNetProceeds)
		labels[i] = fmt.Sprintf("%d", row.Year)
	}

	chart.AddSeries("Home Value", home, tuistyles.ColorChartLine1)
	if result.Input.CurrentMortgageBalance.IsPositive() {
		chart.AddSeries("Mortgage Balance", balance, tuistyles.ColorChartLine2)
	}
	chart.AddSeries("Net Proceeds", proceeds, tuistyles.ColorChartLine3)
	return chart.WithLabels(labels)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Render returns the chart as text
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	b.WriteString(c.renderGrid(lo, hi))
	if labels := c.renderXAxisLabels(); labels != "" {
		b.WriteString("\n")
		b.WriteString(labels)
	}
	if c.ShowLegend && len(c.Series) > 1 {
		b.WriteString("\n\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

// bounds returns the plotted range; zero is always included
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// column maps a point index onto the plot width
func (c *ASCIIChart) column(i, n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(c.Width-1) / float64(n-1)))
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	height := c.Height
	if height < 2 {
		height = 2
	}
	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, c.Width)
		for col := range grid[r] {
			grid[r][col] = " "
		}
	}

	n := c.pointCount()
	for _, s := range c.Series {
		style := lipgloss.NewStyle().Foreground(s.Color)
		for i, p := range s.Points {
			row := height - 1 - int(math.Round((p-lo)/(hi-lo)*float64(height-1)))
			grid[row][c.column(i, n)] = style.Render(s.Glyph)
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	var b strings.Builder
	for r := 0; r < height; r++ {
		v := hi - (hi-lo)*float64(r)/float64(height-1)
		b.WriteString(axis.Render(fmt.Sprintf("%8s │", formatChartValue(v))))
		b.WriteString(strings.Join(grid[r], ""))
		b.WriteString("\n")
	}
	b.WriteString(axis.Render(strings.Repeat(" ", 9) + "└" + strings.Repeat("─", c.Width)))
	return b.String()
}

// renderXAxisLabels prints the first, middle and last labels
func (c *ASCIIChart) renderXAxisLabels() string {
	n := len(c.Labels)
	if n == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", c.Width+10))
	place := func(i int) {
		start := 10 + c.column(i, n)
		label := []rune(c.Labels[i])
		if start+len(label) > len(line) {
			start = len(line) - len(label)
		}
		copy(line[start:], label)
	}
	place(0)
	if n > 2 {
		place(n / 2)
	}
	if n > 1 {
		place(n - 1)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		style := lipgloss.NewStyle().Foreground(s.Color)
		items = append(items, style.Render(s.Glyph)+" "+s.Name)
	}
	return strings.Join(items, "   ")
}

func formatChartValue(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
