package panels

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/supertrader/market"
	"github.com/rustyeddy/supertrader/tui/styles"
)

const axisWidth = 10 // "%8.2f │"

// ChartPanel draws the rolling price window as a line of points, newest on
// the right. The x axis counts seconds back from the latest price.
type ChartPanel struct {
	points   []market.Point
	interval time.Duration

	width  int
	height int
}

func NewChartPanel(interval time.Duration) *ChartPanel {
	return &ChartPanel{interval: interval}
}

func (p *ChartPanel) SetSeries(points []market.Point) { p.points = points }

func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *ChartPanel) View() string {
	var content string
	if len(p.points) == 0 {
		content = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("Waiting for the market to open...")
	} else {
		content = RenderSeries(p.points, p.width-4, p.height-4, p.interval)
	}

	panel := lipgloss.JoinVertical(lipgloss.Left, styles.RenderTitle("Price"), content)
	return styles.PanelStyle.Width(max(p.width-2, 0)).Height(max(p.height-2, 0)).Render(panel)
}

// RenderSeries plots points into a width x height character grid plus a
// price axis on the left and a time axis below.
func RenderSeries(points []market.Point, width, height int, interval time.Duration) string {
	if len(points) == 0 {
		return ""
	}

	plotWidth := width - axisWidth
	if plotWidth < 10 {
		plotWidth = 10
	}
	plotHeight := height - 2
	if plotHeight < 5 {
		plotHeight = 5
	}

	shown := points
	if len(shown) > plotWidth {
		shown = shown[len(shown)-plotWidth:]
	}

	lo, hi := shown[0].Price, shown[0].Price
	for _, pt := range shown {
		lo = math.Min(lo, pt.Price)
		hi = math.Max(hi, pt.Price)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	lo -= pad
	hi += pad

	rows := make([][]rune, plotHeight)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", len(shown)))
	}
	for x, pt := range shown {
		rows[priceToRow(pt.Price, lo, hi, plotHeight)][x] = '•'
	}

	var b strings.Builder
	for r := 0; r < plotHeight; r++ {
		label := hi - (hi-lo)*float64(r)/float64(plotHeight-1)
		b.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%8.2f │", label)))
		b.WriteString(styles.ChartLineStyle.Render(string(rows[r])))
		b.WriteString("\n")
	}

	b.WriteString(styles.ChartAxisStyle.Render("─────────┴" + strings.Repeat("─", len(shown))))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", axisWidth))
	b.WriteString(styles.ChartLabelStyle.Render(timeAxis(len(shown), interval)))
	return b.String()
}

func priceToRow(price, lo, hi float64, height int) int {
	if hi == lo {
		return height / 2
	}
	ratio := (hi - price) / (hi - lo)
	y := int(math.Round(ratio * float64(height-1)))
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return y
}

// timeAxis labels every tenth column with its age, e.g. "-4s", ending at "-0s".
func timeAxis(n int, interval time.Duration) string {
	line := []rune(strings.Repeat(" ", n))
	for x := n - 1; x >= 0; x -= 10 {
		age := time.Duration(n-1-x) * interval
		label := []rune(fmt.Sprintf("-%.0fs", age.Seconds()))
		start := x - len(label) + 1
		if start < 0 {
			break
		}
		copy(line[start:], label)
	}
	return string(line)
}
