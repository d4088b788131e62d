package panels

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/supertrader/portfolio"
	"github.com/rustyeddy/supertrader/sim"
	"github.com/rustyeddy/supertrader/tui/styles"
)

// StatsPanel shows the player's holdings and performance.
type StatsPanel struct {
	snap   sim.Snapshot
	width  int
	height int
}

func NewStatsPanel() *StatsPanel { return &StatsPanel{} }

func (p *StatsPanel) SetSnapshot(s sim.Snapshot) { p.snap = s }

func (p *StatsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *StatsPanel) View() string {
	s := p.snap

	profitStyle := styles.FlatStyle
	switch {
	case s.NetWorth > s.InitialCash:
		profitStyle = styles.AheadStyle
	case s.NetWorth < s.InitialCash:
		profitStyle = styles.BehindStyle
	}

	roi := "n/a"
	if s.ROIAvailable {
		roi = decimal.NewFromFloat(s.ROIPerMinute).StringFixed(2) + "%"
	}

	rows := []string{
		row("Cash", styles.ValueStyle.Render(Money(s.Cash))),
		row("Shares", styles.ValueStyle.Render(fmt.Sprintf("%d", s.Shares))),
		row("Worth", StandingStyle(s.Standing).Render(Money(s.NetWorth))),
		row("Total profit", profitStyle.Render(Money(s.TotalProfit))),
		row("ROI per minute", styles.ValueStyle.Render(roi)),
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	panel := lipgloss.JoinVertical(lipgloss.Left, styles.RenderTitle("Portfolio"), body)
	return styles.PanelStyle.Width(max(p.width-2, 0)).Render(panel)
}

func row(label, value string) string {
	return styles.LabelStyle.Render(fmt.Sprintf("%-15s", label)) + value
}

// StandingStyle colours net worth against the reference worth.
func StandingStyle(s portfolio.Standing) lipgloss.Style {
	switch s {
	case portfolio.Ahead:
		return styles.AheadStyle
	case portfolio.Behind:
		return styles.BehindStyle
	default:
		return styles.FlatStyle
	}
}

// Money formats a currency amount with two decimals.
func Money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}
