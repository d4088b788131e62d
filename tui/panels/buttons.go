package panels

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rustyeddy/supertrader/sim"
	"github.com/rustyeddy/supertrader/tui/styles"
)

// Buttons renders the buy and sell buttons with their quotes. A button is
// greyed out while its trade is not allowed.
func Buttons(s sim.Snapshot) string {
	buy, sell := "Buy", "Sell"
	if s.HasPrice {
		buy = fmt.Sprintf("Buy %s", Money(s.Quote.Buy))
		sell = fmt.Sprintf("Sell %s", Money(s.Quote.Sell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		button("[b] "+buy, s.CanBuy),
		button("[s] "+sell, s.CanSell),
	)
}

func button(label string, enabled bool) string {
	if enabled {
		return styles.ButtonStyle.Render(label)
	}
	return styles.DisabledButtonStyle.Render(label)
}
