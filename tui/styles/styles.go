package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	AccentColor  = lipgloss.Color("#F59E0B") // Amber

	// Standing colors
	AheadColor  = lipgloss.Color("#10B981") // Green
	BehindColor = lipgloss.Color("#EF4444") // Red
	FlatColor   = lipgloss.Color("#F9FAFB")

	BackgroundColor = lipgloss.Color("#1F2937")
	BorderColor     = lipgloss.Color("#374151")

	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)

// Value colouring
var (
	AheadStyle  = lipgloss.NewStyle().Bold(true).Foreground(AheadColor)
	BehindStyle = lipgloss.NewStyle().Bold(true).Foreground(BehindColor)
	FlatStyle   = lipgloss.NewStyle().Foreground(FlatColor)
)

// Chart styles
var (
	ChartLineStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Buttons
var (
	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2).
			MarginRight(2)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor).
				Background(BackgroundColor).
				Padding(0, 2).
				MarginRight(2)
)

var (
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(BehindColor).
			Padding(0, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)
)

// RenderTitle renders a panel title.
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}
