package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatCard renders one labeled dashboard figure inside a bordered card.
func StatCard(styles Styles, label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardValue.Render(value),
		styles.CardLabel.Render(label),
	)
	return styles.Card.Width(StatCardWidth).Render(content)
}

// StatCardRow lays out stat cards horizontally, wrapping to the layout's
// per-row capacity.
func StatCardRow(styles Styles, layout LayoutConfig, cards ...string) string {
	perRow := layout.StatCardsPerRow()
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return strings.Join(rows, "\n")
}

// EmptyState renders the placeholder for a list with no rows.
func EmptyState(styles Styles, message string) string {
	return styles.Muted.Padding(1, 2).Render(message)
}

// ErrorState renders a failed load with a retry hint.
func ErrorState(styles Styles, message string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Error.Render("✗ "+message),
		styles.Muted.Render("press r to retry"),
	)
}

// LoadingState renders the spinner frame with a caption.
func LoadingState(styles Styles, spinnerView, caption string) string {
	return styles.Spinner.Render(spinnerView) + " " + styles.Muted.Render(caption)
}

// Placeholder renders the fallback view for navigation entries that have no
// screen bound yet.
func Placeholder(styles Styles, title string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(title),
		styles.Muted.Render("This screen is not available yet."),
	)
}

// Breadcrumb renders the top bar trail, e.g. "Scholar / Grading / Essay 1".
func Breadcrumb(styles Styles, parts ...string) string {
	return styles.TopBar.Render(strings.Join(parts, " / "))
}
