package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spacequiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Header and footer are one line of text inside a rounded border.
	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const brand = "☀ Space Quiz"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains of totalHeight once the header and footer
// bars are drawn.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Terminal too small!\n\nSpace Quiz needs at least %d x %d.\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(content)
}

// RenderHeader draws the brand on the left, the screen title in the middle
// and status, usually the level and running score, on the right. The title
// is dropped before the status when space runs out.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)

	left := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(brand)
	right := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(status)
	side := max(lipgloss.Width(left), lipgloss.Width(right))

	middleWidth := inner - 2*side
	middle := ""
	if middleWidth >= lipgloss.Width(title) {
		middle = lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	} else {
		middleWidth = max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
		side = 0
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(max(side, lipgloss.Width(left)), lipgloss.Left, left),
		lipgloss.PlaceHorizontal(middleWidth, lipgloss.Center, middle),
		lipgloss.PlaceHorizontal(max(side, lipgloss.Width(right)), lipgloss.Right, right),
	)
	return bar(row, width)
}

// RenderFooter lists key hints left to right, leaving out trailing hints
// that would not fit on one line.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	const gap = "   "
	inner := max(width-4, 0)
	var b strings.Builder
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if b.Len() > 0 {
			next = gap + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(next) > inner {
			break
		}
		b.WriteString(next)
	}
	return bar(b.String(), width)
}

// RenderFrame stacks header, content and footer, padding content to fill
// the space between the bars.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
