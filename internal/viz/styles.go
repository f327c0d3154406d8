package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are built from CurrentTheme on every render so a theme switch
// takes effect on the next frame.

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func titleStyle() lipgloss.Style   { return fg(CurrentTheme.Primary).Bold(true) }
func subtleStyle() lipgloss.Style  { return fg(CurrentTheme.Muted) }
func textStyle() lipgloss.Style    { return fg(CurrentTheme.Text) }
func accentStyle() lipgloss.Style  { return fg(CurrentTheme.Accent).Bold(true) }
func selectStyle() lipgloss.Style  { return fg(CurrentTheme.Secondary).Bold(true) }
func errorStyle() lipgloss.Style   { return fg(CurrentTheme.Error).Bold(true) }
func successStyle() lipgloss.Style { return fg(CurrentTheme.Success).Bold(true) }

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Padding(0, 1)
}

// keyHints renders "key label" pairs as a help line.
func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(accentStyle().Render(pairs[i]))
		b.WriteString(subtleStyle().Render(" " + pairs[i+1]))
	}
	return b.String()
}

// GradientText colors each rune of text along a start→end interpolation.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))

	var b strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		lerp := func(a, b int) int { return a + int(t*float64(b-a)) }
		color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", lerp(sr, er), lerp(sg, eg), lerp(sb, eb)))
		b.WriteString(fg(color).Bold(true).Render(string(c)))
	}
	return b.String()
}

// parseHex reads "#rrggbb"; anything else is white.
func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders percent in [0,1] as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent > 0.8:
		return fg(CurrentTheme.Success).Render(bar)
	case percent > 0.4:
		return fg(CurrentTheme.Accent).Render(bar)
	}
	return fg(CurrentTheme.Warning).Render(bar)
}

// SparklineChart renders the last width values as a one-line sparkline.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return fg(CurrentTheme.Success).Render(b.String())
}

// Separator is a muted horizontal rule with a center mark.
func Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return subtleStyle().Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
