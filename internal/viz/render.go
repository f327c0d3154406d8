package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/stepper"
	"github.com/san-kum/algoviz/internal/trace"
)

// RenderState draws the algorithm state carried by the most recent event.
// events is the run so far, oldest first.
func RenderState(events []stepper.Event, width int) string {
	if len(events) == 0 {
		return subtleStyle().Render("Press space to play or n to step.")
	}
	last := events[len(events)-1]
	switch p := last.Payload.(type) {
	case algo.MergePayload:
		return renderMerge(p)
	case algo.CoinPayload:
		return renderCoins(p)
	case algo.QueenPayload:
		return renderQueens(p, last.Kind)
	case algo.KnapsackPayload:
		return renderKnapsack(p, events, width)
	}
	return ""
}

func renderMerge(p algo.MergePayload) string {
	var b strings.Builder
	depth := len(p.Path)
	path := "root"
	if depth > 0 {
		path = "root/" + strings.Join(strings.Split(p.Path, ""), "/")
	}
	fmt.Fprintf(&b, "%s %s\n\n", subtleStyle().Render("node"), textStyle().Render(fmt.Sprintf("%s (depth %d)", path, depth)))
	fmt.Fprintf(&b, "%-8s %s\n", "array", renderInts(p.Values, -1))
	if p.Left != nil || p.Right != nil {
		fmt.Fprintf(&b, "%-8s %s\n", "left", renderInts(p.Left, p.I))
		fmt.Fprintf(&b, "%-8s %s\n", "right", renderInts(p.Right, p.J))
	}
	if p.Merged != nil {
		fmt.Fprintf(&b, "%-8s %s\n", "merged", successStyle().Render(bracket(p.Merged)))
	}
	return b.String()
}

// renderInts boxes every value and highlights index hi.
func renderInts(vals []int, hi int) string {
	cells := make([]string, len(vals))
	for i, v := range vals {
		cell := fmt.Sprintf("%3d", v)
		if i == hi {
			cells[i] = accentStyle().Render("[" + cell + "]")
		} else {
			cells[i] = textStyle().Render(" " + cell + " ")
		}
	}
	return strings.Join(cells, "")
}

func bracket(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderCoins(p algo.CoinPayload) string {
	var b strings.Builder
	paid := p.Amount - p.Remaining
	pct := 1.0
	if p.Amount > 0 {
		pct = float64(paid) / float64(p.Amount)
	}
	fmt.Fprintf(&b, "%s %d   %s %d\n", subtleStyle().Render("amount"), p.Amount, subtleStyle().Render("remaining"), p.Remaining)
	fmt.Fprintf(&b, "%s %3.0f%%\n\n", ProgressBar(pct, 30), pct*100)
	for _, dc := range algo.SortedCounts(p.Counts) {
		d, n := dc[0], dc[1]
		line := fmt.Sprintf("%5d × %-3d %s", d, n, strings.Repeat("●", min(n, 30)))
		if d == p.Coin {
			b.WriteString(accentStyle().Render("▸"+line) + "\n")
		} else {
			b.WriteString(textStyle().Render(" "+line) + "\n")
		}
	}
	return b.String()
}

func renderQueens(p algo.QueenPayload, kind stepper.Kind) string {
	var b strings.Builder
	hl := fg(CurrentTheme.KindColor(kind)).Bold(true)
	for r, row := range p.Board {
		for c, queen := range row {
			cell := " · "
			if queen {
				cell = " ♛ "
			}
			switch {
			case r == p.Row && c == p.Col:
				b.WriteString(hl.Render(cell))
			case queen:
				b.WriteString(selectStyle().Render(cell))
			case (r+c)%2 == 0:
				b.WriteString(textStyle().Render(cell))
			default:
				b.WriteString(subtleStyle().Render(cell))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderKnapsack(p algo.KnapsackPayload, events []stepper.Event, width int) string {
	var b strings.Builder
	n := p.Node
	if n.ID != 0 {
		fmt.Fprintf(&b, "%s #%d %s (parent #%d)\n", subtleStyle().Render("node"), n.ID, n.Branch, n.Parent)
		fmt.Fprintf(&b, "  level %-3d profit %-5d weight %-5d bound %.2f\n", n.Level, n.Profit, n.Weight, n.Bound)
		fmt.Fprintf(&b, "  taken %s\n", bracket(oneBased(n.Taken)))
	}
	fmt.Fprintf(&b, "\n%s %s   %s %d\n", subtleStyle().Render("max profit"), successStyle().Render(strconv.Itoa(p.BestProfit)),
		subtleStyle().Render("queue"), p.QueueLen)

	if len(events) > 1 {
		chartWidth := width - 20
		if chartWidth < 20 {
			chartWidth = 20
		}
		b.WriteString("\n" + trace.Plot(algo.NameKnapsack, events, chartWidth, 4) + "\n")
	}
	return b.String()
}

func oneBased(idx []int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = v + 1
	}
	return out
}

// RenderLog shows the last n event messages colored by kind.
func RenderLog(events []stepper.Event, n int) string {
	if len(events) > n {
		events = events[len(events)-n:]
	}
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(subtleStyle().Render(fmt.Sprintf("%4d ", ev.Seq)))
		b.WriteString(fg(CurrentTheme.KindColor(ev.Kind)).Render(ev.Message))
		b.WriteString("\n")
	}
	return b.String()
}
