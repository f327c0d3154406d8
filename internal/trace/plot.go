package trace

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/stepper"
)

// Plot renders the progress series of events as an ASCII chart. It
// returns "" when there is nothing to draw.
func Plot(algorithm string, events []stepper.Event, width, height int) string {
	data := Series(events)
	if len(data) == 0 {
		return ""
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(SeriesLabel(algorithm) + " per step"),
		asciigraph.Precision(0),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(data, opts...)
}
