// Package trace records algorithm runs and exports them.
package trace

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/stepper"
)

// Transcript is a complete recorded run.
type Transcript struct {
	Algorithm string          `json:"algorithm"`
	Input     any             `json:"input,omitempty"`
	Steps     int             `json:"steps"`
	Result    any             `json:"result,omitempty"`
	Events    []stepper.Event `json:"events"`
}

// Recorder is an emit.Sink that keeps every event.
type Recorder struct {
	mu     sync.Mutex
	events []stepper.Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Emit(ev stepper.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *Recorder) Events() []stepper.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]stepper.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Transcript snapshots what has been recorded so far.
func (r *Recorder) Transcript(algorithm string, input, result any) *Transcript {
	events := r.Events()
	return &Transcript{
		Algorithm: algorithm,
		Input:     input,
		Steps:     len(events),
		Result:    result,
		Events:    events,
	}
}

// Record drains seq and returns its transcript.
func Record(seq stepper.Sequence, input any) *Transcript {
	events := stepper.Drain(seq)
	if events == nil {
		events = []stepper.Event{}
	}
	return &Transcript{
		Algorithm: seq.Name(),
		Input:     input,
		Steps:     len(events),
		Result:    seq.Result(),
		Events:    events,
	}
}

func (t *Transcript) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t)
}

func ExportJSON(path string, t *Transcript) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return t.WriteJSON(file)
}

func ExportJSONStdout(t *Transcript) error {
	return t.WriteJSON(os.Stdout)
}

// Series extracts one progress value per event for plotting:
// cumulative comparisons for merge sort, remaining amount for coins,
// queens on the board for N-Queens and best profit for knapsack.
// Events without a typed payload repeat the previous value.
func Series(events []stepper.Event) []float64 {
	out := make([]float64, 0, len(events))
	last, compares := 0.0, 0.0
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case algo.MergePayload:
			if ev.Action == "compare" {
				compares++
			}
			last = compares
		case algo.CoinPayload:
			last = float64(p.Remaining)
		case algo.QueenPayload:
			last = float64(countQueens(p.Board))
		case algo.KnapsackPayload:
			last = float64(p.BestProfit)
		}
		out = append(out, last)
	}
	return out
}

// SeriesLabel names what Series measures for algorithm.
func SeriesLabel(algorithm string) string {
	switch algorithm {
	case algo.NameMergeSort:
		return "comparisons"
	case algo.NameCoins:
		return "remaining amount"
	case algo.NameNQueens:
		return "queens on board"
	case algo.NameKnapsack:
		return "best profit"
	}
	return "value"
}

// Count tallies events by kind.
func Count(events []stepper.Event) map[stepper.Kind]int {
	counts := make(map[stepper.Kind]int)
	for _, ev := range events {
		counts[ev.Kind]++
	}
	return counts
}

func countQueens(board [][]bool) int {
	n := 0
	for _, row := range board {
		for _, q := range row {
			if q {
				n++
			}
		}
	}
	return n
}
