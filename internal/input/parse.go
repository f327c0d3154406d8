// Package input turns user-entered text into validated engine parameters.
// Every failure is an *algo.ValidationError carrying the message shown to
// the user.
package input

import (
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/algo"
)

// ParseIntList parses "5, 2, 8". Empty tokens from stray commas are
// skipped; any other non-integer token rejects the whole list.
func ParseIntList(field, s string) ([]int, error) {
	var out []int
	for _, tok := range splitList(s) {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, algo.Invalid(field, "Invalid number %q. Please enter numbers separated by commas (e.g., 5, 2, 8).", tok)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseValues parses a merge sort array.
func ParseValues(s string) ([]int, error) {
	vals, err := ParseIntList("values", s)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, algo.Invalid("values", "Invalid input. Please enter numbers separated by commas (e.g., 5, 2, 8).")
	}
	if len(vals) > algo.MaxMergeSortLen {
		return nil, algo.Invalid("values", "Array is too large (%d numbers). Please use %d numbers or less.", len(vals), algo.MaxMergeSortLen)
	}
	return vals, nil
}

// ParseAmount parses a non-negative change amount.
func ParseAmount(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, algo.Invalid("amount", "Please enter a valid non-negative amount.")
	}
	return v, nil
}

// ParseDenominations parses a descending coin list. Blank input selects
// algo.DefaultDenominations.
func ParseDenominations(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return append([]int(nil), algo.DefaultDenominations...), nil
	}
	denoms, err := ParseIntList("denominations", s)
	if err != nil {
		return nil, err
	}
	if err := algo.ValidateDenominations(denoms); err != nil {
		return nil, err
	}
	return denoms, nil
}

// ParseBoardSize parses N for N-Queens.
func ParseBoardSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, algo.Invalid("n", "Please enter a valid board size (N >= 1).")
	}
	if n > algo.MaxBoardSize {
		return 0, algo.Invalid("n", "Board size %d is too large. Please use %d or less.", n, algo.MaxBoardSize)
	}
	return n, nil
}

// ParseCapacity parses a positive knapsack capacity.
func ParseCapacity(s string) (int, error) {
	c, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || c <= 0 {
		return 0, algo.Invalid("capacity", "Please enter a valid positive capacity.")
	}
	return c, nil
}

// ParseItems parses one "weight, value" pair per line. Semicolons are
// accepted as line separators so items fit on a command line. Blank lines
// are skipped.
func ParseItems(s string) ([]algo.Item, error) {
	var items []algo.Item
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ';' }) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, invalidLine(line)
		}
		w, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
		v, verr := strconv.Atoi(strings.TrimSpace(parts[1]))
		if werr != nil || verr != nil || w <= 0 || v < 0 {
			return nil, invalidLine(line)
		}
		items = append(items, algo.Item{Weight: w, Value: v})
	}
	if len(items) == 0 {
		return nil, algo.Invalid("items", "No valid items provided.")
	}
	if len(items) > algo.MaxKnapsackItems {
		return nil, algo.Invalid("items", "Too many items (%d). Please use %d or less.", len(items), algo.MaxKnapsackItems)
	}
	return items, nil
}

func invalidLine(line string) error {
	return algo.Invalid("items", "Invalid line: %q. Use format: weight, value (weight > 0, value >= 0)", line)
}

// FormatInts renders values the way ParseIntList reads them.
func FormatInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// FormatItems renders items the way ParseItems reads them, one per line.
func FormatItems(items []algo.Item) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = strconv.Itoa(it.Weight) + ", " + strconv.Itoa(it.Value)
	}
	return strings.Join(lines, "\n")
}

func splitList(s string) []string {
	var toks []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			toks = append(toks, tok)
		}
	}
	return toks
}
