package algo

import "github.com/san-kum/algoviz/internal/stepper"

// MaxMergeSortLen keeps the recursion tree readable.
const MaxMergeSortLen = 16

// MergePayload locates an event in the recursion tree.
// Path is "" for the root, then one of 'L'/'R' per level.
type MergePayload struct {
	Path   string `json:"path"`
	Values []int  `json:"values"`
	Left   []int  `json:"left,omitempty"`
	Right  []int  `json:"right,omitempty"`
	Merged []int  `json:"merged,omitempty"`
	I      int    `json:"i"`
	J      int    `json:"j"`
}

// MergeSort animates top-down merge sort.
type MergeSort struct {
	*stepper.Machine
	input       []int
	comparisons int
}

func NewMergeSort(values []int) (*MergeSort, error) {
	if len(values) == 0 {
		return nil, Invalid("values", "Invalid input. Please enter numbers separated by commas (e.g., 5, 2, 8).")
	}
	if len(values) > MaxMergeSortLen {
		return nil, Invalid("values", "Array is too large (%d numbers). Please use %d numbers or less.", len(values), MaxMergeSortLen)
	}
	ms := &MergeSort{input: cloneInts(values)}
	ms.Machine = stepper.NewMachine(NameMergeSort, &sortFrame{ms: ms, values: cloneInts(values)})
	return ms, nil
}

func (ms *MergeSort) Input() []int     { return cloneInts(ms.input) }
func (ms *MergeSort) Comparisons() int { return ms.comparisons }

// Sorted returns the completion value, nil until the run is done.
func (ms *MergeSort) Sorted() []int {
	v, _ := ms.Result().([]int)
	return cloneInts(v)
}

type sortFrame struct {
	ms     *MergeSort
	path   string
	values []int
	pc     int

	left, right []int
}

func (f *sortFrame) event(kind stepper.Kind, action, format string, args ...any) *stepper.Event {
	p := MergePayload{Path: f.path, Values: cloneInts(f.values), Left: cloneInts(f.left), Right: cloneInts(f.right), I: -1, J: -1}
	return stepper.NewEvent(kind, action, p, format, args...)
}

func (f *sortFrame) child(side string, values []int) *sortFrame {
	return &sortFrame{ms: f.ms, path: f.path + side, values: values}
}

func (f *sortFrame) Resume(ret any) stepper.Transition {
	switch f.pc {
	case 0:
		if len(f.values) <= 1 {
			return stepper.ReturnYield(cloneInts(f.values),
				f.event(stepper.KindSuccess, "sorted", "Base case: array %s is sorted.", formatInts(f.values)))
		}
		mid := len(f.values) / 2
		f.left, f.right = cloneInts(f.values[:mid]), cloneInts(f.values[mid:])
		f.pc = 1
		return stepper.Yield(f.event(stepper.KindInfo, "divide", "Divide: %s -> %s and %s",
			formatInts(f.values), formatInts(f.left), formatInts(f.right)))
	case 1:
		f.pc = 2
		return stepper.Call(f.child("L", f.left), f.event(stepper.KindInfo, "recurse-left", "Recurse left..."))
	case 2:
		f.left = ret.([]int)
		f.pc = 3
		return stepper.Yield(f.event(stepper.KindInfo, "left-complete", "Left complete. Result: %s", formatInts(f.left)))
	case 3:
		f.pc = 4
		return stepper.Call(f.child("R", f.right), f.event(stepper.KindInfo, "recurse-right", "Recurse right..."))
	case 4:
		f.right = ret.([]int)
		f.pc = 5
		return stepper.Yield(f.event(stepper.KindInfo, "right-complete", "Right complete. Result: %s", formatInts(f.right)))
	case 5:
		f.pc = 6
		m := &mergeFrame{ms: f.ms, path: f.path, values: f.values, left: f.left, right: f.right}
		return stepper.Call(m, f.event(stepper.KindPlace, "merge-start", "Merge: %s and %s", formatInts(f.left), formatInts(f.right)))
	case 6:
		merged := ret.([]int)
		ev := f.event(stepper.KindSuccess, "merged", "Merge complete. Result: %s", formatInts(merged))
		ev.Payload = MergePayload{Path: f.path, Values: cloneInts(f.values), Merged: cloneInts(merged), I: -1, J: -1}
		return stepper.ReturnYield(merged, ev)
	}
	panic(badPC("sortFrame", f.pc))
}

// mergeFrame merges two sorted halves; ties take the left element.
type mergeFrame struct {
	ms     *MergeSort
	path   string
	values []int
	left   []int
	right  []int
	merged []int
	i, j   int
	pc     int
}

func (f *mergeFrame) event(kind stepper.Kind, action, format string, args ...any) *stepper.Event {
	p := MergePayload{
		Path:   f.path,
		Values: cloneInts(f.values),
		Left:   cloneInts(f.left),
		Right:  cloneInts(f.right),
		Merged: cloneInts(f.merged),
		I:      f.i,
		J:      f.j,
	}
	return stepper.NewEvent(kind, action, p, format, args...)
}

func (f *mergeFrame) Resume(ret any) stepper.Transition {
	switch f.pc {
	case 0:
		if f.merged == nil {
			f.merged = make([]int, 0, len(f.left)+len(f.right))
		}
		switch {
		case f.i < len(f.left) && f.j < len(f.right):
			f.ms.comparisons++
			f.pc = 1
			return stepper.Yield(f.event(stepper.KindCompare, "compare", "Compare: %d (left) and %d (right)", f.left[f.i], f.right[f.j]))
		case f.i < len(f.left):
			v := f.left[f.i]
			f.merged = append(f.merged, v)
			f.i++
			return stepper.Yield(f.event(stepper.KindPlace, "take-remaining", "Take remaining %d from left.", v))
		case f.j < len(f.right):
			v := f.right[f.j]
			f.merged = append(f.merged, v)
			f.j++
			return stepper.Yield(f.event(stepper.KindPlace, "take-remaining", "Take remaining %d from right.", v))
		}
		return stepper.Return(cloneInts(f.merged))
	case 1:
		f.pc = 0
		if f.left[f.i] <= f.right[f.j] {
			v := f.left[f.i]
			f.merged = append(f.merged, v)
			f.i++
			return stepper.Yield(f.event(stepper.KindPlace, "take-left", "Take %d from left.", v))
		}
		v := f.right[f.j]
		f.merged = append(f.merged, v)
		f.j++
		return stepper.Yield(f.event(stepper.KindPlace, "take-right", "Take %d from right.", v))
	}
	panic(badPC("mergeFrame", f.pc))
}
