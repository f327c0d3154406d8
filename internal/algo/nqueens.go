package algo

import (
	"time"

	"github.com/san-kum/algoviz/internal/stepper"
)

const (
	// MaxBoardSize bounds N so a run stays watchable.
	MaxBoardSize = 12

	// BacktrackDelay is requested after a backtrack step for emphasis.
	BacktrackDelay = 300 * time.Millisecond
)

// QueenPayload reports the cell being worked on and the board after the step.
type QueenPayload struct {
	Row   int      `json:"row"`
	Col   int      `json:"col"`
	Board [][]bool `json:"board"`
}

// QueenResult is the completion value of an NQueens run.
// Rows[c] is the row of the queen in column c when Found.
type QueenResult struct {
	N     int   `json:"n"`
	Found bool  `json:"found"`
	Rows  []int `json:"rows,omitempty"`
}

// NQueens searches for the first placement of N non-attacking queens.
type NQueens struct {
	*stepper.Machine
	n     int
	board [][]bool
}

func NewNQueens(n int) (*NQueens, error) {
	if n < 1 {
		return nil, Invalid("n", "Board size must be a positive integer, got %d.", n)
	}
	if n > MaxBoardSize {
		return nil, Invalid("n", "Board size %d is too large. Please use %d or less.", n, MaxBoardSize)
	}
	q := &NQueens{n: n, board: newBoard(n)}
	q.Machine = stepper.NewMachine(NameNQueens, &solveFrame{q: q})
	return q, nil
}

func newBoard(n int) [][]bool {
	b := make([][]bool, n)
	for i := range b {
		b[i] = make([]bool, n)
	}
	return b
}

func (q *NQueens) N() int { return q.n }

// Board returns a copy of the current board, indexed [row][col].
func (q *NQueens) Board() [][]bool { return cloneBoard(q.board) }

// Solution returns the completion value; ok is false until the run is done.
func (q *NQueens) Solution() (QueenResult, bool) {
	r, ok := q.Result().(QueenResult)
	return r, ok
}

func cloneBoard(b [][]bool) [][]bool {
	c := make([][]bool, len(b))
	for i := range b {
		c[i] = make([]bool, len(b[i]))
		copy(c[i], b[i])
	}
	return c
}

// IsSafe reports whether a queen at (row, col) is attacked by any queen in
// columns 0..col-1. Columns to the right are ignored.
func IsSafe(board [][]bool, row, col int) bool {
	n := len(board)
	for c := 0; c < col; c++ {
		if board[row][c] {
			return false
		}
	}
	for r, c := row, col; r >= 0 && c >= 0; r, c = r-1, c-1 {
		if board[r][c] {
			return false
		}
	}
	for r, c := row, col; r < n && c >= 0; r, c = r+1, c-1 {
		if board[r][c] {
			return false
		}
	}
	return true
}

func (q *NQueens) event(kind stepper.Kind, action string, row, col int, format string, args ...any) *stepper.Event {
	return stepper.NewEvent(kind, action, QueenPayload{Row: row, Col: col, Board: q.Board()}, format, args...)
}

func (q *NQueens) rows() []int {
	rows := make([]int, q.n)
	for c := 0; c < q.n; c++ {
		rows[c] = -1
		for r := 0; r < q.n; r++ {
			if q.board[r][c] {
				rows[c] = r
				break
			}
		}
	}
	return rows
}

// solveFrame wraps the column search and turns its outcome into a QueenResult.
type solveFrame struct {
	q  *NQueens
	pc int
}

func (f *solveFrame) Resume(ret any) stepper.Transition {
	q := f.q
	switch f.pc {
	case 0:
		f.pc = 1
		return stepper.Call(&placeFrame{q: q}, q.event(stepper.KindInfo, "start", -1, -1, "Starting N-Queens for N=%d", q.n))
	case 1:
		res := QueenResult{N: q.n, Found: ret.(bool)}
		if !res.Found {
			return stepper.ReturnYield(res, q.event(stepper.KindBacktrack, "no-solution", -1, -1,
				"No solution exists for N=%d.", q.n))
		}
		res.Rows = q.rows()
		return stepper.ReturnYield(res, q.event(stepper.KindSuccess, "finished", -1, -1,
			"Finished! Queens at rows %s.", formatInts(res.Rows)))
	}
	panic(badPC("solveFrame", f.pc))
}

// placeFrame tries every row of one column.
type placeFrame struct {
	q   *NQueens
	col int
	row int
	pc  int
}

func (f *placeFrame) Resume(ret any) stepper.Transition {
	q := f.q
	row, col := f.row, f.col
	switch f.pc {
	case 0:
		if col >= q.n {
			return stepper.ReturnYield(true, q.event(stepper.KindSuccess, "solution", -1, col, "SOLUTION FOUND!"))
		}
		f.pc = 1
		fallthrough
	case 1:
		if row >= q.n {
			return stepper.ReturnYield(false, q.event(stepper.KindBacktrack, "column-exhausted", -1, col,
				"No solution in column %d. Backtracking...", col))
		}
		f.pc = 2
		return stepper.Yield(q.event(stepper.KindTry, "trying", row, col, "Trying queen at [%d, %d]", row, col))
	case 2:
		if IsSafe(q.board, row, col) {
			q.board[row][col] = true
			f.pc = 3
			return stepper.Yield(q.event(stepper.KindPlace, "placed", row, col, "Placed queen at [%d, %d]", row, col))
		}
		f.row++
		f.pc = 1
		return stepper.Yield(q.event(stepper.KindBacktrack, "unsafe", row, col, "[%d, %d] is not safe.", row, col))
	case 3:
		f.pc = 4
		return stepper.Call(&placeFrame{q: q, col: col + 1}, nil)
	case 4:
		if ret.(bool) {
			return stepper.Return(true)
		}
		f.pc = 5
		return stepper.YieldDelay(q.event(stepper.KindBacktrack, "backtracking", row, col,
			"Backtracking from [%d, %d]", row, col), BacktrackDelay)
	case 5:
		q.board[row][col] = false
		f.row++
		f.pc = 1
		return stepper.Yield(q.event(stepper.KindInfo, "cleared", row, col, "Removed queen from [%d, %d]", row, col))
	}
	panic(badPC("placeFrame", f.pc))
}
