package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/stepper"
)

func noAttacks(board [][]bool) bool {
	type cell struct{ r, c int }
	var queens []cell
	for r := range board {
		for c := range board[r] {
			if board[r][c] {
				queens = append(queens, cell{r, c})
			}
		}
	}
	for i := 0; i < len(queens); i++ {
		for j := i + 1; j < len(queens); j++ {
			a, b := queens[i], queens[j]
			dr, dc := a.r-b.r, a.c-b.c
			if dr == 0 || dc == 0 || dr == dc || dr == -dc {
				return false
			}
		}
	}
	return true
}

func TestNQueensSolutions(t *testing.T) {
	cases := []struct {
		n     int
		found bool
		rows  []int
	}{
		{1, true, []int{0}},
		{2, false, nil},
		{3, false, nil},
		{4, true, []int{1, 3, 0, 2}},
		{8, true, []int{0, 4, 7, 5, 2, 6, 1, 3}},
	}
	for _, tc := range cases {
		q, err := NewNQueens(tc.n)
		require.NoError(t, err)

		events := stepper.Drain(q)
		res, ok := q.Solution()
		require.True(t, ok)
		assert.Equal(t, tc.found, res.Found, "N=%d", tc.n)
		assert.Equal(t, tc.rows, res.Rows, "N=%d", tc.n)

		last := events[len(events)-1]
		if tc.found {
			assert.Equal(t, "finished", last.Action)
			assert.Equal(t, "solution", events[len(events)-2].Action)
		} else {
			assert.Equal(t, "no-solution", last.Action)
			assert.Equal(t, "column-exhausted", events[len(events)-2].Action)
		}
	}
}

func TestNQueensBoardStaysValid(t *testing.T) {
	q, err := NewNQueens(6)
	require.NoError(t, err)

	for _, ev := range stepper.Drain(q) {
		p := ev.Payload.(QueenPayload)
		require.True(t, noAttacks(p.Board), "step %d (%s) left attacking queens", ev.Seq, ev.Action)
	}
	assert.True(t, noAttacks(q.Board()))
}

func TestNQueensBacktrackRequestsDelay(t *testing.T) {
	q, err := NewNQueens(4)
	require.NoError(t, err)

	backtracks := 0
	for {
		st := q.Advance()
		if st.Done {
			break
		}
		if st.Event.Action == "backtracking" {
			backtracks++
			assert.Equal(t, BacktrackDelay, st.Delay)
			assert.Equal(t, stepper.PendingDelay, q.Status())
		} else {
			assert.Zero(t, st.Delay)
		}
	}
	assert.Positive(t, backtracks)
}

func TestNQueensPlaceThenClear(t *testing.T) {
	q, err := NewNQueens(4)
	require.NoError(t, err)

	events := stepper.Drain(q)
	for i, ev := range events {
		if ev.Action != "backtracking" {
			continue
		}
		p := ev.Payload.(QueenPayload)
		require.True(t, p.Board[p.Row][p.Col], "queen should still be placed while backtracking")

		next := events[i+1]
		require.Equal(t, "cleared", next.Action)
		np := next.Payload.(QueenPayload)
		require.False(t, np.Board[np.Row][np.Col])
	}
}

func TestIsSafe(t *testing.T) {
	board := newBoard(4)
	board[1][0] = true

	assert.False(t, IsSafe(board, 1, 1), "same row")
	assert.False(t, IsSafe(board, 0, 1), "upper diagonal")
	assert.False(t, IsSafe(board, 2, 1), "lower diagonal")
	assert.True(t, IsSafe(board, 3, 1))
	assert.True(t, IsSafe(board, 0, 2))

	board[0][3] = true
	assert.True(t, IsSafe(board, 0, 2), "columns to the right are ignored")
}

func TestNQueensValidation(t *testing.T) {
	for _, n := range []int{0, -3, MaxBoardSize + 1} {
		_, err := NewNQueens(n)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "n=%d", n)
		assert.Equal(t, "n", verr.Field)
	}
}
