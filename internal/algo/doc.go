// Package algo provides the four step-by-step algorithm engines.
//
// Each engine embeds a [stepper.Machine] and therefore implements
// [stepper.Sequence]; every Advance reports one logical step:
//
//   - [MergeSort]: divide & conquer, stable merge
//   - [CoinChange]: greedy change making over descending denominations
//   - [NQueens]: first-solution column-wise backtracking
//   - [Knapsack]: best-first branch & bound for 0/1 knapsack
//
// Constructors validate their input and return a [*ValidationError] before
// any step exists. Event payloads are copies, so renderers may keep them.
//
// # Example
//
//	ms, err := algo.NewMergeSort([]int{5, 2, 8})
//	if err != nil {
//	    return err
//	}
//	for !ms.Advance().Done {
//	}
//	sorted := ms.Sorted()
package algo

// Algorithm names, also used as registry keys and event tags.
const (
	NameMergeSort = "mergesort"
	NameCoins     = "coins"
	NameNQueens   = "nqueens"
	NameKnapsack  = "knapsack"
)
