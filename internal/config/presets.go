package config

import "sort"

// Presets holds named inputs per algorithm. Only the algorithm's own
// section of each entry is meaningful.
var Presets = map[string]map[string]*Config{
	"mergesort": {
		"reversed":   {MergeSort: MergeSortConfig{Values: []int{9, 8, 7, 6, 5, 4, 3, 2, 1}}},
		"duplicates": {MergeSort: MergeSortConfig{Values: []int{5, 3, 5, 1, 3, 5, 1}}},
		"single":     {MergeSort: MergeSortConfig{Values: []int{42}}},
		"wide":       {MergeSort: MergeSortConfig{Values: []int{16, 4, 12, 8, 2, 14, 6, 10, 1, 15, 3, 13, 7, 11, 5, 9}}},
	},
	"coins": {
		"canonical":     {Coins: CoinsConfig{Amount: 163, Denominations: []int{100, 50, 20, 10, 5, 2, 1}}},
		"non-canonical": {Coins: CoinsConfig{Amount: 6, Denominations: []int{4, 3, 1}}},
		"zero":          {Coins: CoinsConfig{Amount: 0, Denominations: []int{100, 50, 20, 10, 5, 2, 1}}},
	},
	"nqueens": {
		"four":       {NQueens: NQueensConfig{Size: 4}},
		"eight":      {NQueens: NQueensConfig{Size: 8}},
		"impossible": {NQueens: NQueensConfig{Size: 3}},
	},
	"knapsack": {
		"classic": {Knapsack: KnapsackConfig{Capacity: 50, Items: itemsOf(10, 60, 20, 100, 30, 120)}},
		"tight":   {Knapsack: KnapsackConfig{Capacity: 5, Items: itemsOf(10, 60, 20, 100, 30, 120)}},
		"ties":    {Knapsack: KnapsackConfig{Capacity: 10, Items: itemsOf(5, 10, 5, 10, 5, 10)}},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns preset names in sorted order, nil for an unknown
// algorithm.
func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
