// Package registry maps algorithm names onto sequence factories.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/stepper"
)

var ErrUnknownAlgorithm = errors.New("registry: unknown algorithm")

// Factory builds a fresh run from the algorithm's section of cfg.
type Factory func(cfg *config.Config) (stepper.Sequence, error)

type entry struct {
	title   string
	factory Factory
}

type Registry struct {
	algorithms map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]entry)}

	r.Register(algo.NameMergeSort, "Merge Sort (divide & conquer)", func(cfg *config.Config) (stepper.Sequence, error) {
		return algo.NewMergeSort(cfg.MergeSort.Values)
	})
	r.Register(algo.NameCoins, "Coin Change (greedy)", func(cfg *config.Config) (stepper.Sequence, error) {
		return algo.NewCoinChange(cfg.Coins.Amount, cfg.Coins.Denominations)
	})
	r.Register(algo.NameNQueens, "N-Queens (backtracking)", func(cfg *config.Config) (stepper.Sequence, error) {
		return algo.NewNQueens(cfg.NQueens.Size)
	})
	r.Register(algo.NameKnapsack, "0/1 Knapsack (branch & bound)", func(cfg *config.Config) (stepper.Sequence, error) {
		return algo.NewKnapsack(cfg.Knapsack.Capacity, cfg.Knapsack.Items)
	})

	return r
}

// Register adds or replaces an algorithm.
func (r *Registry) Register(name, title string, f Factory) {
	r.algorithms[name] = entry{title: title, factory: f}
}

// New builds a sequence for name. Validation failures wrap
// algo.ErrValidation.
func (r *Registry) New(name string, cfg *config.Config) (stepper.Sequence, error) {
	e, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	seq, err := e.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return seq, nil
}

func (r *Registry) Title(name string) string {
	return r.algorithms[name].title
}

// List returns algorithm names in menu order.
func (r *Registry) List() []string {
	order := map[string]int{algo.NameMergeSort: 0, algo.NameCoins: 1, algo.NameNQueens: 2, algo.NameKnapsack: 3}
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := order[names[i]]
		oj, jok := order[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})
	return names
}
