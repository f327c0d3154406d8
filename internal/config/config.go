package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/algo"
)

const (
	DefaultSpeedLevel = 78
	DefaultSettleMs   = 50
	DefaultTheme      = "default"
	DefaultAmount     = 163
	DefaultBoardSize  = 4
	DefaultCapacity   = 50
)

var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	SpeedLevel int             `yaml:"speed_level"`
	SettleMs   int             `yaml:"settle_ms"`
	Theme      string          `yaml:"theme"`
	Log        LogConfig       `yaml:"log"`
	MergeSort  MergeSortConfig `yaml:"mergesort"`
	Coins      CoinsConfig     `yaml:"coins"`
	NQueens    NQueensConfig   `yaml:"nqueens"`
	Knapsack   KnapsackConfig  `yaml:"knapsack"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MergeSortConfig struct {
	Values []int `yaml:"values"`
}

type CoinsConfig struct {
	Amount        int   `yaml:"amount"`
	Denominations []int `yaml:"denominations"`
}

type NQueensConfig struct {
	Size int `yaml:"size"`
}

type KnapsackConfig struct {
	Capacity int         `yaml:"capacity"`
	Items    []algo.Item `yaml:"items"`
}

func DefaultConfig() *Config {
	return &Config{
		SpeedLevel: DefaultSpeedLevel,
		SettleMs:   DefaultSettleMs,
		Theme:      DefaultTheme,
		Log:        LogConfig{Level: "info", Format: "text"},
		MergeSort:  MergeSortConfig{Values: []int{38, 27, 43, 3, 9, 82, 10}},
		Coins: CoinsConfig{
			Amount:        DefaultAmount,
			Denominations: append([]int(nil), algo.DefaultDenominations...),
		},
		NQueens: NQueensConfig{Size: DefaultBoardSize},
		Knapsack: KnapsackConfig{
			Capacity: DefaultCapacity,
			Items: []algo.Item{
				{Weight: 10, Value: 60},
				{Weight: 20, Value: 100},
				{Weight: 30, Value: 120},
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets and overrides never share slices.
func (c *Config) Clone() *Config {
	cp := *c
	cp.MergeSort.Values = append([]int(nil), c.MergeSort.Values...)
	cp.Coins.Denominations = append([]int(nil), c.Coins.Denominations...)
	cp.Knapsack.Items = append([]algo.Item(nil), c.Knapsack.Items...)
	return &cp
}

// ApplyPreset copies the algorithm's section of the named preset into c.
func (c *Config) ApplyPreset(algorithm, name string) error {
	p := GetPreset(algorithm, name)
	if p == nil {
		return fmt.Errorf("%w: %s/%s", ErrUnknownPreset, algorithm, name)
	}
	p = p.Clone()
	switch algorithm {
	case algo.NameMergeSort:
		c.MergeSort = p.MergeSort
	case algo.NameCoins:
		c.Coins = p.Coins
	case algo.NameNQueens:
		c.NQueens = p.NQueens
	case algo.NameKnapsack:
		c.Knapsack = p.Knapsack
	}
	return nil
}

// Section returns the input section used by algorithm, or nil.
func (c *Config) Section(algorithm string) any {
	switch algorithm {
	case algo.NameMergeSort:
		return c.MergeSort
	case algo.NameCoins:
		return c.Coins
	case algo.NameNQueens:
		return c.NQueens
	case algo.NameKnapsack:
		return c.Knapsack
	}
	return nil
}
