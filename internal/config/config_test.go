package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SpeedLevel < 5 || cfg.SpeedLevel > 100 {
		t.Errorf("speed level %d out of range", cfg.SpeedLevel)
	}
	if cfg.SettleMs != 50 {
		t.Errorf("expected settle 50ms, got %d", cfg.SettleMs)
	}
	if cfg.Coins.Amount != 163 {
		t.Errorf("expected amount 163, got %d", cfg.Coins.Amount)
	}
	if len(cfg.Knapsack.Items) != 3 {
		t.Errorf("expected 3 knapsack items, got %d", len(cfg.Knapsack.Items))
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("coins", "non-canonical")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Coins.Amount != 6 {
		t.Errorf("expected amount 6, got %d", cfg.Coins.Amount)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("nqueens", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "four")
	if cfg != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("nqueens")
	want := []string{"eight", "four", "impossible"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("preset %d: expected %s, got %s", i, want[i], presets[i])
		}
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("knapsack", "tight"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.Knapsack.Capacity != 5 {
		t.Errorf("expected capacity 5, got %d", cfg.Knapsack.Capacity)
	}
	if cfg.NQueens.Size != DefaultBoardSize {
		t.Errorf("preset leaked into nqueens section: %d", cfg.NQueens.Size)
	}

	cfg.Knapsack.Items[0].Weight = 999
	if Presets["knapsack"]["tight"].Knapsack.Items[0].Weight == 999 {
		t.Error("preset items aliased by applied config")
	}

	err := cfg.ApplyPreset("knapsack", "missing")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")

	cfg := DefaultConfig()
	cfg.SpeedLevel = 90
	cfg.MergeSort.Values = []int{3, 1, 2}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.SpeedLevel != 90 {
		t.Errorf("expected speed level 90, got %d", loaded.SpeedLevel)
	}
	if len(loaded.MergeSort.Values) != 3 || loaded.MergeSort.Values[0] != 3 {
		t.Errorf("unexpected values %v", loaded.MergeSort.Values)
	}
	if loaded.Knapsack.Items[1].Value != 100 {
		t.Errorf("expected item value 100, got %d", loaded.Knapsack.Items[1].Value)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("nqueens:\n  size: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.NQueens.Size != 8 {
		t.Errorf("expected size 8, got %d", cfg.NQueens.Size)
	}
	if cfg.Coins.Amount != DefaultAmount {
		t.Errorf("expected default amount, got %d", cfg.Coins.Amount)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("speed_level: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
