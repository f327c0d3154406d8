package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
)

// inputCommand registers the input flags on a fresh command and resets
// the globals they bind to.
func inputCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile, preset, logLevel, logFormat = "", "", "", ""
	t.Cleanup(func() { configFile, preset = "", "" })

	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "")
	f.StringVar(&preset, "preset", "", "")
	f.StringVar(&logLevel, "log-level", "", "")
	f.StringVar(&logFormat, "log-format", "", "")
	f.StringVar(&values, "values", "", "")
	f.StringVar(&amount, "amount", "", "")
	f.StringVar(&denominations, "denominations", "", "")
	f.StringVar(&boardSize, "size", "", "")
	f.StringVar(&capacity, "capacity", "", "")
	f.StringVar(&items, "items", "", "")
	f.IntVar(&speedLevel, "speed", config.DefaultSpeedLevel, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(inputCommand(t), algo.NameCoins)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfigFlagsOverridePreset(t *testing.T) {
	cmd := inputCommand(t, "--preset", "non-canonical", "--amount", "10", "--speed", "40")
	cfg, err := loadConfig(cmd, algo.NameCoins)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Coins.Amount)
	assert.Equal(t, []int{4, 3, 1}, cfg.Coins.Denominations)
	assert.Equal(t, 40, cfg.SpeedLevel)
}

func TestLoadConfigPresetOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settle_ms: 10\nnqueens:\n  size: 6\n"), 0644))

	cmd := inputCommand(t, "--config", path, "--preset", "eight")
	cfg, err := loadConfig(cmd, algo.NameNQueens)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.NQueens.Size)
	assert.Equal(t, 10, cfg.SettleMs)
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	_, err := loadConfig(inputCommand(t, "--preset", "nope"), algo.NameKnapsack)
	assert.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	_, err := loadConfig(inputCommand(t, "--items", "10, 60; oops"), algo.NameKnapsack)
	var verr *algo.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, algo.ErrValidation))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hello", "step", 3)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, float64(3), rec["step"])
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")

	_, err = newLogger(config.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
	_, err = newLogger(config.LogConfig{Format: "xml"}, &buf)
	assert.Error(t, err)
}
