package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/emit"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/registry"
)

var algorithmInfo = map[string]string{
	algo.NameMergeSort: "split, recurse, merge",
	algo.NameCoins:     "largest coin first",
	algo.NameNQueens:   "place, check, backtrack",
	algo.NameKnapsack:  "best-first with bounds",
}

const (
	stateMenu = iota
	stateInput
	statePlay
)

type field struct {
	key, label, value string
}

// App is the top-level Bubble Tea model.
type App struct {
	state, cursor int
	reg           *registry.Registry
	cfg           *config.Config
	names         []string
	selected      string
	fields        []field
	fieldCursor   int
	presetIdx     int
	err           string
	ctrl          *playback.Controller
	buf           *emit.Buffer
	player        Player
	ticking       bool
	width         int
}

// NewApp builds the TUI. Every step event is also passed to sink, which
// may be nil.
func NewApp(reg *registry.Registry, cfg *config.Config, sink emit.Sink, logger *slog.Logger) App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	buf := emit.NewBuffer()
	ctrl := playback.New(emit.Multi(buf, sink),
		playback.WithSettle(time.Duration(cfg.SettleMs)*time.Millisecond),
		playback.WithLogger(logger),
	)
	SetTheme(cfg.Theme)
	return App{
		state: stateMenu,
		reg:   reg,
		cfg:   cfg.Clone(),
		names: reg.List(),
		ctrl:  ctrl,
		buf:   buf,
		width: 80,
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.player, _ = m.player.Update(msg)
	case TickMsg:
		if m.state != statePlay {
			m.ticking = false
			return m, nil
		}
		m.player, _ = m.player.Update(msg)
		return m, tick()
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.ctrl.Reset()
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateInput:
		return m.inputKey(msg)
	case statePlay:
		switch msg.String() {
		case "q":
			m.ctrl.Reset()
			return m, tea.Quit
		case "esc":
			m.ctrl.Cancel()
			m.state = stateInput
			return m, nil
		}
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "t":
		NextTheme()
	case "enter", " ":
		m.selected = m.names[m.cursor]
		m.state, m.fieldCursor, m.presetIdx, m.err = stateInput, 0, 0, ""
		m.fields = fieldsFor(m.selected, m.cfg)
	}
	return m, nil
}

func (m App) inputKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state, m.err = stateMenu, ""
	case tea.KeyTab, tea.KeyDown:
		m.fieldCursor = (m.fieldCursor + 1) % len(m.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		m.fieldCursor = (m.fieldCursor + len(m.fields) - 1) % len(m.fields)
	case tea.KeyBackspace:
		f := &m.fields[m.fieldCursor]
		if r := []rune(f.value); len(r) > 0 {
			f.value = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.fields[m.fieldCursor].value = ""
	case tea.KeyCtrlP:
		m.cyclePreset()
	case tea.KeySpace:
		m.fields[m.fieldCursor].value += " "
	case tea.KeyRunes:
		m.fields[m.fieldCursor].value += string(msg.Runes)
	case tea.KeyEnter:
		return m.start()
	}
	return m, nil
}

func (m *App) cyclePreset() {
	names := config.ListPresets(m.selected)
	if len(names) == 0 {
		return
	}
	name := names[m.presetIdx%len(names)]
	m.presetIdx++
	cfg := m.cfg.Clone()
	if err := cfg.ApplyPreset(m.selected, name); err != nil {
		m.err = err.Error()
		return
	}
	m.fields = fieldsFor(m.selected, cfg)
	m.err = ""
}

func (m App) start() (App, tea.Cmd) {
	cfg, err := applyFields(m.selected, m.fields, m.cfg)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.cfg = cfg
	m.player = NewPlayer(m.ctrl, m.buf, m.reg, cfg, m.selected, m.cfg.SpeedLevel)
	m.player.width = m.width
	if err := m.player.Start(); err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.state, m.err = statePlay, ""
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tick()
}

func fieldsFor(name string, cfg *config.Config) []field {
	switch name {
	case algo.NameMergeSort:
		return []field{{"values", "Array", input.FormatInts(cfg.MergeSort.Values)}}
	case algo.NameCoins:
		return []field{
			{"amount", "Amount", strconv.Itoa(cfg.Coins.Amount)},
			{"denominations", "Coins", input.FormatInts(cfg.Coins.Denominations)},
		}
	case algo.NameNQueens:
		return []field{{"size", "Board size (N)", strconv.Itoa(cfg.NQueens.Size)}}
	case algo.NameKnapsack:
		return []field{
			{"capacity", "Capacity", strconv.Itoa(cfg.Knapsack.Capacity)},
			{"items", "Items (w, v; ...)", strings.ReplaceAll(input.FormatItems(cfg.Knapsack.Items), "\n", "; ")},
		}
	}
	return nil
}

// applyFields validates the form and returns a config carrying it.
func applyFields(name string, fields []field, base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	for _, f := range fields {
		var err error
		switch f.key {
		case "values":
			cfg.MergeSort.Values, err = input.ParseValues(f.value)
		case "amount":
			cfg.Coins.Amount, err = input.ParseAmount(f.value)
		case "denominations":
			cfg.Coins.Denominations, err = input.ParseDenominations(f.value)
		case "size":
			cfg.NQueens.Size, err = input.ParseBoardSize(f.value)
		case "capacity":
			cfg.Knapsack.Capacity, err = input.ParseCapacity(f.value)
		case "items":
			cfg.Knapsack.Items, err = input.ParseItems(f.value)
		}
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateInput:
		return m.viewInput()
	case statePlay:
		return m.player.View()
	}
	return ""
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("ALGOVIZ", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString("    " + subtleStyle().Render("step-by-step algorithm visualizer") + "\n")
	b.WriteString("    " + Separator(34) + "\n\n")
	for i, name := range m.names {
		title := m.reg.Title(name)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", titleStyle().Render("▸"), textStyle().Bold(true).Render(fmt.Sprintf("%-32s", title)), selectStyle().Render(algorithmInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", subtleStyle().Render(fmt.Sprintf("%-32s", title)), subtleStyle().Render(algorithmInfo[name])))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewInput() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle().Render(strings.ToUpper(m.reg.Title(m.selected))) + "\n")
	b.WriteString("    " + subtleStyle().Render(algorithmInfo[m.selected]) + "\n")
	b.WriteString("    " + Separator(34) + "\n\n")
	for i, f := range m.fields {
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", titleStyle().Render("▸"), textStyle().Bold(true).Render(fmt.Sprintf("%-18s", f.label)), selectStyle().Render(f.value+"_")))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", subtleStyle().Render(fmt.Sprintf("%-18s", f.label)), textStyle().Render(f.value)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + errorStyle().Render(m.err) + "\n")
	}
	b.WriteString("\n    " + keyHints("tab", "next field", "ctrl+p", "preset", "ctrl+u", "clear", "enter", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive runs the TUI until the user quits.
func RunInteractive(reg *registry.Registry, cfg *config.Config, sink emit.Sink, logger *slog.Logger) error {
	_, err := tea.NewProgram(NewApp(reg, cfg, sink, logger), tea.WithAltScreen()).Run()
	return err
}
