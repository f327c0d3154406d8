package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/emit"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/registry"
	"github.com/san-kum/algoviz/internal/stepper"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	frameRate  = time.Second / 60
	logLines   = 8
	speedDelta = 5
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Player is the playback view of one algorithm run.
type Player struct {
	ctrl   *playback.Controller
	buf    *emit.Buffer
	reg    *registry.Registry
	cfg    *config.Config
	name   string
	level  int
	events []stepper.Event
	frame  int
	width  int
}

func NewPlayer(ctrl *playback.Controller, buf *emit.Buffer, reg *registry.Registry, cfg *config.Config, name string, level int) Player {
	return Player{ctrl: ctrl, buf: buf, reg: reg, cfg: cfg, name: name, level: level, width: 80}
}

// Start installs a fresh run built from the player's config.
func (p *Player) Start() error {
	seq, err := p.reg.New(p.name, p.cfg)
	if err != nil {
		return err
	}
	p.buf.Drain()
	p.events = nil
	p.ctrl.SetSpeed(p.level)
	p.ctrl.Start(seq)
	return nil
}

func (p Player) Events() []stepper.Event { return p.events }

func (p Player) Update(msg tea.Msg) (Player, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			p.ctrl.TogglePlayPause()
		case "n":
			p.ctrl.Step()
		case "+", "=":
			p.setLevel(p.level + speedDelta)
		case "-", "_":
			p.setLevel(p.level - speedDelta)
		case "r":
			_ = p.Start()
		case "t":
			NextTheme()
		}
		p.collect()
	case TickMsg:
		p.frame++
		p.collect()
	case tea.WindowSizeMsg:
		p.width = msg.Width
	}
	return p, nil
}

func (p *Player) setLevel(level int) {
	p.level = max(playback.MinSpeedLevel, min(playback.MaxSpeedLevel, level))
	p.ctrl.SetSpeed(p.level)
}

func (p *Player) collect() {
	p.events = append(p.events, p.buf.Drain()...)
}

func (p Player) View() string {
	var b strings.Builder
	b.WriteString("\n  " + GradientText("ALGOVIZ", CurrentTheme.Primary, CurrentTheme.Secondary))
	b.WriteString("  " + titleStyle().Render(p.reg.Title(p.name)) + "\n")
	b.WriteString("  " + p.status() + "\n\n")

	state := panelStyle().Render(RenderState(p.events, p.width))
	logPanel := panelStyle().Width(max(30, p.width/2-4)).Render(RenderLog(p.events, logLines))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "  ", state, " ", logPanel))
	b.WriteString("\n")

	b.WriteString("  " + subtleStyle().Render(trace.SeriesLabel(p.name)+" ") + SparklineChart(trace.Series(p.events), 40) + "\n")
	if p.ctrl.State() == playback.Finished {
		b.WriteString("  " + successStyle().Render(Summary(p.ctrl.Result())) + "\n")
	}
	b.WriteString("\n  " + keyHints("space", "play/pause", "n", "step", "+/-", "speed", "r", "restart", "t", "theme", "esc", "back", "q", "quit") + "\n")
	return b.String()
}

func (p Player) status() string {
	state := p.ctrl.State()
	var label string
	switch state {
	case playback.Playing:
		label = successStyle().Render(AnimatedSpinner(p.frame/4) + " PLAYING")
	case playback.Paused:
		label = accentStyle().Render("❚❚ PAUSED")
	case playback.Finished:
		label = successStyle().Render("✓ FINISHED")
	default:
		label = subtleStyle().Render(strings.ToUpper(state.String()))
	}
	return fmt.Sprintf("%s  %s %d (%s)  %s %d", label,
		subtleStyle().Render("speed"), p.level, p.ctrl.Speed(),
		subtleStyle().Render("steps"), p.ctrl.Steps())
}

// Summary describes a completion value in one line.
func Summary(result any) string {
	switch r := result.(type) {
	case []int:
		return "Sorted: " + bracket(r)
	case algo.ChangeResult:
		parts := make([]string, 0, len(r.Counts))
		for _, dc := range algo.SortedCounts(r.Counts) {
			if dc[1] > 0 {
				parts = append(parts, fmt.Sprintf("%d×%d", dc[1], dc[0]))
			}
		}
		return fmt.Sprintf("Finished! %d coins used: %s", r.Coins, strings.Join(parts, " + "))
	case algo.QueenResult:
		if !r.Found {
			return fmt.Sprintf("No solution exists for N=%d.", r.N)
		}
		return "Queens at rows " + bracket(r.Rows)
	case algo.KnapsackResult:
		return fmt.Sprintf("Finished! Max Profit: %d (weight %d/%d, items %s)", r.BestProfit, r.Weight, r.Capacity, bracket(oneBased(r.Items)))
	}
	return ""
}
