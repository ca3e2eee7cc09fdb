package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mdsim/internal/ensemble"
	"github.com/san-kum/mdsim/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	canvasWidth     = 40
	canvasHeight    = 16
	historyCapacity = 300
	stepsPerFrame   = 2
	targetStep      = 1.05
)

type TickMsg time.Time

// Model advances an ensemble in place and draws it.
type Model struct {
	ens     *ensemble.Ensemble
	sys     *md.System
	initial *md.System
	target  float64
	dt      float64
	title   string

	step    int
	last    md.Sample
	temps   []float64
	running bool
	err     error

	box    r3.Box
	canvas *Canvas
	camera *Camera
}

func NewModel(ens *ensemble.Ensemble, sys *md.System, dt float64, title string) (Model, error) {
	last, err := ens.Observe(sys, 0)
	if err != nil {
		return Model{}, err
	}
	var target float64
	if th := ens.Thermostat(); th != nil {
		target = th.Temperature()
	}
	return Model{
		ens:     ens,
		sys:     sys,
		initial: sys.Clone(),
		target:  target,
		dt:      dt,
		title:   title,
		last:    last,
		temps:   append(make([]float64, 0, historyCapacity), last.Temperature),
		running: true,
		box:     Bounds(sys.Positions),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.adjustTarget(targetStep)
		case "down", "j":
			m.adjustTarget(1 / targetStep)
		case "x":
			m.camera.Turn(0.1, 0)
		case "y":
			m.camera.Turn(0, 0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance(stepsPerFrame)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		s, err := m.ens.Advance(m.sys, m.step+1, m.dt)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.step++
		m.last = s
		m.temps = append(m.temps, s.Temperature)
		if len(m.temps) > historyCapacity {
			m.temps = m.temps[1:]
		}
	}
}

// adjustTarget is a no-op without a thermostat.
func (m *Model) adjustTarget(factor float64) {
	th := m.ens.Thermostat()
	if th == nil {
		return
	}
	if err := m.ens.SetTarget(th.Temperature() * factor); err != nil {
		m.err = err
	}
}

// reset restores the initial state and thermostat target.
func (m *Model) reset() {
	if m.target > 0 {
		if err := m.ens.SetTarget(m.target); err != nil {
			m.err = err
			return
		}
	}
	restored := m.initial.Clone()
	m.sys.Positions = restored.Positions
	m.sys.Velocities = restored.Velocities
	m.ens.ResetClock()
	m.step = 0
	m.err = nil
	if s, err := m.ens.Observe(m.sys, 0); err == nil {
		m.last = s
	}
	m.temps = append(m.temps[:0], m.last.Temperature)
}

// Step reports how many steps the view has advanced since the last reset.
func (m Model) Step() int { return m.step }

func (m Model) Err() error { return m.err }

func (m Model) View() string {
	m.camera.Draw(m.canvas, m.sys.Positions, m.box)
	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.stats())

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	if len(m.temps) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.temps,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("temperature (K)"),
		)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space: pause  up/down: target ±5%  r: reset  x/y: rotate  +/-: zoom  q: quit"))
	return b.String()
}

func (m Model) stats() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("ensemble", m.ens.Kind().String())
	row("particles", fmt.Sprintf("%d", m.sys.Len()))
	row("step", fmt.Sprintf("%d", m.step))
	row("time", fmt.Sprintf("%.4f ps", m.ens.Time()))
	row("temperature", fmt.Sprintf("%.3f K", m.last.Temperature))
	if th := m.ens.Thermostat(); th != nil {
		b.WriteString(labelStyle.Render("target") + targetStyle.Render(fmt.Sprintf("%.3f K (%s)", th.Temperature(), th.Name())) + "\n")
	}
	row("kinetic", fmt.Sprintf("%.5f kcal/mol", m.last.Kinetic))
	row("potential", fmt.Sprintf("%.5f kcal/mol", m.last.Potential))
	row("total", fmt.Sprintf("%.5f kcal/mol", m.last.Total()))

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	} else if !m.running {
		b.WriteString("\n" + pausedStyle.Render("paused"))
	}
	return b.String()
}
