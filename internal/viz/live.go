// Package viz renders a run as a live terminal view: per-generation stats,
// a fitness sparkline, and a downsampled color preview of the current
// frame.
package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Yutarop/ga-pixel-art/internal/grid"
)

const (
	previewCells    = 28
	graphWidth      = 56
	graphHeight     = 8
	historyCapacity = 600
)

type TickMsg time.Time

// Model steps the engine one generation per tick and displays progress.
type Model struct {
	engine      *grid.Engine
	generations int

	history    []float64
	stats      grid.GenStats
	checkpoint grid.Checkpoint
	hasSample  bool

	paused bool
	done   bool
}

func NewModel(engine *grid.Engine, generations int) Model {
	return Model{
		engine:      engine,
		generations: generations,
		history:     make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(30*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
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
			if !m.done {
				m.paused = !m.paused
			}
			return m, nil
		}

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tick()
		}

		m.stats = m.engine.StepGeneration()
		m.history = append(m.history, m.stats.AvgFitness)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}

		gen := m.stats.Generation
		if gen%grid.ReportInterval == 0 || gen == m.generations {
			m.checkpoint = m.engine.Checkpoint()
			m.hasSample = true
		}

		if gen >= m.generations {
			m.done = true
			return m, nil
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("ga-pixel-art"))
	b.WriteString("\n")

	preview := previewStyle.Render(renderPreview(m.engine.CurrentFrame(), previewCells))
	stats := statsStyle.Render(m.renderStats())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, preview, stats))
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("avg fitness"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	return b.String()
}

func (m Model) renderStats() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("generation", fmt.Sprintf("%d / %d", m.stats.Generation, m.generations))
	row("avg fitness", fmt.Sprintf("%.4f", m.stats.AvgFitness))
	row("perfect", fmt.Sprintf("%.2f%% (%d)", m.stats.PerfectFraction*100, m.stats.PerfectMatches))

	if m.hasSample {
		b.WriteString("\n")
		row("sample avg", fmt.Sprintf("%.4f", m.checkpoint.SampleAvg))
		row("sample max", fmt.Sprintf("%.4f", m.checkpoint.SampleMax))
		row("sample min", fmt.Sprintf("%.4f", m.checkpoint.SampleMin))
	}

	if m.done {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("done"))
	} else if m.paused {
		b.WriteString("\n")
		b.WriteString(pausedStyle.Render("paused"))
	}

	return b.String()
}

// renderPreview downsamples the frame to cells×cells and paints each cell
// as a background-colored pair of spaces.
func renderPreview(frame *image.RGBA, cells int) string {
	if frame == nil {
		return "waiting for first generation..."
	}

	size := frame.Bounds().Dx()
	if cells > size {
		cells = size
	}

	var b strings.Builder
	for cy := 0; cy < cells; cy++ {
		y := cy * size / cells
		for cx := 0; cx < cells; cx++ {
			x := cx * size / cells
			c := frame.RGBAAt(x, y)
			style := lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
			b.WriteString(style.Render("  "))
		}
		if cy < cells-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
