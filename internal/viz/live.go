package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bbw7561135/Stellar-winds/internal/driver"
	"github.com/bbw7561135/Stellar-winds/internal/grid"
)

type TickMsg time.Time

// Model drives a live terminal view: every tick advances the orbital clock
// by one step, refreshes the winds and redraws the mid-plane density.
type Model struct {
	drv    *driver.Driver
	block  *grid.Block
	t      float64
	dt     float64
	fps    int
	paused bool
	err    error
}

func NewModel(drv *driver.Driver, block *grid.Block, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{drv: drv, block: block, dt: dt, fps: fps}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case TickMsg:
		if !m.paused {
			if err := m.drv.Refresh(m.block, m.t); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.t += m.dt
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	w1, w2 := m.drv.Sources()
	view := RenderSlice(MidplaneSlice(m.block, grid.Rho), "colliding winds - midplane density", 72)
	view += footerStyle.Render(fmt.Sprintf(
		"t=%.3f  phase=%.3f  separation=%.2f  [space] pause  [q] quit",
		m.t, m.drv.Phase(), w1.Center().DistanceTo(w2.Center()),
	))
	return view + "\n"
}

// Err reports a refresh failure that terminated the live view.
func (m Model) Err() error { return m.err }
