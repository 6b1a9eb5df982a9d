package viewer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

// statusLines is the number of terminal rows reserved below the picture
const statusLines = 1

// frameMsg carries a finished frame back to the model
type frameMsg struct {
	id    string
	stats renderer.FrameStats
	view  string
	err   error
}

// Model is the bubbletea model for the terminal viewer. Rendering runs in a command;
// key presses and resizes are queued and applied between frames.
type Model struct {
	id        string
	sceneName string
	loop      *renderer.FrameLoop
	dollyStep float64

	pendingDolly  float64
	pendingWidth  int
	pendingHeight int

	frame    string
	stats    renderer.FrameStats
	err      error
	quitting bool
}

// NewModel creates a viewer model around an existing frame loop
func NewModel(sceneName string, loop *renderer.FrameLoop, dollyStep float64) Model {
	return Model{
		id:        uuid.New().String(),
		sceneName: sceneName,
		loop:      loop,
		dollyStep: dollyStep,
	}
}

func (m Model) Init() tea.Cmd {
	return m.renderCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "w", "=", "up":
			m.pendingDolly += m.dollyStep
		case "s", "-", "down":
			m.pendingDolly -= m.dollyStep
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Two pixels per character cell vertically
		m.pendingWidth = max(msg.Width, 1)
		m.pendingHeight = max(msg.Height-statusLines, 1) * 2

	case frameMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.frame = msg.view
		m.stats = msg.stats
		m.applyPending()
		if m.quitting {
			return m, nil
		}
		return m, m.renderCmd()
	}

	return m, nil
}

// applyPending applies queued camera moves and resizes while no frame is in flight
func (m *Model) applyPending() {
	if m.pendingDolly != 0 {
		m.loop.Dolly(m.pendingDolly)
		m.pendingDolly = 0
	}
	if m.pendingWidth > 0 && m.pendingHeight > 0 {
		m.loop.Resize(m.pendingWidth, m.pendingHeight)
		m.pendingWidth, m.pendingHeight = 0, 0
	}
}

func (m Model) renderCmd() tea.Cmd {
	id, loop := m.id, m.loop
	return func() tea.Msg {
		stats, err := loop.Step()
		if err != nil {
			return frameMsg{id: id, err: err}
		}
		return frameMsg{id: id, stats: stats, view: RenderHalfBlocks(loop.Framebuffer())}
	}
}

// Err returns the render error that stopped the viewer, if any
func (m Model) Err() error {
	return m.err
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.frame == "" {
		return fmt.Sprintf("rendering %s...\n", m.sceneName)
	}

	return fmt.Sprintf("%s\n%s | frame %d | %.1f fps | %d rays | w/s dolly, q quit",
		m.frame, m.sceneName, m.stats.Frame, m.stats.FPS(), m.stats.Trace.Rays)
}
