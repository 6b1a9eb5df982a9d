package viewer

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/df07/go-rain-city-raytracer/pkg/config"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
	"github.com/df07/go-rain-city-raytracer/pkg/scene"
)

// DebugLogEnv names the file that receives log output while the viewer owns the terminal
const DebugLogEnv = "RAINCITY_DEBUG_LOG"

// Initial frame size until the terminal reports its dimensions
const (
	initialCols = 80
	initialRows = 24
)

// logLogger adapts the standard logger to core.Logger
type logLogger struct{}

func (logLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Run shows the scene in the terminal until the user quits
func Run(cfg config.Config, s *scene.Scene) error {
	if path := os.Getenv(DebugLogEnv); path != "" {
		f, err := tea.LogToFile(path, "raincity")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	loop := renderer.NewFrameLoop(s, s.Camera, initialCols, (initialRows-statusLines)*2, cfg.RenderConfig(), logLogger{})
	defer loop.Close()

	log.Printf("terminal viewer: scene %s, %d workers", s.Name, cfg.Workers)

	p := tea.NewProgram(NewModel(s.Name, loop, cfg.DollyStep), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("terminal viewer failed: %w", err)
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return fmt.Errorf("terminal viewer stopped: %w", m.Err())
	}
	return nil
}
