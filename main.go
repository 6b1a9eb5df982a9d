package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/df07/go-rain-city-raytracer/pkg/config"
	"github.com/df07/go-rain-city-raytracer/pkg/scene"
	"github.com/df07/go-rain-city-raytracer/pkg/viewer"
	"github.com/df07/go-rain-city-raytracer/pkg/viewer/glview"
)

// Options holds the command line overrides
type Options struct {
	Scene   string
	Mode    string
	EnvFile string
	Width   int
	Height  int
	Workers int
	NoRain  bool
}

func main() {
	opts := Options{}
	flag.StringVar(&opts.Scene, "scene", "", "Scene name (overrides RAINCITY_SCENE)")
	flag.StringVar(&opts.Mode, "mode", "window", "Front-end: 'window' or 'terminal'")
	flag.StringVar(&opts.EnvFile, "env", "", "Settings file (default: .env if present)")
	flag.IntVar(&opts.Width, "width", 0, "Frame width in window mode (0 = configured)")
	flag.IntVar(&opts.Height, "height", 0, "Frame height in window mode (0 = configured)")
	flag.IntVar(&opts.Workers, "workers", -1, "Render goroutines (0 = CPU count, -1 = configured)")
	flag.BoolVar(&opts.NoRain, "no-rain", false, "Disable the rain overlay")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	selectedScene, err := scene.NewScene(cfg.Scene)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	switch opts.Mode {
	case "terminal":
		err = viewer.Run(cfg, selectedScene)
	case "window":
		fmt.Printf("Rendering %s at %dx%d (W/= forward, S/- back, Esc quits)\n", cfg.Scene, cfg.Width, cfg.Height)
		err = glview.Run(cfg, selectedScene)
	default:
		err = fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads settings files and the environment, then applies flag overrides
func loadConfig(opts Options) (config.Config, error) {
	var files []string
	if opts.EnvFile != "" {
		files = append(files, opts.EnvFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, err
	}

	if opts.Scene != "" {
		cfg.Scene = opts.Scene
	}
	if opts.Width > 0 {
		cfg.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Height = opts.Height
	}
	if opts.Workers >= 0 {
		cfg.Workers = opts.Workers
	}
	if opts.NoRain {
		cfg.Rain = false
	}

	return cfg, cfg.Validate()
}

func showHelp() {
	fmt.Println("Rain City Raytracer")
	fmt.Println("Usage: raincity [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Settings are read from .env files and RAINCITY_* environment variables:")
	fmt.Println("  " + strings.Join([]string{
		"RAINCITY_SCENE", "RAINCITY_WIDTH", "RAINCITY_HEIGHT", "RAINCITY_FOV",
		"RAINCITY_MAX_DEPTH", "RAINCITY_WORKERS", "RAINCITY_TILE_SIZE",
		"RAINCITY_DOLLY_STEP", "RAINCITY_RAIN", "RAINCITY_PORT",
	}, "\n  "))
}
