package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-rain-city-raytracer/pkg/config"
	"github.com/df07/go-rain-city-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 0, "Port to serve on (0 = configured, default 8080)")
	envFile := flag.String("env", "", "Settings file (default: .env if present)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	// Create and start web server
	webServer := server.NewServer(cfg)

	log.Printf("Rain City Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start streaming", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
