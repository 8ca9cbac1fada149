// Package main is the entry point for the random article service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wikiroam/randomarticle/internal/app"
)

var (
	// version can be set at build time via -ldflags
	version = "dev"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("randomarticle version %s\n", version)
		os.Exit(0)
	}

	application, err := app.New(app.Options{
		ConfigPath: *configPath,
		Version:    version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	runErr := application.Run(context.Background())
	if closeErr := application.Close(); closeErr != nil {
		log.Printf("Cleanup error: %v", closeErr)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
