package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/capture"
	"github.com/clipsend/clipsend/internal/core/ingest"
	"github.com/clipsend/clipsend/internal/core/version"
	"github.com/clipsend/clipsend/internal/router"
	"github.com/clipsend/clipsend/internal/server"
)

func main() {
	// Command-line flags
	port := flag.Int("port", 0, "HTTP listen port (default: 8787)")
	apiKey := flag.String("api-key", "", "API key for authentication")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("clipsend-server %s\n", version.Version)
		return
	}

	// Load configuration
	cfg := config.LoadOrDefault()

	// Resolve port (flag > config > default)
	serverPort := *port
	if serverPort == 0 {
		if cfg.Server.Port > 0 {
			serverPort = cfg.Server.Port
		} else {
			serverPort = server.DefaultPort
		}
	}

	// Resolve API key (flag > config)
	key := *apiKey
	if key == "" {
		key = cfg.Server.APIKey
	}

	client := ingest.NewClient()
	rt := router.New(client, capture.NewStore())
	srv := server.NewServer(serverPort, key, rt)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
