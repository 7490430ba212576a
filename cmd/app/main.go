package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	buildOnly := flag.Bool("build", false, "populate the index and exit instead of serving")
	recreate := flag.Bool("recreate", false, "with -build: drop and recreate the index before populating it")
	flag.Parse()

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}

	if *buildOnly {
		if err := app.Build(ctx, *recreate); err != nil {
			log.Fatalf("index build failed: %v", err)
		}
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
