package main

import (
	"log"

	"wildwatch/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to start wildwatch: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Watcher loop failed: %v", err)
	}
}
