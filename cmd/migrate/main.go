package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"wildwatch/internal/models"
	"wildwatch/internal/repository/sqlite"
	"wildwatch/internal/services/storage"
)

// Backfills the event database from snapshot files already on disk. Old
// snapshots carry no detection metadata, only the capture time parsed
// from detected_<timestamp>.jpg.
func main() {
	snapshotDir := flag.String("snapshots", "snapshots", "Directory containing snapshots")
	dbPath := flag.String("db", filepath.Join("data", "events.db"), "Database path")
	flag.Parse()

	fmt.Printf("Migrating snapshots from %s to database %s\n", *snapshotDir, *dbPath)

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	repo := sqlite.NewEventRepository(db)

	files, err := os.ReadDir(*snapshotDir)
	if err != nil {
		log.Fatalf("Failed to read snapshot directory: %v", err)
	}

	var events []*models.Event
	skipped := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		when, err := storage.ParseSnapshotName(file.Name())
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", file.Name(), err)
			skipped++
			continue
		}

		if existing, err := repo.GetByFilename(file.Name()); err == nil && existing != nil {
			skipped++
			continue
		}

		events = append(events, &models.Event{
			SnapshotID: uuid.NewString(),
			Filename:   file.Name(),
			Timestamp:  when,
		})
	}

	if len(events) == 0 {
		fmt.Println("No snapshots found to migrate")
		return
	}

	fmt.Printf("Inserting %d events into database...\n", len(events))
	if err := repo.InsertBatch(events); err != nil {
		log.Fatalf("Failed to insert events: %v", err)
	}

	fmt.Printf("✅ Successfully migrated %d snapshots\n", len(events))
	if skipped > 0 {
		fmt.Printf("⚠️  Skipped %d files (not snapshots or already recorded)\n", skipped)
	}

	if total, err := repo.GetTotalCount(); err == nil {
		fmt.Printf("\n📊 Total events in database: %d\n", total)
	}
}
