package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/safar/go-paper-store/internal/config"
	"github.com/safar/go-paper-store/internal/database"
)

func main() {
	migrationDir := flag.String("dir", "migrations", "directory holding *.up.sql / *.down.sql files")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: go run scripts/run_migrations.go [-dir migrations] [up|down]")
	}

	direction := flag.Arg(0)
	if direction != "up" && direction != "down" {
		log.Fatal("Direction must be 'up' or 'down'")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	files, err := migrationFiles(*migrationDir, direction)
	if err != nil {
		log.Fatalf("Read migration directory: %v", err)
	}

	ctx := context.Background()
	for _, filename := range files {
		content, err := os.ReadFile(filepath.Join(*migrationDir, filename))
		if err != nil {
			log.Fatalf("Read migration file %s: %v", filename, err)
		}

		log.Printf("Running migration: %s", filename)
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			log.Fatalf("Execute migration %s: %v", filename, err)
		}
	}

	log.Printf("Successfully ran %d migration(s) %s", len(files), direction)
}

// migrationFiles lists the files for direction in apply order: ascending for
// up, descending for down.
func migrationFiles(dir, direction string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	suffix := fmt.Sprintf(".%s.sql", direction)
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	if direction == "down" {
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}

	return files, nil
}
