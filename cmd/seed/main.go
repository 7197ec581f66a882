// Package main provides a tool to seed the catalog with a set of well-known
// series for local development.
//
// Usage:
//
//	DATA_PATH=~/CardVault/data go run ./cmd/seed
//	DATA_PATH=~/CardVault/data go run ./cmd/seed --engine sqlite
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cardvault/cardvault-server/internal/config"
	"github.com/cardvault/cardvault-server/internal/dto"
	apperrors "github.com/cardvault/cardvault-server/internal/errors"
	"github.com/cardvault/cardvault-server/internal/logger"
	"github.com/cardvault/cardvault-server/internal/service"
	"github.com/cardvault/cardvault-server/internal/store"
	"github.com/cardvault/cardvault-server/internal/store/sqlite"
)

var engine = flag.String("engine", config.EngineBadger, "Storage backend (badger, sqlite)")

type seedSeries struct {
	code        string
	name        string
	releaseYear int
	expansions  []string
}

var catalog = []seedSeries{
	{"BS", "Base Set", 1999, []string{"Base Set", "Jungle", "Fossil"}},
	{"NEO1", "Neo Genesis", 2000, []string{"Neo Genesis", "Neo Discovery", "Neo Revelation", "Neo Destiny"}},
	{"EX1", "Ruby & Sapphire", 2003, []string{"Ruby & Sapphire", "Sandstorm", "Dragon"}},
	{"DP1", "Diamond & Pearl", 2007, []string{"Diamond & Pearl", "Mysterious Treasures"}},
	{"BW1", "Black & White", 2011, []string{"Black & White", "Emerging Powers", "Noble Victories"}},
	{"XY1", "XY", 2014, []string{"XY", "Flashfire", "Furious Fists"}},
	{"SM1", "Sun & Moon", 2017, []string{"Sun & Moon", "Guardians Rising", "Burning Shadows"}},
	{"SWSH1", "Sword & Shield", 2020, []string{"Sword & Shield", "Rebel Clash", "Darkness Ablaze"}},
	{"SV01", "Scarlet & Violet", 2023, []string{"Scarlet & Violet", "Paldea Evolved", "Obsidian Flames", "151"}},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/CardVault/data")
	}

	fmt.Printf("Seeding %s store at: %s\n", *engine, dataPath)

	quiet := logger.New(logger.Config{Writer: io.Discard, Format: "json"})

	var (
		st  service.SeriesStore
		cls func() error
	)
	switch *engine {
	case config.EngineBadger:
		db, err := store.Open(filepath.Join(dataPath, "badger"), quiet.Logger)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		st, cls = db, db.Close
	case config.EngineSQLite:
		db, err := sqlite.Open(filepath.Join(dataPath, "cardvault.db"), quiet.Logger)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		st, cls = db, db.Close
	default:
		log.Fatalf("Unknown engine: %s", *engine)
	}
	defer func() { _ = cls() }()

	svc := service.NewSeriesService(st, quiet)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, s := range catalog {
		cmd, err := dto.NewCreateSeriesCommand(s.code, s.name, s.releaseYear, "", s.expansions)
		if err != nil {
			log.Fatalf("Invalid seed entry %s: %v", s.code, err)
		}

		series, err := svc.Create(ctx, cmd)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to create %s: %v", s.code, err)
		}
		fmt.Printf("  created %-6s %s (%s)\n", series.Code, series.Name, series.ID)
		created++
	}

	fmt.Printf("Done: %d created, %d already present\n", created, skipped)
}
