// Package main provides a read-only inspection tool for the badger store.
// It walks the raw keyspace and reports record and index counts, which is
// handy when debugging uniqueness index drift.
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/cardvault/cardvault-server/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/CardVault/data")
	}
	dbPath := filepath.Join(dataPath, "badger")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Store Inspection ===")
	fmt.Println()

	seriesCount := 0
	codeIndexCount := 0
	nameIndexCount := 0

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			switch {
			case strings.HasPrefix(key, "idx:series:code:"):
				codeIndexCount++
			case strings.HasPrefix(key, "idx:series:name:"):
				nameIndexCount++
			case strings.HasPrefix(key, "series:"):
				err := item.Value(func(val []byte) error {
					var rec store.SeriesRecord
					if err := json.Unmarshal(val, &rec); err != nil {
						return err
					}
					seriesCount++
					fmt.Printf("  %-20s %-8s %s (%d)\n", rec.ID, rec.Code, rec.Name, rec.ReleaseYear)
					return nil
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to scan database: %v", err)
	}

	fmt.Println()
	fmt.Printf("Series records: %d\n", seriesCount)
	fmt.Printf("Code index entries: %d\n", codeIndexCount)
	fmt.Printf("Name index entries: %d\n", nameIndexCount)

	if codeIndexCount != seriesCount || nameIndexCount != seriesCount {
		fmt.Println()
		fmt.Println("WARNING: index entry counts do not match record count")
	}
}
