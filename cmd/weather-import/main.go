package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/wxcharts/internal/dataset"
	"github.com/chrissnell/wxcharts/pkg/precip"
)

func main() {
	var (
		csvFile    = flag.String("csv", "", "Path to weather CSV file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		dateLayout = flag.String("date-layout", precip.DefaultDateLayout, "Go time layout of the date column")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Validate the CSV without writing the database")
	)
	flag.Parse()

	if *csvFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -csv <weather.csv> -sqlite <weather.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*sqliteFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
		os.Exit(1)
	}

	fmt.Printf("Importing weather records into SQLite...\n")
	fmt.Printf("  Source: %s\n", *csvFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	ctx := context.Background()

	records, err := dataset.NewCSVSource(*csvFile, *dateLayout).Records(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
		os.Exit(1)
	}

	series := precip.Aggregate(records)
	fmt.Printf("  Loaded %d days spanning %d monthly series\n", len(records), len(series))

	if *dryRun {
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing database: %v\n", err)
			os.Exit(1)
		}
	}

	src, err := dataset.NewSQLiteSource(*sqliteFile, *dateLayout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening SQLite database: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	if err := src.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating schema: %v\n", err)
		os.Exit(1)
	}

	if err := src.Insert(ctx, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error inserting records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import complete: %d records written\n", len(records))
}
