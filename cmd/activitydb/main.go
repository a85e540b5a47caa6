// activitydb - storage inspector for the school activity-signup app
//
// Connects using the environment configuration, seeds the collections
// on first run, and prints what is stored where.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mergington/activitydb"
)

func main() {
	var (
		backend = flag.String("backend", "", "Backend kind: auto, mongo, redis, or memory (overrides ACTIVITYDB_BACKEND)")
		verbose = flag.Bool("v", false, "Verbose (development) logging")
	)
	flag.Parse()

	cfg, err := activitydb.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	store, err := activitydb.Open(ctx, cfg, activitydb.WithLogger(logger))
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close(ctx)

	fmt.Printf("backend: %s\n\n", store.Kind())

	docs, err := store.Activities.Find(ctx, nil)
	if err != nil {
		logger.Error("failed to list activities", "error", err)
		os.Exit(1)
	}
	for _, doc := range docs {
		fmt.Printf("%-28s %s\n", doc.Key, doc.Fields["schedule"])
	}

	days, err := store.Activities.DistinctWeekdays(ctx)
	if err != nil {
		logger.Error("failed to aggregate weekdays", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nactive weekdays: %v\n", days)
}

func newLogger(verbose bool) (*activitydb.ZapLogger, error) {
	if verbose {
		return activitydb.NewDevelopmentZapLogger()
	}
	return activitydb.NewProductionZapLogger()
}
