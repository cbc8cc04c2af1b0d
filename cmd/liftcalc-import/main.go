package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftcalc/internal/config"
	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/session"
	"github.com/claude/liftcalc/internal/setlog"
	"github.com/claude/liftcalc/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (PostgreSQL target)")
	stateDir := flag.String("state-dir", "", "import into the local set log in this directory instead of PostgreSQL")
	filePath := flag.String("file", "", "path to Alpha Progression CSV export (required)")
	warmups := flag.Bool("warmups", false, "also import warmup sets")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without storing anything")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftcalc-import -file export.csv [-config config.yaml | -state-dir DIR] [-warmups] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Error("opening export", "path", *filePath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if *dryRun {
		log.Info("DRY RUN mode: nothing will be stored")
		sessions, err := alpha.Parse(f)
		if err != nil {
			log.Error("parse failed", "error", err)
			os.Exit(1)
		}
		for _, s := range sessions {
			sets := 0
			for _, ex := range s.Exercises {
				for _, set := range ex.Sets {
					if *warmups || !set.Warmup {
						sets++
					}
				}
			}
			log.Info("session", "name", s.Name, "date", s.Date.Format("2006-01-02"), "exercises", len(s.Exercises), "sets", sets)
		}
		return
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, *configPath, *stateDir, log)
	if err != nil {
		log.Error("opening store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	provider := alpha.NewProvider(session.NewRegistry(store, log), log)
	result, err := provider.Ingest(ctx, f, *warmups)
	if err != nil {
		if result != nil {
			printResult(log, result)
		}
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	printResult(log, result)
	log.Info("import complete")
}

// openStore opens the local set log when stateDir is set, otherwise the
// configured PostgreSQL database with migrations applied.
func openStore(ctx context.Context, configPath, stateDir string, log *slog.Logger) (session.SetStore, func(), error) {
	if stateDir != "" {
		db, err := setlog.Open(stateDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info("set log opened", "dir", stateDir)
		return db, func() { db.Close() }, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("migrations applied")

	db, err := storage.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting database: %w", err)
	}
	log.Info("database connected")
	return db, db.Close, nil
}

func printResult(log *slog.Logger, r *ingest.Result) {
	log.Info("import stats",
		"sessions_created", r.SessionsCreated,
		"sets_received", r.SetsReceived,
		"sets_inserted", r.SetsInserted,
		"sets_skipped", r.SetsSkipped,
	)
	for _, id := range r.SessionIDs {
		log.Info("session imported", "id", id)
	}
}
