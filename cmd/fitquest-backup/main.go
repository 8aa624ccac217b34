package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/fitquest/internal/app"
	"github.com/meltforce/fitquest/internal/backup"
	"github.com/meltforce/fitquest/internal/config"
)

// target is the data store the CLI acts on, local or remote.
type target interface {
	export() ([]byte, error)
	importDoc(doc []byte) (bool, error)
	reset() error
	summary() (backup.Document, error)
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	configPath := flag.String("config", "", "path to config file (local mode)")
	serverURL := flag.String("server", "", "FitQuest server URL (remote mode)")
	apiKey := flag.String("api-key", os.Getenv("FITQUEST_AUTH_API_KEY"), "API key for remote mode")
	exportPath := flag.String("export", "", "write a backup to this file (- for stdout)")
	importPath := flag.String("import", "", "restore profile and history from this backup file")
	doReset := flag.Bool("reset", false, "erase all data")
	yes := flag.Bool("yes", false, "confirm -reset")
	doSummary := flag.Bool("summary", false, "print a summary of the stored data")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	actions := 0
	for _, set := range []bool{*exportPath != "", *importPath != "", *doReset, *doSummary} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		fmt.Fprintf(os.Stderr, "Usage: fitquest-backup [-config config.yaml | -server URL -api-key KEY] (-export FILE | -import FILE | -reset -yes | -summary)\n")
		flag.PrintDefaults()
		return 1
	}
	if *doReset && !*yes {
		log.Error("refusing to reset without -yes")
		return 1
	}

	var t target
	if *serverURL != "" {
		t = remoteTarget{client: backup.NewClient(*serverURL, *apiKey)}
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			return 1
		}
		a, err := app.Open(context.Background(), cfg.Storage, cfg.Database, log)
		if err != nil {
			log.Error("failed to open storage", "error", err)
			return 1
		}
		defer a.Close()
		t = localTarget{svc: a.Backup}
	}

	if err := run(t, log, *exportPath, *importPath, *doReset); err != nil {
		log.Error("backup failed", "error", err)
		return 1
	}
	return 0
}

func run(t target, log *slog.Logger, exportPath, importPath string, doReset bool) error {
	switch {
	case exportPath != "":
		data, err := t.export()
		if err != nil {
			return err
		}
		if exportPath == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportPath, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", exportPath, err)
		}
		log.Info("backup written", "path", exportPath, "bytes", len(data))

	case importPath != "":
		data, err := os.ReadFile(importPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", importPath, err)
		}
		ok, err := t.importDoc(data)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not a valid backup document", importPath)
		}
		log.Info("backup restored", "path", importPath)

	case doReset:
		if err := t.reset(); err != nil {
			return err
		}
		log.Warn("all data erased")

	default:
		doc, err := t.summary()
		if err != nil {
			return err
		}
		printSummary(log, doc)
	}
	return nil
}

func printSummary(log *slog.Logger, doc backup.Document) {
	if doc.Profile == nil {
		log.Info("no profile stored")
	} else {
		log.Info("profile",
			"name", doc.Profile.Name,
			"level", doc.Profile.LevelNumber,
			"xp", doc.Profile.XP,
			"coins", doc.Profile.Coins,
		)
	}
	log.Info("data",
		"workouts", len(doc.History),
		"habit_days", len(doc.Habits),
		"achievements", len(doc.Achievements),
	)
}

type localTarget struct {
	svc *backup.Service
}

func (l localTarget) export() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.svc.WriteExport(context.Background(), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l localTarget) importDoc(doc []byte) (bool, error) {
	return l.svc.Import(context.Background(), bytes.NewReader(doc))
}

func (l localTarget) reset() error {
	return l.svc.Reset(context.Background())
}

func (l localTarget) summary() (backup.Document, error) {
	return l.svc.Export(context.Background())
}

type remoteTarget struct {
	client *backup.Client
}

func (r remoteTarget) export() ([]byte, error)            { return r.client.Export() }
func (r remoteTarget) importDoc(doc []byte) (bool, error) { return r.client.Import(doc) }
func (r remoteTarget) reset() error                       { return r.client.Reset() }
func (r remoteTarget) summary() (backup.Document, error)  { return r.client.Summary() }
