// Command wordimport loads word records with phonetics, definitions and images
// into the words collection. The web API only accepts origin and translation;
// this is how the optional fields get populated.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/wordbook/wordbook/internal/config"
	"github.com/wordbook/wordbook/internal/database"
	"github.com/wordbook/wordbook/internal/storage"
	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/internal/word/repository"
	"github.com/wordbook/wordbook/internal/word/service"
	"github.com/wordbook/wordbook/pkg/logger"
)

func main() {
	file := flag.String("file", "", "path to a JSON array of word records")
	dryRun := flag.Bool("dry-run", false, "validate and import into memory only")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))
	if *file == "" {
		logger.Fatalf("usage: wordimport -file words.json [-dry-run]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalf("open %s: %v", *file, err)
	}
	recs, err := LoadRecords(f)
	f.Close()
	if err != nil {
		logger.Fatalf("read %s: %v", *file, err)
	}

	ctx := context.Background()
	var svc service.Service
	var store *database.Store
	if *dryRun {
		svc = service.NewMemoryService()
	} else {
		store = database.NewStore(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
		defer func() { _ = store.Disconnect(ctx) }()
		svc = service.New(repository.NewMongoRepo(store, store.Timeout()))
	}

	var images ImageUploader
	if cfg.MinIO.Endpoint != "" && !*dryRun {
		s, err := storage.NewImageStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("image storage unavailable, images will be skipped: %v", err)
		} else {
			images = s
		}
	}

	sum, err := Import(ctx, svc, images, filepath.Dir(*file), recs)
	if err != nil {
		if errors.Is(err, word.ErrConnection) {
			logger.Errorf("store unavailable: %v", err)
		}
		logger.Fatalf("import aborted after %d records: %v", sum.Imported, err)
	}
	logger.Infof("imported %d words (%d skipped, dry-run=%v)", sum.Imported, sum.Failed, *dryRun)
}
