package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	applog "github.com/puassist/backend/internal/infrastructure/log"
	"github.com/puassist/backend/internal/wire"
)

func main() {
	var (
		corpus = flag.String("corpus", "", "Path to the extracted PDF JSON (defaults to indexer.corpus_path)")
		watch  = flag.Bool("watch", false, "Keep running and re-index when the corpus file changes")
		force  = flag.Bool("force", false, "Re-index even if the corpus has not changed since the last run")
	)
	flag.Parse()

	applog.Init(nil)
	logger := applog.NewModuleLogger("cmd", "indexer")

	app, cleanup, err := wire.InitializeIndexer()
	if err != nil {
		logger.Error("Failed to initialize indexer", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	path := *corpus
	if path == "" {
		path = app.CorpusPath()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *force || app.Metadata.NeedsReindex(path) {
		if err := app.Reindex(ctx, path); err != nil {
			logger.Error("Indexing failed", "path", path, "error", err)
			if !*watch {
				cleanup()
				os.Exit(1)
			}
		}
	} else {
		logger.Info("Corpus unchanged since last run, skipping", "path", path, "indexed_at", app.Metadata.LastIndexedAt())
	}

	if *watch {
		if err := app.Watch(ctx, path); err != nil {
			logger.Error("Watch failed", "error", err)
			cleanup()
			os.Exit(1)
		}
	}
}
