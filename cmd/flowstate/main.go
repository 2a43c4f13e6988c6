package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mulino/flowstate/internal/config"
	"github.com/mulino/flowstate/internal/db"
	"github.com/mulino/flowstate/internal/diag"
	"github.com/mulino/flowstate/internal/remote"
	"github.com/mulino/flowstate/internal/store"
	"github.com/mulino/flowstate/internal/tags"
	"github.com/mulino/flowstate/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	taskClient, tagClient, closer, err := openBackend(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	diagLog, diagFile := openDiagLog(cfg)
	if diagFile != nil {
		defer func() { _ = diagFile.Close() }()
	}

	st := store.New(taskClient, cfg.Account.Email, store.WithLogger(diagLog))
	defer st.Wait()

	app := ui.NewApp(st, tags.NewManager(tagClient, st, cfg.Account.Email), cfg)
	return app.Execute()
}

type closer interface {
	Close() error
}

// diagLogName is the background-write diagnostic log, kept next to the
// local database when one is configured.
const diagLogName = "flowstate-diag.log"

// openDiagLog opens the diagnostic sink for background write failures.
// When it cannot be opened the store runs with a no-op logger instead of
// failing startup.
func openDiagLog(cfg *config.Config) (*diag.Logger, *os.File) {
	dir := os.TempDir()
	if cfg.Storage.DBPath != "" {
		dir = filepath.Dir(cfg.Storage.DBPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil
		}
	}
	f, err := os.OpenFile(filepath.Join(dir, diagLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil
	}
	return diag.New(f), f
}

// openBackend picks the task service: the HTTP API when one is
// configured, local SQLite otherwise.
func openBackend(cfg *config.Config) (remote.Client, remote.TagClient, closer, error) {
	if cfg.UseRemote() {
		client := remote.NewHTTPClient(cfg.Remote.BaseURL)
		return client, client, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("creating data directory: %w", err)
	}
	local, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return local, local, local, nil
}
