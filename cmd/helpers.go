package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ziadkadry99/splatdocs/internal/config"
	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/db"
	"github.com/ziadkadry99/splatdocs/internal/embeddings"
	"github.com/ziadkadry99/splatdocs/internal/indexer"
	"github.com/ziadkadry99/splatdocs/internal/session"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `splatdocs init` to create a config file", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates the embedder used by index, query,
// serve and mcp.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	return embeddings.New(cfg.Search.Embedder, cfg.Search.Dimensions)
}

// loadVectorStore opens the persisted index. When required is false a
// missing or incompatible index yields a nil store and a warning on stderr,
// so callers can run without semantic search.
func loadVectorStore(ctx context.Context, cfg *config.Config, required bool) (vectordb.VectorStore, error) {
	fail := func(err error) (vectordb.VectorStore, error) {
		if required {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
		return nil, nil
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fail(fmt.Errorf("creating embedder: %w", err))
	}

	dir := cfg.VectorDir()
	state, err := indexer.LoadState(dir)
	if err != nil {
		return fail(fmt.Errorf("reading index state: %w", err))
	}
	if len(state.Hashes) > 0 && !state.Compatible(embedder.Name(), embedder.Dimensions()) {
		return fail(fmt.Errorf("index in %s was built with %s/%d: run `splatdocs index` again", dir, state.Embedder, state.Dimensions))
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fail(fmt.Errorf("creating vector store: %w", err))
	}
	if err := store.Load(ctx, dir); err != nil {
		return fail(err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d documents from %s\n", store.Count(), dir)
	}
	return store, nil
}

// openSessionStore builds the configured visitor session backend. The
// returned close function is always safe to call.
func openSessionStore(cfg *config.Config) (session.Store, func() error, error) {
	switch cfg.Session.Store {
	case config.SessionSQLite:
		database, err := db.Open(cfg.Session.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening session database: %w", err)
		}
		return session.NewSQLStore(database), database.Close, nil
	default:
		return session.NewMemoryStore(), func() error { return nil }, nil
	}
}

// checkParity validates the course trees and compares the languages. With
// strict set a divergence is an error; otherwise it is reported to w.
func checkParity(catalog *content.Catalog, strict bool, w io.Writer) error {
	report, ok := content.CheckCatalog(catalog)
	if ok {
		if verbose {
			fmt.Fprint(w, report)
		}
		return nil
	}
	if strict {
		return fmt.Errorf("bilingual parity check failed:\n%s", report)
	}
	fmt.Fprintf(w, "Warning: bilingual parity check failed:\n%s", report)
	return nil
}
