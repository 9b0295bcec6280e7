package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/splatdocs/internal/config"
	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/session"
)

func TestCheckParity(t *testing.T) {
	var out bytes.Buffer
	if err := checkParity(content.Course(), true, &out); err != nil {
		t.Fatalf("built-in course should pass strict parity: %v", err)
	}

	lopsided := content.NewCatalog(content.Spanish(), &content.Tree{Lang: i18n.English})
	if err := checkParity(lopsided, true, &out); err == nil {
		t.Error("strict parity should refuse divergent trees")
	}

	out.Reset()
	if err := checkParity(lopsided, false, &out); err != nil {
		t.Fatalf("non-strict parity should only warn: %v", err)
	}
	if !strings.Contains(out.String(), "Warning") {
		t.Errorf("expected a warning, got %q", out.String())
	}
}

func TestOpenSessionStore(t *testing.T) {
	cfg := config.DefaultConfig()
	store, closeFn, err := openSessionStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*session.MemoryStore); !ok {
		t.Errorf("default store = %T", store)
	}
	if err := closeFn(); err != nil {
		t.Error(err)
	}

	cfg.Session.Store = config.SessionSQLite
	cfg.Session.DBPath = filepath.Join(t.TempDir(), "state", "sessions.db")
	store, closeFn, err = openSessionStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if _, ok := store.(*session.SQLStore); !ok {
		t.Errorf("sqlite store = %T", store)
	}
}

func TestLoadVectorStoreMissingIndex(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()

	store, err := loadVectorStore(context.Background(), cfg, false)
	if err != nil || store != nil {
		t.Errorf("optional load: store=%v err=%v", store, err)
	}
	if _, err := loadVectorStore(context.Background(), cfg, true); err == nil {
		t.Error("required load should fail without an index")
	}
}
