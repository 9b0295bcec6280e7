package indexer

import (
	"context"
	"strings"
	"testing"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/embeddings"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

// --- Mock Vector Store ---

type mockStore struct {
	docs      map[string]vectordb.Document
	deleted   []string
	persisted int
}

func newMockStore() *mockStore {
	return &mockStore{docs: make(map[string]vectordb.Document)}
}

func (m *mockStore) AddDocuments(_ context.Context, docs []vectordb.Document) error {
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return nil
}

func (m *mockStore) Search(_ context.Context, _ string, _ int, _ *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (m *mockStore) GetByID(_ context.Context, id string) (vectordb.Document, bool, error) {
	d, ok := m.docs[id]
	return d, ok, nil
}

func (m *mockStore) DeleteByIDs(_ context.Context, ids ...string) error {
	for _, id := range ids {
		delete(m.docs, id)
		m.deleted = append(m.deleted, id)
	}
	return nil
}

func (m *mockStore) DeleteByLang(_ context.Context, lang string) error {
	for id, d := range m.docs {
		if d.Metadata.Lang == lang {
			delete(m.docs, id)
		}
	}
	return nil
}

func (m *mockStore) Persist(_ context.Context, _ string) error {
	m.persisted++
	return nil
}

func (m *mockStore) Load(_ context.Context, _ string) error { return nil }

func (m *mockStore) Count() int { return len(m.docs) }

// --- Chunking ---

func TestChunkTree(t *testing.T) {
	docs := ChunkTree(content.English(), filter.Set{})

	subs := len(content.Flatten(content.English()))
	parts := len(content.English().Parts)
	if len(docs) != subs+parts {
		t.Fatalf("got %d docs, want %d", len(docs), subs+parts)
	}

	var pruning *vectordb.Document
	for i := range docs {
		if docs[i].ID == "en:9.2" {
			pruning = &docs[i]
		}
	}
	if pruning == nil {
		t.Fatal("en:9.2 not chunked")
	}
	md := pruning.Metadata
	if md.PartID != "part-3" || md.SectionID != "9" || md.Type != vectordb.DocTypeSubsection {
		t.Errorf("metadata = %+v", md)
	}
	if !strings.Contains(pruning.Content, "Opacity pruning") {
		t.Error("content should include the prose")
	}
	if !strings.Contains(pruning.Content, "Interactive demo: pruning") {
		t.Error("content should mention the demo")
	}
	if len(md.ContentHash) != 64 {
		t.Errorf("hash = %q", md.ContentHash)
	}
}

func TestChunkTreeSelection(t *testing.T) {
	docs := ChunkTree(content.Spanish(), filter.Set{Include: []string{"part-5/**"}})
	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	want := []string{"es:14.1", "es:15.1", "es:part-5"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestChunkHashStable(t *testing.T) {
	a := ChunkTree(content.Spanish(), filter.Set{})
	b := ChunkTree(content.Spanish(), filter.Set{})
	for i := range a {
		if a[i].Metadata.ContentHash != b[i].Metadata.ContentHash {
			t.Fatalf("hash of %s changed between runs", a[i].ID)
		}
	}
}

// --- State ---

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	state, err := LoadState(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Hashes) != 0 {
		t.Fatal("fresh state should be empty")
	}
	state.Embedder = "hashing-v1"
	state.Dimensions = 64
	state.Hashes["es:1.1"] = "abc"
	if err := state.SaveState(dir); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadState(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.IsChanged("es:1.1", "abc") {
		t.Error("unchanged hash reported as changed")
	}
	if !loaded.IsChanged("es:1.1", "def") || !loaded.IsChanged("es:1.2", "abc") {
		t.Error("changed or new ids should be reported")
	}
	if !loaded.Compatible("hashing-v1", 64) || loaded.Compatible("hashing-v1", 128) {
		t.Error("Compatible mismatch")
	}
	if loaded.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

// --- Pipeline ---

func TestPipelineIncremental(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := newMockStore()
	emb := embeddings.NewHashingEmbedder(32)

	p := NewPipeline(emb, store, dir)
	res, err := p.Run(ctx, content.Course())
	if err != nil {
		t.Fatal(err)
	}
	total := store.Count()
	if res.Indexed != total || res.Skipped != 0 {
		t.Errorf("first run: %+v, store has %d", res, total)
	}
	if store.persisted != 1 {
		t.Errorf("persisted %d times", store.persisted)
	}

	res, err = p.Run(ctx, content.Course())
	if err != nil {
		t.Fatal(err)
	}
	if res.Indexed != 0 || res.Skipped != total {
		t.Errorf("second run should skip everything: %+v", res)
	}

	p.SetSelector(filter.Set{Exclude: []string{"part-5/**"}})
	res, err = p.Run(ctx, content.Course())
	if err != nil {
		t.Fatal(err)
	}
	// 14.1, 15.1 and the part-5 overview in both languages.
	if res.Removed != 6 {
		t.Errorf("removed = %d, want 6 (deleted %v)", res.Removed, store.deleted)
	}
	if _, ok, _ := store.GetByID(ctx, "en:15.1"); ok {
		t.Error("excluded subsection still stored")
	}
}

func TestPipelineRebuildOnEmbedderChange(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := vectordb.NewChromemStore(embeddings.NewHashingEmbedder(32))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPipeline(embeddings.NewHashingEmbedder(32), store, dir)
	p.SetSelector(filter.Set{Include: []string{"part-1/**"}})
	if _, err := p.Run(ctx, content.Course()); err != nil {
		t.Fatal(err)
	}

	store2, err := vectordb.NewChromemStore(embeddings.NewHashingEmbedder(48))
	if err != nil {
		t.Fatal(err)
	}
	p2 := NewPipeline(embeddings.NewHashingEmbedder(48), store2, dir)
	p2.SetSelector(filter.Set{Include: []string{"part-1/**"}})
	res, err := p2.Run(ctx, content.Course())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Rebuilt || res.Skipped != 0 {
		t.Errorf("expected full rebuild, got %+v", res)
	}

	results, err := store2.Search(ctx, "novel view synthesis", 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Error("rebuilt index returned no results")
	}
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPipeline(embeddings.NewHashingEmbedder(16), newMockStore(), t.TempDir())
	if _, err := p.Run(ctx, content.Course()); err == nil {
		t.Error("expected cancellation error")
	}
}
