package vectordb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/splatdocs/internal/embeddings"
)

const (
	collectionName = "subsections"
	persistFile    = "chromem.gob.gz"
)

// ChromemStore implements VectorStore using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
	}, nil
}

// Exists reports whether a persisted store is present in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, persistFile))
	return err == nil
}

func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	if count := s.collection.Count(); limit > count && count > 0 {
		limit = count
	} else if count == 0 {
		return nil, nil
	}

	where := buildWhereClause(filter)

	results, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}

	return searchResults, nil
}

func (s *ChromemStore) GetByID(ctx context.Context, id string) (Document, bool, error) {
	doc, err := s.collection.GetByID(ctx, id)
	if err != nil {
		// chromem reports a missing id as a plain error.
		return Document{}, false, nil
	}
	return Document{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: mapToMetadata(doc.Metadata),
	}, true, nil
}

func (s *ChromemStore) DeleteByIDs(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.collection.Delete(ctx, nil, nil, ids...)
}

func (s *ChromemStore) DeleteByLang(ctx context.Context, lang string) error {
	if s.collection.Count() == 0 {
		return nil
	}
	return s.collection.Delete(ctx, map[string]string{"lang": lang}, nil)
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return s.db.ExportToFile(filepath.Join(dir, persistFile), true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	path := filepath.Join(dir, persistFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no vector index in %s: run `splatdocs index` first", dir)
	}
	if err := s.db.ImportFromFile(path, ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// metadataToMap converts DocumentMetadata to a flat map[string]string for chromem.
func metadataToMap(m DocumentMetadata) map[string]string {
	return map[string]string{
		"lang":          m.Lang,
		"part_id":       m.PartID,
		"section_id":    m.SectionID,
		"subsection_id": m.SubsectionID,
		"title":         m.Title,
		"type":          string(m.Type),
		"content_hash":  m.ContentHash,
		"last_updated":  m.LastUpdated.Format(time.RFC3339),
	}
}

// mapToMetadata converts a flat map[string]string back to DocumentMetadata.
func mapToMetadata(m map[string]string) DocumentMetadata {
	lastUpdated, _ := time.Parse(time.RFC3339, m["last_updated"])

	return DocumentMetadata{
		Lang:         m["lang"],
		PartID:       m["part_id"],
		SectionID:    m["section_id"],
		SubsectionID: m["subsection_id"],
		Title:        m["title"],
		Type:         DocumentType(m["type"]),
		ContentHash:  m["content_hash"],
		LastUpdated:  lastUpdated,
	}
}

// buildWhereClause converts a SearchFilter to a chromem where clause.
func buildWhereClause(filter *SearchFilter) map[string]string {
	if filter == nil {
		return nil
	}

	where := make(map[string]string)
	if filter.Type != nil {
		where["type"] = string(*filter.Type)
	}
	if filter.Lang != nil {
		where["lang"] = *filter.Lang
	}
	if filter.PartID != nil {
		where["part_id"] = *filter.PartID
	}

	if len(where) == 0 {
		return nil
	}
	return where
}
