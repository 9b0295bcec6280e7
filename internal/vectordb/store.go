package vectordb

import "context"

// VectorStore defines the interface for storing and searching documents by embeddings.
type VectorStore interface {
	// AddDocuments adds or updates documents in the store.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search performs a semantic search using the query text.
	Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error)

	// GetByID returns a single document, or false when it is absent.
	GetByID(ctx context.Context, id string) (Document, bool, error)

	// DeleteByIDs removes the given documents.
	DeleteByIDs(ctx context.Context, ids ...string) error

	// DeleteByLang removes every document of one language.
	DeleteByLang(ctx context.Context, lang string) error

	// Persist saves the store's data to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of documents in the store.
	Count() int
}
