package embeddings

import (
	"context"
	"fmt"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// DefaultDimensions is the vector size used when none is configured.
const DefaultDimensions = 512

// New returns the embedder registered under name. Only the local hashing
// embedder ships; the index records its name so a mismatch is detected on
// load.
func New(name string, dims int) (Embedder, error) {
	switch name {
	case "", HashingName:
		return NewHashingEmbedder(dims), nil
	default:
		return nil, fmt.Errorf("unknown embedder %q", name)
	}
}
