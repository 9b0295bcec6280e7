package indexer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/embeddings"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/progress"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

// Pipeline orchestrates indexing: chunk -> diff against state -> embed -> store.
type Pipeline struct {
	embedder embeddings.Embedder
	store    vectordb.VectorStore
	dir      string
	selector filter.Set
	reporter progress.Reporter
}

// NewPipeline creates a Pipeline that persists the store and its state in dir.
func NewPipeline(embedder embeddings.Embedder, store vectordb.VectorStore, dir string) *Pipeline {
	return &Pipeline{
		embedder: embedder,
		store:    store,
		dir:      dir,
		reporter: progress.Nop{},
	}
}

// SetSelector restricts indexing to matching subsections.
func (p *Pipeline) SetSelector(sel filter.Set) {
	p.selector = sel
}

// SetReporter sets the progress reporter.
func (p *Pipeline) SetReporter(r progress.Reporter) {
	if r == nil {
		r = progress.Nop{}
	}
	p.reporter = r
}

// Run indexes every language of the catalog. Documents whose content hash
// is unchanged are skipped; documents no longer present are removed. A
// change of embedder forces a full rebuild.
func (p *Pipeline) Run(ctx context.Context, catalog *content.Catalog) (*PipelineResult, error) {
	start := time.Now()
	result := &PipelineResult{}

	state, err := LoadState(p.dir)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if len(state.Hashes) > 0 {
		usable := state.Compatible(p.embedder.Name(), p.embedder.Dimensions())
		if usable {
			if err := p.store.Load(ctx, p.dir); err != nil {
				log.Printf("indexer: %v", err)
				usable = false
			}
		}
		if !usable {
			log.Printf("indexer: index built by %s/%d is not usable, rebuilding", state.Embedder, state.Dimensions)
			state.Hashes = make(map[string]string)
			result.Rebuilt = true
		}
	}
	state.Embedder = p.embedder.Name()
	state.Dimensions = p.embedder.Dimensions()

	var docs []vectordb.Document
	for _, lang := range catalog.Languages() {
		docs = append(docs, ChunkTree(catalog.Tree(lang), p.selector)...)
	}

	seen := make(map[string]bool, len(docs))
	var changed []vectordb.Document
	for _, d := range docs {
		seen[d.ID] = true
		if state.IsChanged(d.ID, d.Metadata.ContentHash) {
			changed = append(changed, d)
		} else {
			result.Skipped++
		}
	}

	var stale []string
	for id := range state.Hashes {
		if !seen[id] {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	if len(stale) > 0 {
		if err := p.store.DeleteByIDs(ctx, stale...); err != nil {
			return result, fmt.Errorf("delete stale docs: %w", err)
		}
		for _, id := range stale {
			delete(state.Hashes, id)
		}
		result.Removed = len(stale)
	}

	p.reporter.Start(len(changed))
	for i, d := range changed {
		if err := ctx.Err(); err != nil {
			p.reporter.Finish()
			return result, err
		}
		if err := p.store.AddDocuments(ctx, []vectordb.Document{d}); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("store %s: %w", d.ID, err))
			continue
		}
		state.Hashes[d.ID] = d.Metadata.ContentHash
		result.Indexed++
		p.reporter.Update(i+1, d.ID)
	}
	p.reporter.Finish()

	if err := p.store.Persist(ctx, p.dir); err != nil {
		return result, fmt.Errorf("persist store: %w", err)
	}
	if err := state.SaveState(p.dir); err != nil {
		return result, fmt.Errorf("save state: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}
