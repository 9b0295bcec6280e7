package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

// ChunkTree converts a content tree into vector store documents: one per
// selected subsection plus one overview per part with a selected subsection.
func ChunkTree(t *content.Tree, sel filter.Set) []vectordb.Document {
	var docs []vectordb.Document
	now := time.Now()
	lang := string(t.Lang)

	for _, p := range t.Parts {
		var outline []string
		for _, s := range p.Sections {
			for _, sub := range s.Subsections {
				if !sel.Match(filter.Path(p.ID, s.ID, sub.ID)) {
					continue
				}
				outline = append(outline, fmt.Sprintf("- %s %s", sub.ID, sub.Title))

				text := subsectionText(p, s, sub)
				docs = append(docs, vectordb.Document{
					ID:      vectordb.DocumentID(lang, sub.ID),
					Content: text,
					Metadata: vectordb.DocumentMetadata{
						Lang:         lang,
						PartID:       p.ID,
						SectionID:    s.ID,
						SubsectionID: sub.ID,
						Title:        sub.Title,
						Type:         vectordb.DocTypeSubsection,
						ContentHash:  hash(text),
						LastUpdated:  now,
					},
				})
			}
		}
		if len(outline) == 0 {
			continue
		}

		var parts []string
		parts = append(parts, p.Title)
		if p.Description != "" {
			parts = append(parts, p.Description)
		}
		parts = append(parts, outline...)
		text := strings.Join(parts, "\n")
		docs = append(docs, vectordb.Document{
			ID:      vectordb.PartDocumentID(lang, p.ID),
			Content: text,
			Metadata: vectordb.DocumentMetadata{
				Lang:        lang,
				PartID:      p.ID,
				Title:       p.Title,
				Type:        vectordb.DocTypePart,
				ContentHash: hash(text),
				LastUpdated: now,
			},
		})
	}
	return docs
}

func subsectionText(p content.Part, s content.Section, sub content.Subsection) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s: %s", sub.ID, sub.Title))
	parts = append(parts, fmt.Sprintf("%s > %s", p.Title, s.Title))
	if body := strings.TrimSpace(sub.Body.PlainText()); body != "" {
		parts = append(parts, body)
	}
	for _, k := range sub.Body.Widgets() {
		parts = append(parts, fmt.Sprintf("Interactive demo: %s", k))
	}
	return strings.Join(parts, "\n\n")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
