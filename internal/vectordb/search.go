package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		md := r.Document.Metadata
		sb.WriteString(fmt.Sprintf("--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity))

		switch md.Type {
		case DocTypeSubsection:
			sb.WriteString(fmt.Sprintf("Subsection: %s %s [%s]\n", md.SubsectionID, md.Title, md.Lang))
			sb.WriteString(fmt.Sprintf("Location: %s / %s\n", md.PartID, md.SectionID))
		case DocTypePart:
			sb.WriteString(fmt.Sprintf("Part: %s %s [%s]\n", md.PartID, md.Title, md.Lang))
		}

		sb.WriteString("\n")
		sb.WriteString(Excerpt(r.Document.Content, 400))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// Excerpt shortens content to at most n bytes on a word boundary.
func Excerpt(content string, n int) string {
	content = strings.TrimSpace(content)
	if len(content) <= n {
		return content
	}
	cut := strings.LastIndexAny(content[:n], " \n")
	if cut <= 0 {
		cut = n
	}
	return content[:cut] + "..."
}
