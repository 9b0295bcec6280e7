package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

const defaultSearchLimit = 5

// handleSearchDocs performs semantic search over the course vector index.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError("No search index found. Run `splatdocs index` to build it."), nil
	}

	limit := request.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	lang := i18n.Parse(request.GetString("lang", "")).String()
	filter := &vectordb.SearchFilter{Lang: &lang}
	if typeStr := request.GetString("type_filter", ""); typeStr != "" {
		docType := vectordb.DocumentType(typeStr)
		filter.Type = &docType
	}

	results, err := s.store.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The course may not be indexed yet. Run `splatdocs index` to index it."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetSubsection returns one subsection as markdown.
func (s *Server) handleGetSubsection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	lang := i18n.Parse(request.GetString("lang", ""))

	if target, ok := nav.SectionTarget(s.catalog.Tree(lang), id); ok {
		id = target
	}
	page := nav.Resolve(s.catalog, lang, id)
	if !page.Found {
		return mcp.NewToolResultError(fmt.Sprintf("No subsection %q in %s. %s", id, lang, page.Placeholder)), nil
	}

	return mcp.NewToolResultText(formatPage(page)), nil
}

// handleListOutline returns the course outline, optionally for one part.
func (s *Server) handleListOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tree := s.catalog.Tree(i18n.Parse(request.GetString("lang", "")))
	partID := request.GetString("part", "")

	var sb strings.Builder
	for _, p := range tree.Parts {
		if partID != "" && p.ID != partID {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s [%s]\n", p.Title, p.ID))
		if p.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", p.Description))
		}
		for _, sec := range p.Sections {
			sb.WriteString(fmt.Sprintf("  %s [%s]\n", sec.Title, sec.ID))
			for _, sub := range sec.Subsections {
				sb.WriteString(fmt.Sprintf("    %s %s\n", sub.ID, sub.Title))
			}
		}
	}
	if sb.Len() == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("No part %q in %s.", partID, tree.Lang)), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleCheckParity validates both trees and compares their id sets.
func (s *Server) handleCheckParity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, ok := content.CheckCatalog(s.catalog)
	if !ok {
		return mcp.NewToolResultError(report), nil
	}
	return mcp.NewToolResultText(report), nil
}

// formatPage renders a resolved subsection for agent consumption.
func formatPage(page nav.Page) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s %s\n\n", page.Entry.ID, page.Entry.Title))
	if page.Part != nil {
		sb.WriteString(fmt.Sprintf("Part: %s [%s]\n", page.Part.Title, page.Part.ID))
	}
	if page.Section != nil {
		sb.WriteString(fmt.Sprintf("Section: %s [%s]\n", page.Section.Title, page.Section.ID))
	}
	sb.WriteString(fmt.Sprintf("Language: %s\n", page.Lang))
	if page.Prev != nil {
		sb.WriteString(fmt.Sprintf("Previous: %s %s\n", page.Prev.ID, page.Prev.Title))
	}
	if page.Next != nil {
		sb.WriteString(fmt.Sprintf("Next: %s %s\n", page.Next.ID, page.Next.Title))
	}

	sb.WriteString("\n")
	body := page.Entry.Body
	if body.Kind == content.BodyText {
		sb.WriteString(body.Text)
		sb.WriteString("\n")
		return sb.String()
	}
	for _, blk := range body.Blocks {
		switch blk.Kind {
		case content.BlockProse:
			sb.WriteString(blk.Markdown)
		case content.BlockDemo:
			sb.WriteString(fmt.Sprintf("[Interactive demo: %s]", blk.Widget))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// formatSearchResults converts search results into a rich text format optimized
// for AI agent consumption.
func formatSearchResults(results []vectordb.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		md := r.Document.Metadata
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))

		switch md.Type {
		case vectordb.DocTypeSubsection:
			sb.WriteString(fmt.Sprintf("Subsection: %s %s\n", md.SubsectionID, md.Title))
			sb.WriteString(fmt.Sprintf("Location: %s / %s\n", md.PartID, md.SectionID))
		case vectordb.DocTypePart:
			sb.WriteString(fmt.Sprintf("Part: %s %s\n", md.PartID, md.Title))
		}
		if md.Lang != "" {
			sb.WriteString(fmt.Sprintf("Language: %s\n", md.Lang))
		}
		sb.WriteString(fmt.Sprintf("Similarity: %.1f%%\n", r.Similarity*100))

		// Content
		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
