package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the Gaussian Splatting course semantically. Returns matching subsections with their ids and an excerpt."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithString("lang",
		mcp.Description("Language of the results (default es)"),
		mcp.Enum("es", "en"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
	mcp.WithString("type_filter",
		mcp.Description("Restrict results to subsections or part overviews"),
		mcp.Enum("subsection", "part"),
	),
)

// getSubsectionTool defines the get_subsection MCP tool.
var getSubsectionTool = mcp.NewTool("get_subsection",
	mcp.WithDescription("Get the full text of one subsection, with its part, section and neighbours."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Subsection id such as \"9.2\"; a section id returns its first subsection"),
	),
	mcp.WithString("lang",
		mcp.Description("Language (default es)"),
		mcp.Enum("es", "en"),
	),
)

// listOutlineTool defines the list_outline MCP tool.
var listOutlineTool = mcp.NewTool("list_outline",
	mcp.WithDescription("List the course outline: parts, sections and subsection ids with titles."),
	mcp.WithString("lang",
		mcp.Description("Language (default es)"),
		mcp.Enum("es", "en"),
	),
	mcp.WithString("part",
		mcp.Description("Only list this part, e.g. \"part-3\""),
	),
)

// checkParityTool defines the check_parity MCP tool.
var checkParityTool = mcp.NewTool("check_parity",
	mcp.WithDescription("Validate both language trees and report subsection ids missing from either language."),
)
