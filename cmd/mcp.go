package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/content"
	mcpserver "github.com/ziadkadry99/splatdocs/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing course
search, subsection lookup, the outline and the parity check to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the protocol; everything else goes to stderr.
		store, err := loadVectorStore(context.Background(), cfg, false)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		documents := 0
		if store != nil {
			documents = store.Count()
		}
		fmt.Fprintf(os.Stderr, "splatdocs MCP server started on stdio (documents=%d)\n", documents)

		srv := mcpserver.NewServer(content.Course(), store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
