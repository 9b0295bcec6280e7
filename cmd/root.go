package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "splatdocs",
	Short: "Bilingual 3D Gaussian Splatting course server",
	Long: `splatdocs serves a Spanish/English course on 3D Gaussian Splatting
with interactive demos, exports it as a static site, and indexes it for
semantic search from the command line or AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
