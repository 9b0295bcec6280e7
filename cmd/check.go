package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the course trees and bilingual parity",
	Long: `Checks that every part, section and subsection id is present and unique
in each language, and that Spanish and English expose the same subsection
ids. With --strict (or strict_parity in the config) a divergence exits
non-zero.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false, "fail when the languages diverge")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	strict := cfg.StrictParity
	if cmd.Flags().Changed("strict") {
		strict, _ = cmd.Flags().GetBool("strict")
	}

	report, ok := content.CheckCatalog(content.Course())
	fmt.Print(report)
	if ok {
		return nil
	}
	if strict {
		return fmt.Errorf("bilingual parity check failed")
	}
	fmt.Fprintln(os.Stderr, "Warning: languages diverge (run with --strict to fail)")
	return nil
}
