// Package cli provides the Cobra command structure for htmledit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/customerio/htmledit/internal/logging"
)

// NewRootCommand creates the root htmledit command with all subcommands.
func NewRootCommand(version string) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "htmledit",
		Short: "Surgical HTML rewriting that preserves the rest of the file",
		Long: `htmledit parses an HTML file into a position-annotated tree and applies
targeted edits to it: attributes, content, tag names, whole subtrees.
Only the edited bytes change; formatting, entity spellings, and even
malformed markup elsewhere in the file come through untouched.`,
		Version: version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newRewriteCommand())
	rootCmd.AddCommand(newInspectCommand())

	return rootCmd
}
