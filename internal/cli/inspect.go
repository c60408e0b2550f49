package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/customerio/htmledit/dom"
)

func newInspectCommand() *cobra.Command {
	var autofix bool
	var selfClosing bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the position-annotated tree of an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			doc := dom.Parse(string(src), dom.Options{
				Autofix:              autofix,
				RecognizeSelfClosing: selfClosing,
			})
			_, err = os.Stdout.WriteString(dom.Dump(doc))
			return err
		},
	}

	cmd.Flags().BoolVar(&autofix, "autofix", false, "synthesize close tags for unclosed elements")
	cmd.Flags().BoolVar(&selfClosing, "self-closing", false, "honor trailing slashes on non-void tags")

	return cmd
}
