package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/customerio/htmledit/dom"
	"github.com/customerio/htmledit/internal/logging"
)

func newRewriteCommand() *cobra.Command {
	var recipePath string
	var outputPath string
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Apply a YAML recipe of edits to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRewrite(args[0], recipePath, outputPath, inPlace)
		},
	}

	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "", "path to the recipe file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write result to file instead of stdout")
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input file in place")
	_ = cmd.MarkFlagRequired("recipe")

	return cmd
}

func runRewrite(path, recipePath, outputPath string, inPlace bool) error {
	logger := logging.Default()

	recipe, err := LoadRecipe(recipePath)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := recipe.Options()
	logger.Debug("parsing", logging.FieldPath, path, logging.FieldStrategy, recipe.Strategy)
	doc := dom.Parse(string(src), opts)

	if err := recipe.Apply(doc, logger); err != nil {
		return err
	}
	out := doc.String()

	switch {
	case inPlace:
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(out), info.Mode().Perm())
	case outputPath != "":
		return os.WriteFile(outputPath, []byte(out), 0o644)
	default:
		_, err := os.Stdout.WriteString(out)
		return err
	}
}
