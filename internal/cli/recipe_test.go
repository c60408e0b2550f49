package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/customerio/htmledit/dom"
	"github.com/customerio/htmledit/internal/cli"
	"github.com/customerio/htmledit/internal/logging"
)

const recipeYAML = `
strategy: deferred
steps:
  - select: "#hero"
    set-attr:
      name: class
      value: big
  - select: ".ad"
    remove: true
  - select: "p.lead"
    inner-html: "<b>updated</b>"
  - select: "#hero"
    rename: section
`

func TestLoadRecipe(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(recipeYAML), 0o644))

	r, err := cli.LoadRecipe(path)
	require.NoError(t, err)
	require.Len(t, r.Steps, 4)
	require.Equal(t, "deferred", r.Strategy)
	require.Equal(t, "#hero", r.Steps[0].Select)
	require.Equal(t, "big", r.Steps[0].SetAttr.Value)
	require.True(t, r.Steps[1].Remove)
	require.Equal(t, "<b>updated</b>", *r.Steps[2].InnerHTML)
}

func TestLoadRecipeRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"unknown strategy", "strategy: sometimes\nsteps: []\n"},
		{"missing select", "steps:\n  - remove: true\n"},
		{"set-attr without name", "steps:\n  - select: div\n    set-attr:\n      value: x\n"},
		{"not yaml", ":\n:::\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "recipe.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := cli.LoadRecipe(path)
			require.Error(t, err)
		})
	}
}

func TestRecipeApply(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(recipeYAML), 0o644))
	r, err := cli.LoadRecipe(path)
	require.NoError(t, err)

	src := `<div id="hero">x</div><aside class="ad">buy</aside><p class="lead">old</p>`
	doc := dom.Parse(src, r.Options())
	require.NoError(t, r.Apply(doc, logging.New("error")))

	want := `<section id="hero" class="big">x</section><p class="lead"><b>updated</b></p>`
	require.Equal(t, want, doc.String())
}

func TestRewriteCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	recipe := filepath.Join(dir, "recipe.yaml")
	output := filepath.Join(dir, "out.html")

	require.NoError(t, os.WriteFile(input, []byte(`<p class="lead">old</p>`), 0o644))
	require.NoError(t, os.WriteFile(recipe, []byte("steps:\n  - select: p.lead\n    inner-html: new\n"), 0o644))

	cmd := cli.NewRootCommand("test")
	cmd.SetArgs([]string{"rewrite", input, "--recipe", recipe, "--output", output})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, `<p class="lead">new</p>`, string(got))
}
