package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/customerio/htmledit/dom"
	"github.com/customerio/htmledit/internal/logging"
	"github.com/customerio/htmledit/query"
)

// Recipe is a YAML description of edits to apply to a document. Steps run
// in order; each step selects elements and applies its actions to every
// match.
type Recipe struct {
	// Strategy is "deferred" (default) or "eager".
	Strategy string `yaml:"strategy"`

	// Autofix closes unclosed elements in the output.
	Autofix bool `yaml:"autofix"`

	// RecognizeSelfClosing honors trailing slashes on non-void tags.
	RecognizeSelfClosing bool `yaml:"recognize-self-closing"`

	Steps []Step `yaml:"steps"`
}

// Step is one selector plus the actions to run on its matches.
type Step struct {
	Select string `yaml:"select"`

	SetAttr      *AttrSpec `yaml:"set-attr"`
	RemoveAttr   string    `yaml:"remove-attr"`
	InnerHTML    *string   `yaml:"inner-html"`
	OuterHTML    *string   `yaml:"outer-html"`
	AppendHTML   *string   `yaml:"append-html"`
	PrependHTML  *string   `yaml:"prepend-html"`
	InsertBefore *string   `yaml:"insert-before"`
	InsertAfter  *string   `yaml:"insert-after"`
	Rename       string    `yaml:"rename"`
	Remove       bool      `yaml:"remove"`
}

// AttrSpec names an attribute and the value to write.
type AttrSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// LoadRecipe reads and validates a recipe file.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", path, err)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", path, err)
	}
	return &r, nil
}

func (r *Recipe) validate() error {
	switch r.Strategy {
	case "", "deferred", "eager":
	default:
		return fmt.Errorf("unknown strategy %q", r.Strategy)
	}
	for i, s := range r.Steps {
		if s.Select == "" {
			return fmt.Errorf("step %d: missing select", i+1)
		}
		if s.SetAttr != nil && s.SetAttr.Name == "" {
			return fmt.Errorf("step %d: set-attr needs a name", i+1)
		}
	}
	return nil
}

// Options translates the recipe's parse settings.
func (r *Recipe) Options() dom.Options {
	opts := dom.Options{
		Autofix:              r.Autofix,
		RecognizeSelfClosing: r.RecognizeSelfClosing,
	}
	if r.Strategy == "eager" {
		opts.Strategy = dom.Eager
	}
	return opts
}

// Apply runs every step against doc.
func (r *Recipe) Apply(doc *dom.Document, logger *log.Logger) error {
	for i, step := range r.Steps {
		els, err := query.Select(doc, step.Select)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Debug("selected",
			logging.FieldStep, i+1,
			logging.FieldSelector, step.Select,
			logging.FieldMatches, len(els))
		for _, el := range els {
			if err := applyStep(doc, el, step); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, step.Select, err)
			}
		}
	}
	return nil
}

func applyStep(doc *dom.Document, el *dom.Element, s Step) error {
	if s.SetAttr != nil {
		if err := doc.SetAttribute(el, s.SetAttr.Name, s.SetAttr.Value); err != nil {
			return err
		}
	}
	if s.RemoveAttr != "" {
		if err := doc.RemoveAttribute(el, s.RemoveAttr); err != nil {
			return err
		}
	}
	if s.Rename != "" {
		if err := doc.Rename(el, s.Rename); err != nil {
			return err
		}
	}
	if s.InnerHTML != nil {
		if err := doc.SetInnerHTML(el, *s.InnerHTML); err != nil {
			return err
		}
	}
	if s.AppendHTML != nil {
		if err := doc.AppendHTML(el, *s.AppendHTML); err != nil {
			return err
		}
	}
	if s.PrependHTML != nil {
		if err := doc.PrependHTML(el, *s.PrependHTML); err != nil {
			return err
		}
	}
	if s.InsertBefore != nil {
		if err := doc.InsertHTMLBefore(el, *s.InsertBefore); err != nil {
			return err
		}
	}
	if s.InsertAfter != nil {
		if err := doc.InsertHTMLAfter(el, *s.InsertAfter); err != nil {
			return err
		}
	}
	if s.OuterHTML != nil {
		if err := doc.SetOuterHTML(el, *s.OuterHTML); err != nil {
			return err
		}
	}
	if s.Remove {
		if err := doc.RemoveNode(el); err != nil {
			return err
		}
	}
	return nil
}
