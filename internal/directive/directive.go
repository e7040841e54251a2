// Package directive parses and executes the HCL blocks embedded in
// tutorial chapters. Block order is preserved exactly as written, since
// directives mutate shared state and execute strictly sequentially.
package directive

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/agentic-research/codebook/api"
	"github.com/agentic-research/codebook/internal/engine"
	"github.com/agentic-research/codebook/internal/fragment"
)

// Kind discriminates the directive variants.
type Kind int

const (
	KindAppend Kind = iota
	KindPrepend
	KindReplace
)

// Directive is one decoded block. Exactly one of Accumulate or Replace is
// set, according to Kind.
type Directive struct {
	Kind       Kind
	Accumulate *api.AccumulateDirective
	Replace    *api.ReplaceDirective
	DefRange   hcl.Range
}

// File returns the directive's target file path.
func (d Directive) File() string {
	if d.Kind == KindReplace {
		return d.Replace.File
	}
	return d.Accumulate.File
}

// Parse decodes a directive document. filename is used only for
// diagnostics (typically "<chapter>.md:<line>").
func Parse(src []byte, filename string) ([]Directive, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse directives: %s", diags.Error())
	}

	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse directives: unexpected body type %T", f.Body)
	}

	var out []Directive
	for _, block := range body.Blocks {
		switch block.Type {
		case "append", "prepend":
			var d api.AccumulateDirective
			if diags := gohcl.DecodeBody(block.Body, nil, &d); diags.HasErrors() {
				return nil, fmt.Errorf("decode %s block at %s: %s", block.Type, block.DefRange(), diags.Error())
			}
			kind := KindAppend
			if block.Type == "prepend" {
				kind = KindPrepend
			}
			out = append(out, Directive{Kind: kind, Accumulate: &d, DefRange: block.DefRange()})
		case "replace":
			var d api.ReplaceDirective
			if diags := gohcl.DecodeBody(block.Body, nil, &d); diags.HasErrors() {
				return nil, fmt.Errorf("decode replace block at %s: %s", block.DefRange(), diags.Error())
			}
			if _, err := fragment.ParseSection(d.Section); err != nil {
				return nil, fmt.Errorf("replace block at %s: %w", block.DefRange(), err)
			}
			out = append(out, Directive{Kind: KindReplace, Replace: &d, DefRange: block.DefRange()})
		default:
			return nil, fmt.Errorf("unknown directive %q at %s", block.Type, block.DefRange())
		}
	}
	return out, nil
}

// Snippet is the display output of one executed directive, destined for
// verbatim inclusion in the rendered chapter.
type Snippet struct {
	File string
	// Text is the delta render for append/prepend directives.
	Text string
	// Replace carries the before/between/after parts for replace
	// directives, so callers can fence the halves separately.
	Replace *engine.ReplaceResult
}

// Execute runs the directives in order against e and collects their
// display snippets. The first failing directive aborts execution.
func Execute(e *engine.Engine, ds []Directive) ([]Snippet, error) {
	snippets := make([]Snippet, 0, len(ds))
	for _, d := range ds {
		switch d.Kind {
		case KindAppend, KindPrepend:
			p := payloadOf(d.Accumulate)
			var (
				text string
				err  error
			)
			if d.Kind == KindAppend {
				text, err = e.Append(d.Accumulate.File, p)
			} else {
				text, err = e.Prepend(d.Accumulate.File, p)
			}
			if err != nil {
				return nil, fmt.Errorf("directive at %s: %w", d.DefRange, err)
			}
			snippets = append(snippets, Snippet{File: d.Accumulate.File, Text: text})
		case KindReplace:
			r := d.Replace
			section, err := fragment.ParseSection(r.Section)
			if err != nil {
				return nil, fmt.Errorf("directive at %s: %w", d.DefRange, err)
			}
			matcher, err := matcherOf(r)
			if err != nil {
				return nil, fmt.Errorf("directive at %s: %w", d.DefRange, err)
			}
			res, err := e.Replace(r.File, section, matcher, fragment.Fragment(r.With), r.Between)
			if err != nil {
				return nil, fmt.Errorf("directive at %s: %w", d.DefRange, err)
			}
			snippets = append(snippets, Snippet{File: r.File, Replace: res})
		}
	}
	return snippets, nil
}

func matcherOf(r *api.ReplaceDirective) (engine.Matcher, error) {
	if r.Literal {
		return engine.MatchLiteral(r.Match), nil
	}
	return engine.MatchRegexp(r.Match)
}

func payloadOf(d *api.AccumulateDirective) engine.Payload {
	p := engine.Payload{}
	add := func(s fragment.Section, vals []string) {
		if len(vals) == 0 {
			return
		}
		frags := make([]fragment.Fragment, len(vals))
		for i, v := range vals {
			frags[i] = fragment.Fragment(v)
		}
		p[s] = frags
	}
	add(fragment.ModuleDocs, d.ModuleDocs)
	add(fragment.ModDeclarations, d.ModDeclarations)
	add(fragment.Imports, d.Imports)
	add(fragment.Code, d.Code)
	add(fragment.TestImports, d.TestImports)
	add(fragment.TestCode, d.TestCode)
	return p
}
