package generate

import (
	"fmt"

	"git.home.luguber.info/inful/moddoc/internal/doctype"
	"git.home.luguber.info/inful/moddoc/internal/scope"
	"git.home.luguber.info/inful/moddoc/internal/slug"
)

// Pipeline generates documents under a shared scope stack, so that modules
// generated while an assembly is open derive their anchors against that
// assembly's context. One Pipeline serves one generation batch; it must not
// be shared across concurrently processed batches.
type Pipeline struct {
	opts   Options
	scopes scope.Stack
}

// NewPipeline creates a pipeline with no active scope.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Generate produces one document under the pipeline's current scope.
func (p *Pipeline) Generate(t doctype.Type, title string) (Doc, error) {
	return p.generate(t, title, nil)
}

// GenerateAssembly produces an assembly and, under its scope, the nested
// documents. The assembly's includes block lists the nested documents'
// include statements in order. The scope is entered before any nested anchor
// is computed and left once all of them are, so a later top-level Generate
// call is unaffected.
func (p *Pipeline) GenerateAssembly(title string, nested []Request) (Doc, []Doc, error) {
	modules := make([]Doc, 0, len(nested))
	includes := make([]string, 0, len(nested))

	p.scopes.Enter(baseAnchor(doctype.Assembly, title, p.opts))
	for _, req := range nested {
		doc, err := p.generate(req.Type, req.Title, nil)
		if err != nil {
			p.scopes.Leave()
			return Doc{}, nil, fmt.Errorf("generate nested %s %q: %w", req.Type, req.Title, err)
		}
		modules = append(modules, doc)
		includes = append(includes, doc.IncludeStatement)
	}
	p.scopes.Leave()

	assembly, err := p.generate(doctype.Assembly, title, includes)
	if err != nil {
		return Doc{}, nil, err
	}
	return assembly, modules, nil
}

func (p *Pipeline) generate(t doctype.Type, title string, includes []string) (Doc, error) {
	suffix := ""
	if cur, ok := p.scopes.Current(); ok {
		suffix = cur
	}
	return render(t, title, p.opts, suffix, includes)
}

// baseAnchor is the anchor without any scope suffix: the slug with an
// optional content-type prefix. It doubles as the context value an assembly
// establishes for its includes.
func baseAnchor(t doctype.Type, title string, opts Options) string {
	anchor := slug.Make(title)
	if opts.AnchorPrefixes {
		anchor = t.AnchorPrefix() + anchor
	}
	return anchor
}
