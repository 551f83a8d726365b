package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/moddoc/internal/config"
	"git.home.luguber.info/inful/moddoc/internal/doctype"
	"git.home.luguber.info/inful/moddoc/internal/generate"
	"git.home.luguber.info/inful/moddoc/internal/logfields"
	"git.home.luguber.info/inful/moddoc/internal/write"
)

// NewCmd generates pre-populated documentation files from titles.
type NewCmd struct {
	Assembly  []string `help:"Create an assembly from the title" placeholder:"TITLE"`
	Concept   []string `help:"Create a concept module from the title" placeholder:"TITLE"`
	Procedure []string `help:"Create a procedure module from the title" placeholder:"TITLE"`
	Reference []string `help:"Create a reference module from the title" placeholder:"TITLE"`
	Snippet   []string `help:"Create a text snippet from the title" placeholder:"TITLE"`
	IncludeIn string   `help:"Create an assembly with this title that includes the other generated files" placeholder:"TITLE"`

	AnchorPrefixes bool   `short:"A" help:"Add the content type prefix to anchors"`
	NoExamples     bool   `short:"E" help:"Generate files without the example placeholder content"`
	NoFilePrefixes bool   `short:"P" help:"Generate files without the content type prefix in file names"`
	Comments       bool   `short:"M" help:"Keep the explanatory comments in generated files"`
	Simplified     bool   `short:"S" help:"Use anchors without the context suffix"`
	TargetDir      string `short:"T" default:"." help:"Write generated files to this directory"`
	Force          bool   `help:"Overwrite existing files without asking"`
	DryRun         bool   `help:"Print generated documents instead of writing files"`
}

func (cmd *NewCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, cmd.TargetDir)
	if err != nil {
		return err
	}
	opts := cfg.GenerateOptions(cmd.TargetDir)
	// Boolean flags only move an option away from its default, so a config
	// file setting survives unless the flag was actually given.
	if cmd.AnchorPrefixes {
		opts.AnchorPrefixes = true
	}
	if cmd.NoExamples {
		opts.Examples = false
	}
	if cmd.NoFilePrefixes {
		opts.FilePrefixes = false
	}
	if cmd.Comments {
		opts.Comments = true
	}
	if cmd.Simplified {
		opts.Simplified = true
	}

	var requests []generate.Request
	add := func(t doctype.Type, titles []string) {
		for _, title := range titles {
			requests = append(requests, generate.Request{Type: t, Title: title})
		}
	}
	add(doctype.Concept, cmd.Concept)
	add(doctype.Procedure, cmd.Procedure)
	add(doctype.Reference, cmd.Reference)
	add(doctype.Snippet, cmd.Snippet)

	if cmd.IncludeIn != "" && len(cmd.Assembly) > 0 {
		return fmt.Errorf("--include-in cannot include other assemblies")
	}
	if cmd.IncludeIn != "" && len(requests) == 0 {
		return fmt.Errorf("--include-in requires at least one module to include")
	}
	if cmd.IncludeIn == "" && len(requests) == 0 && len(cmd.Assembly) == 0 {
		return fmt.Errorf("nothing to generate; give at least one title flag")
	}

	pipeline := generate.NewPipeline(opts)
	var docs []generate.Doc

	if cmd.IncludeIn != "" {
		assembly, modules, err := pipeline.GenerateAssembly(cmd.IncludeIn, requests)
		if err != nil {
			return err
		}
		docs = append(docs, modules...)
		docs = append(docs, assembly)
	} else {
		add(doctype.Assembly, cmd.Assembly)
		for _, req := range requests {
			doc, err := pipeline.Generate(req.Type, req.Title)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
	}

	writer := &write.Writer{TargetDir: cmd.TargetDir, Force: cmd.Force, DryRun: cmd.DryRun}
	for _, doc := range docs {
		slog.Debug("Generated document",
			logfields.Title(doc.Title),
			logfields.ContentType(doc.Type.String()),
			logfields.Anchor(doc.Anchor))
		if err := writer.WriteDoc(doc); err != nil {
			return err
		}
	}
	return nil
}
