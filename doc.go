// Package md2docx converts Markdown documents to DOCX and PDF via Pandoc.
//
// # Quick Start
//
// Create a service and convert a document:
//
//	svc, err := md2docx.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	output, err := svc.Convert(ctx, md2docx.Input{
//	    InputPath: "report.md",
//	    Format:    md2docx.FormatDOCX,
//	})
//
// The returned path is where the converted document was written.
//
// # Conversion Pipeline
//
// Each conversion runs these stages:
//
//  1. Frontmatter extraction (title, author, date and friends become
//     Pandoc variables; dates are normalized to YYYY-MM-DD)
//  2. Mermaid diagram rendering via the mermaid CLI (mmdc), with a
//     content-addressed cache next to the document
//  3. Profile resolution (templates, Pandoc arguments, output naming)
//  4. Pandoc invocation (DOCX directly, PDF through a LaTeX engine)
//
// Diagram embedding degrades gracefully: without mmdc the fenced blocks
// stay in the document and conversion proceeds.
//
// # Profiles
//
// Profiles bundle a reference template, Pandoc arguments and an output
// naming pattern under a name. Built-ins cover German business documents
// (angebot, bericht, analyse, script); custom profiles load from YAML:
//
//	store := md2docx.NewProfileStore()
//	if err := store.LoadFile("profiles.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	svc, err := md2docx.New(md2docx.WithProfiles(store))
//
// # Batch Conversion
//
// BatchService converts whole directories, naming outputs from each
// document's frontmatter title and resolving collisions with counter
// suffixes:
//
//	batch := md2docx.NewBatchService(svc, logger)
//	result, err := batch.ConvertBatch(ctx, md2docx.BatchRequest{
//	    InputDir:  "docs",
//	    OutputDir: "out",
//	    Formats:   []string{"docx", "pdf"},
//	})
//
// # External Tools
//
// The package shells out to pandoc (required), a LaTeX engine for PDF
// output (xelatex, lualatex or pdflatex), and mmdc for diagrams
// (optional). Tool discovery failures surface as the sentinel errors
// ErrPandocNotFound, ErrEngineNotFound and ErrMermaidNotFound.
package md2docx
