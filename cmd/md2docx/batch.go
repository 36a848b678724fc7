package main

import (
	"context"
	"fmt"
	"time"

	md2docx "github.com/alnah/go-md2docx"
)

// timeoutConverter bounds each document conversion individually, so one
// slow LaTeX run cannot stall the rest of the batch.
type timeoutConverter struct {
	inner   md2docx.DocumentConverter
	timeout time.Duration
}

func (c *timeoutConverter) Convert(ctx context.Context, in md2docx.Input) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.inner.Convert(ctx, in)
}

// runBatch executes the batch command.
func runBatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBatchFlags(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printBatchUsage(env.Stderr)
		return fmt.Errorf("%w: batch takes exactly one input directory", errUsage)
	}
	inputDir := positional[0]

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, flags.common, env)
	if err != nil {
		return err
	}

	formatsSpec := flags.formats
	if formatsSpec == "" {
		formatsSpec = cfg.Defaults.Formats
	}
	formats, err := md2docx.ParseFormats(formatsSpec, md2docx.FormatDOCX)
	if err != nil {
		return err
	}

	template := flags.template
	if template == "" {
		template = cfg.Defaults.Template
	}
	profile := flags.profile
	if profile == "" {
		profile = cfg.Defaults.Profile
	}
	pdfEngine := flags.pdfEngine
	if pdfEngine == "" {
		pdfEngine = cfg.Defaults.PDFEngine
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = inputDir
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	batch := md2docx.NewBatchService(&timeoutConverter{inner: svc, timeout: flags.timeout}, logger)

	result, err := batch.ConvertBatch(ctx, md2docx.BatchRequest{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		Recursive:    flags.recursive,
		Overwrite:    flags.overwrite,
		Formats:      formats,
		TemplatePath: template,
		Profile:      profile,
		PDFEngine:    pdfEngine,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, result.String())
	for _, e := range result.Errors {
		fmt.Fprintf(env.Stdout, "  %s (%s): %s\n", e.Document, e.Format, e.Message)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", result.Failed)
	}
	return nil
}
