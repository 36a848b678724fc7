package main

import (
	"context"
	"fmt"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// loadConfig loads the named config, or the defaults when no name is given.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(name)
}

// newService builds the conversion service from config and flags.
func newService(cfg *config.Config, common commonFlags, env *Environment) (*md2docx.Service, error) {
	logger := newLogger(env.Stderr, common.quiet, common.verbose)

	store := md2docx.NewProfileStore()
	if cfg.Profiles.File != "" {
		if err := store.LoadFile(cfg.Profiles.File); err != nil {
			return nil, err
		}
	}

	return md2docx.New(
		md2docx.WithLogger(logger),
		md2docx.WithProfiles(store),
		md2docx.WithPandocPath(cfg.Pandoc.Path),
	)
}

// runConvert executes the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		printConvertUsage(env.Stderr)
		return fmt.Errorf("%w: convert takes exactly one input file", errUsage)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, flags.common, env)
	if err != nil {
		return err
	}

	metadata, err := parseMetadata(flags.metadata)
	if err != nil {
		return err
	}

	format := flags.format
	if format == "" && cfg.Defaults.Formats != "" {
		formats, parseErr := md2docx.ParseFormats(cfg.Defaults.Formats, md2docx.FormatDOCX)
		if parseErr != nil {
			return parseErr
		}
		format = formats[0]
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

	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()

	outputPath, err := svc.Convert(ctx, md2docx.Input{
		InputPath:     positional[0],
		OutputPath:    flags.output,
		Format:        format,
		TemplatePath:  template,
		Profile:       profile,
		PDFEngine:     pdfEngine,
		Metadata:      metadata,
		ExtraArgs:     flags.extraArgs,
		CleanDiagrams: flags.cleanCache,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, outputPath)
	return nil
}
