package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// errUsage marks command-line usage mistakes (exit code 2).
var errUsage = errors.New("usage error")

// defaultTimeout bounds one conversion, including LaTeX runs.
const defaultTimeout = 2 * time.Minute

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	format     string
	template   string
	profile    string
	pdfEngine  string
	metadata   []string // key=value pairs
	extraArgs  []string // passed to pandoc verbatim
	cleanCache bool
	timeout    time.Duration
}

// batchFlags holds all flags for the batch command.
type batchFlags struct {
	common    commonFlags
	output    string
	formats   string
	template  string
	profile   string
	pdfEngine string
	recursive bool
	overwrite bool
	timeout   time.Duration
}

// listFlags holds all flags for the list command.
type listFlags struct {
	common    commonFlags
	recursive bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// parseConvertFlags parses flags for the convert command.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SortFlags = false

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file path")
	fs.StringVarP(&f.format, "format", "f", "", "output format: docx or pdf")
	fs.StringVarP(&f.template, "template", "t", "", "DOCX reference template")
	fs.StringVarP(&f.profile, "profile", "p", "", "conversion profile name")
	fs.StringVar(&f.pdfEngine, "pdf-engine", "", "preferred LaTeX engine (xelatex, lualatex, pdflatex)")
	fs.StringArrayVarP(&f.metadata, "meta", "m", nil, "metadata as key=value (repeatable, overrides frontmatter)")
	fs.StringArrayVar(&f.extraArgs, "pandoc-arg", nil, "extra pandoc argument (repeatable)")
	fs.BoolVar(&f.cleanCache, "clean-diagrams", false, "remove rendered diagram files after conversion")
	fs.DurationVar(&f.timeout, "timeout", defaultTimeout, "conversion timeout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, fs.Args(), nil
}

// parseBatchFlags parses flags for the batch command.
func parseBatchFlags(args []string) (*batchFlags, []string, error) {
	f := &batchFlags{}
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SortFlags = false

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: input directory)")
	fs.StringVarP(&f.formats, "formats", "f", "", "output formats, comma-separated: docx,pdf")
	fs.StringVarP(&f.template, "template", "t", "", "DOCX reference template")
	fs.StringVarP(&f.profile, "profile", "p", "", "conversion profile name")
	fs.StringVar(&f.pdfEngine, "pdf-engine", "", "preferred LaTeX engine (xelatex, lualatex, pdflatex)")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "process subdirectories")
	fs.BoolVar(&f.overwrite, "overwrite", false, "overwrite existing output files")
	fs.DurationVar(&f.timeout, "timeout", defaultTimeout, "timeout per conversion")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, fs.Args(), nil
}

// parseListFlags parses flags for the list command.
func parseListFlags(args []string) (*listFlags, []string, error) {
	f := &listFlags{}
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SortFlags = false

	addCommonFlags(fs, &f.common)
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "process subdirectories")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, fs.Args(), nil
}

// parseMetadata turns repeated key=value flags into a map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("%w: metadata must be key=value, got %q", errUsage, pair)
		}
		meta[key] = value
	}
	return meta, nil
}
