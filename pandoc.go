package md2docx

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// pdfEngineOrder is the default LaTeX engine probe order.
var pdfEngineOrder = []string{"xelatex", "lualatex", "pdflatex"}

var multiSpace = regexp.MustCompile(` +`)

// Pandoc invokes the pandoc executable to turn Markdown into DOCX or PDF.
type Pandoc struct {
	path     string
	runner   CommandRunner
	lookPath func(string) (string, error)
	logger   *log.Logger
}

// NewPandoc locates the pandoc executable. An explicit path must point at
// an existing file; an empty path searches the PATH.
func NewPandoc(pandocPath string) (*Pandoc, error) {
	p := &Pandoc{
		runner:   ExecRunner{},
		lookPath: exec.LookPath,
		logger:   log.New(io.Discard),
	}

	if pandocPath != "" {
		if !fileutil.FileExists(pandocPath) {
			return nil, fmt.Errorf("%w: no executable at %s", ErrPandocNotFound, pandocPath)
		}
		if abs, err := filepath.Abs(pandocPath); err == nil {
			pandocPath = abs
		}
		p.path = pandocPath
		return p, nil
	}

	found, err := p.lookPath("pandoc")
	if err != nil {
		return nil, fmt.Errorf("%w: install it from https://pandoc.org/installing.html", ErrPandocNotFound)
	}
	p.path = found
	return p, nil
}

// SetLogger replaces the discard logger.
func (p *Pandoc) SetLogger(logger *log.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Path returns the resolved pandoc executable path.
func (p *Pandoc) Path() string {
	return p.path
}

// RenderRequest describes one pandoc invocation.
type RenderRequest struct {
	InputPath    string
	OutputPath   string
	Format       string
	TemplatePath string            // DOCX reference template; honored for docx only
	Variables    map[string]string // passed as -V key=value, sanitized
	ExtraArgs    []string
	PDFEngine    string // preferred engine; probed first, then the default order
}

// Render runs pandoc for the request and validates that a non-empty output
// file was produced. Conversion failures wrap ErrConversion and carry
// pandoc's stderr.
func (p *Pandoc) Render(ctx context.Context, req RenderRequest) error {
	if !fileutil.FileExists(req.InputPath) {
		return fmt.Errorf("%w: %s", ErrInvalidInput, req.InputPath)
	}

	format := strings.ToLower(req.Format)
	if !ValidFormat(format) {
		return fmt.Errorf("%w: %q (valid: %s)",
			ErrUnsupportedFormat, req.Format, strings.Join(SupportedFormats, ", "))
	}

	args := []string{req.InputPath, "-f", "markdown", "-t", format, "-o", req.OutputPath}

	if format == FormatPDF {
		engine, err := p.findPDFEngine(req.PDFEngine)
		if err != nil {
			return err
		}
		args = append(args, "--pdf-engine", engine)
	}

	if req.TemplatePath != "" {
		switch format {
		case FormatDOCX:
			if fileutil.FileExists(req.TemplatePath) {
				args = append(args, "--reference-doc", req.TemplatePath)
			} else {
				p.logger.Warn("template not found, continuing without it", "template", req.TemplatePath)
			}
		case FormatPDF:
			p.logger.Info("DOCX template ignored for PDF output", "template", req.TemplatePath)
		}
	}

	for _, key := range sortedKeys(req.Variables) {
		value := sanitizeVariable(req.Variables[key])
		if value == "" {
			p.logger.Debug("skipping empty variable", "key", key)
			continue
		}
		args = append(args, "-V", fmt.Sprintf("%s=%s", key, value))
	}

	args = append(args, req.ExtraArgs...)

	p.logger.Info("running pandoc",
		"format", format,
		"input", filepath.Base(req.InputPath),
		"output", filepath.Base(req.OutputPath))
	p.logger.Debug("pandoc command", "args", strings.Join(args, " "))

	stdout, stderr, err := p.runner.Run(ctx, p.path, args...)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("%w: %s", ErrConversion, msg)
		}
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if stdout != "" {
		p.logger.Debug("pandoc stdout", "output", stdout)
	}

	info, statErr := os.Stat(req.OutputPath)
	if statErr != nil {
		return fmt.Errorf("%w: pandoc completed but wrote no output file: %s", ErrConversion, req.OutputPath)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: pandoc completed but output file is empty: %s", ErrConversion, req.OutputPath)
	}
	return nil
}

// findPDFEngine returns the first available LaTeX engine, probing the
// preferred one before the default order.
func (p *Pandoc) findPDFEngine(preferred string) (string, error) {
	probe := make([]string, 0, len(pdfEngineOrder)+1)
	if preferred != "" {
		probe = append(probe, preferred)
	}
	for _, e := range pdfEngineOrder {
		if e != preferred {
			probe = append(probe, e)
		}
	}

	for _, engine := range probe {
		if _, err := p.lookPath(engine); err == nil {
			p.logger.Debug("using PDF engine", "engine", engine)
			return engine, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s; install a LaTeX distribution (texlive-xetex, MiKTeX or MacTeX)",
		ErrEngineNotFound, strings.Join(probe, ", "))
}

// sanitizeVariable flattens a metadata value to a single trimmed line.
// Returns "" when nothing remains, which callers treat as skip.
func sanitizeVariable(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = multiSpace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
