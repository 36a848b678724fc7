package md2docx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// documentRenderer is the rendering backend, normally Pandoc.
type documentRenderer interface {
	Render(ctx context.Context, req RenderRequest) error
}

// diagramEmbedder renders mermaid blocks into image references.
type diagramEmbedder interface {
	Available() bool
	Embed(ctx context.Context, content, cacheRoot, baseDir, format string) (string, []string, error)
}

// Service converts single Markdown documents to DOCX or PDF. It owns the
// full pipeline: frontmatter extraction, diagram embedding, profile and
// template resolution, output naming and the pandoc invocation.
type Service struct {
	renderer   documentRenderer
	embedder   diagramEmbedder
	profiles   *ProfileStore
	logger     *log.Logger
	pandocPath string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service and its components.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProfiles replaces the built-in profile store.
func WithProfiles(store *ProfileStore) Option {
	return func(s *Service) {
		if store != nil {
			s.profiles = store
		}
	}
}

// WithPandocPath points the service at an explicit pandoc executable
// instead of searching the PATH.
func WithPandocPath(path string) Option {
	return func(s *Service) { s.pandocPath = path }
}

// New creates a Service. Pandoc discovery happens here, so a missing
// executable surfaces as ErrPandocNotFound at construction time rather
// than on the first conversion.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		profiles: NewProfileStore(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		pandoc, err := NewPandoc(s.pandocPath)
		if err != nil {
			return nil, err
		}
		pandoc.SetLogger(s.logger)
		s.renderer = pandoc
	}
	if s.embedder == nil {
		embedder := NewMermaidRenderer()
		embedder.logger = s.logger
		s.embedder = embedder
	}
	return s, nil
}

// Profiles exposes the service's profile store.
func (s *Service) Profiles() *ProfileStore {
	return s.profiles
}

// Convert converts one Markdown document and returns the output path.
//
// Diagram embedding degrades gracefully: when the mermaid CLI is missing
// or a render fails, the document is converted with the raw fenced blocks
// left in place and a warning is logged.
func (s *Service) Convert(ctx context.Context, in Input) (string, error) {
	if in.InputPath == "" {
		return "", fmt.Errorf("%w: input path is empty", ErrInvalidInput)
	}
	info, err := os.Stat(in.InputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s does not exist", ErrInvalidInput, in.InputPath)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidInput, in.InputPath)
	}
	if !strings.EqualFold(filepath.Ext(in.InputPath), ".md") {
		s.logger.Warn("input file does not have .md extension", "file", in.InputPath)
	}

	fm, body, err := ReadDocument(in.InputPath)
	if err != nil {
		return "", err
	}
	if fm != nil && fm.Date != "" {
		if _, ok := dateutil.Normalize(fm.Date); !ok {
			s.logger.Warn("unrecognized date kept verbatim", "date", fm.Date)
		}
	}

	var profile *Profile
	if in.Profile != "" {
		profile, err = s.profiles.Get(in.Profile)
		if err != nil {
			return "", err
		}
		s.logger.Info("using profile", "profile", profile.Name)
	}

	format, err := s.resolveFormat(in.Format, profile)
	if err != nil {
		return "", err
	}

	renderInput := in.InputPath
	baseDir := filepath.Dir(in.InputPath)

	if HasDiagramBlocks(body) {
		processed, artifacts, embedErr := s.embedDiagrams(ctx, body, baseDir, format)
		if embedErr != nil {
			s.logger.Warn("diagram embedding failed, converting with raw blocks", "error", embedErr)
		} else if processed != body {
			tempPath, cleanup, tempErr := fileutil.WriteTempFile(baseDir, processed, "md")
			if tempErr != nil {
				return "", fmt.Errorf("writing processed document: %w", tempErr)
			}
			defer cleanup()
			renderInput = tempPath

			if in.CleanDiagrams {
				defer CleanupArtifacts(artifacts)
			}
		}
	}

	variables := fm.Variables()
	for key, value := range in.Metadata {
		if prev, clash := variables[key]; clash {
			s.logger.Debug("frontmatter value overridden", "key", key, "frontmatter", prev, "explicit", value)
		}
		variables[key] = value
	}

	template := s.resolveTemplate(in.TemplatePath, profile, baseDir)

	outputPath, err := s.resolveOutputPath(in, fm, profile, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	var args []string
	if profile != nil {
		args = profile.Args()
	}
	args = append(args, in.ExtraArgs...)

	s.logger.Info("converting",
		"input", filepath.Base(in.InputPath),
		"output", filepath.Base(outputPath),
		"format", format)

	err = s.renderer.Render(ctx, RenderRequest{
		InputPath:    renderInput,
		OutputPath:   outputPath,
		Format:       format,
		TemplatePath: template,
		Variables:    variables,
		ExtraArgs:    args,
		PDFEngine:    in.PDFEngine,
	})
	if err != nil {
		return "", err
	}
	return outputPath, nil
}

// resolveFormat applies the precedence explicit > profile default > docx.
func (s *Service) resolveFormat(explicit string, profile *Profile) (string, error) {
	if explicit != "" {
		format := strings.ToLower(explicit)
		if !ValidFormat(format) {
			return "", fmt.Errorf("%w: %q (valid: %s)",
				ErrUnsupportedFormat, explicit, strings.Join(SupportedFormats, ", "))
		}
		return format, nil
	}
	if profile != nil {
		return profile.Formats()[0], nil
	}
	return FormatDOCX, nil
}

// embedDiagrams runs the diagram pipeline for one document. A missing
// mermaid CLI is reported as an error for the caller to degrade on.
func (s *Service) embedDiagrams(ctx context.Context, body, baseDir, format string) (string, []string, error) {
	if !s.embedder.Available() {
		return "", nil, fmt.Errorf("%w: install it with: npm install -g @mermaid-js/mermaid-cli", ErrMermaidNotFound)
	}
	cacheRoot := filepath.Join(baseDir, DiagramCacheDirName)
	return s.embedder.Embed(ctx, body, cacheRoot, baseDir, format)
}

// resolveTemplate applies the precedence explicit > profile. Templates
// that cannot be found are dropped with a warning rather than failing the
// conversion.
func (s *Service) resolveTemplate(explicit string, profile *Profile, baseDir string) string {
	if explicit != "" {
		resolved := ResolveTemplatePath(explicit, baseDir)
		if !fileutil.FileExists(resolved) {
			s.logger.Warn("template not found, continuing without it", "template", explicit)
			return ""
		}
		return resolved
	}
	if profile != nil {
		if resolved := profile.TemplatePath(baseDir); resolved != "" {
			return resolved
		}
		if profile.DefaultTemplate != "" {
			s.logger.Warn("profile template not found, continuing without it",
				"profile", profile.Name, "template", profile.DefaultTemplate)
		}
	}
	return ""
}

// resolveOutputPath applies the precedence explicit > profile naming
// pattern > input path with swapped extension.
func (s *Service) resolveOutputPath(in Input, fm *Frontmatter, profile *Profile, format string) (string, error) {
	if in.OutputPath != "" {
		if info, err := os.Stat(in.OutputPath); err == nil && info.IsDir() {
			return "", fmt.Errorf("%w: output path is a directory: %s", ErrInvalidInput, in.OutputPath)
		}
		return in.OutputPath, nil
	}
	if profile != nil && profile.OutputNaming != "" && fm != nil && fm.Title != "" {
		filename := OutputFilename(in.InputPath, fm.Title, profile.OutputNaming, format)
		return filepath.Join(filepath.Dir(in.InputPath), filename), nil
	}
	return DefaultOutputPath(in.InputPath, format), nil
}
