package md2docx

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// DocumentConverter converts a single document. Satisfied by *Service.
type DocumentConverter interface {
	Convert(ctx context.Context, in Input) (string, error)
}

var _ DocumentConverter = (*Service)(nil)

// BatchRequest describes a directory conversion run.
type BatchRequest struct {
	InputDir     string
	OutputDir    string
	Recursive    bool     // descend into subdirectories, mirroring them in OutputDir
	Overwrite    bool     // replace outputs that already exist on disk
	Formats      []string // output formats per document; docx when empty
	TemplatePath string
	Profile      string
	PDFEngine    string
}

// BatchError records one failed (document, format) pair.
type BatchError struct {
	Document string
	Format   string
	Message  string
}

// BatchResult aggregates per-item outcomes of a batch run. One document
// converted to two formats counts twice.
type BatchResult struct {
	Successful int
	Skipped    int
	Failed     int
	Errors     []BatchError
}

func (r *BatchResult) String() string {
	return fmt.Sprintf("batch conversion complete: %d successful, %d skipped, %d failed",
		r.Successful, r.Skipped, r.Failed)
}

// BatchService converts every Markdown file in a directory. Failures are
// collected per item; a broken document never aborts the run.
type BatchService struct {
	converter DocumentConverter
	logger    *log.Logger
}

// NewBatchService creates a batch service over a document converter.
func NewBatchService(converter DocumentConverter, logger *log.Logger) *BatchService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BatchService{converter: converter, logger: logger}
}

// ConvertBatch converts all Markdown files under req.InputDir into
// req.OutputDir. Output names come from each document's frontmatter title;
// documents sharing a title get counter suffixes in enumeration order.
//
// The run stops early only when ctx is cancelled, returning the partial
// result together with the context error.
func (b *BatchService) ConvertBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	result := &BatchResult{}

	info, err := os.Stat(req.InputDir)
	if err != nil {
		return result, fmt.Errorf("%w: input directory does not exist: %s", ErrInvalidInput, req.InputDir)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: input path is not a directory: %s", ErrInvalidInput, req.InputDir)
	}
	if err := os.MkdirAll(req.OutputDir, 0o750); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}

	files, err := findMarkdownFiles(req.InputDir, req.Recursive)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		b.logger.Warn("no Markdown files found", "dir", req.InputDir)
		return result, nil
	}

	formats := req.Formats
	if len(formats) == 0 {
		formats = []string{FormatDOCX}
	}

	b.logger.Info("starting batch conversion",
		"files", len(files),
		"formats", strings.Join(formats, ", "))

	claims := newPathClaims()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outputDir := req.OutputDir
		if req.Recursive {
			rel, relErr := filepath.Rel(req.InputDir, file)
			if relErr == nil {
				outputDir = filepath.Join(req.OutputDir, filepath.Dir(rel))
			}
		}

		fm, _, readErr := ReadDocument(file)
		if readErr != nil {
			b.logger.Error("unreadable document", "file", file, "error", readErr)
			for _, format := range formats {
				result.Failed++
				result.Errors = append(result.Errors, BatchError{
					Document: file,
					Format:   format,
					Message:  readErr.Error(),
				})
			}
			continue
		}
		var title string
		if fm != nil {
			title = fm.Title
		}

		for _, format := range formats {
			candidate := filepath.Join(outputDir, OutputFilename(file, title, "", format))
			outputPath := claims.Claim(candidate, req.Overwrite)
			if outputPath != candidate {
				b.logger.Debug("output name collision resolved",
					"candidate", filepath.Base(candidate),
					"final", filepath.Base(outputPath))
			}

			if fileutil.FileExists(outputPath) && !req.Overwrite {
				b.logger.Info("skipping, output exists",
					"file", filepath.Base(file), "output", outputPath)
				result.Skipped++
				continue
			}

			if err := os.MkdirAll(outputDir, 0o750); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, BatchError{
					Document: file,
					Format:   format,
					Message:  err.Error(),
				})
				continue
			}

			b.logger.Info("converting",
				"file", filepath.Base(file), "output", outputPath, "format", format)

			_, convErr := b.converter.Convert(ctx, Input{
				InputPath:    file,
				OutputPath:   outputPath,
				Format:       format,
				TemplatePath: req.TemplatePath,
				Profile:      req.Profile,
				PDFEngine:    req.PDFEngine,
			})
			if convErr != nil {
				b.logger.Error("conversion failed",
					"file", filepath.Base(file), "format", format, "error", convErr)
				result.Failed++
				result.Errors = append(result.Errors, BatchError{
					Document: file,
					Format:   format,
					Message:  convErr.Error(),
				})
				continue
			}
			result.Successful++
		}
	}

	b.logger.Info(result.String())
	return result, nil
}

// findMarkdownFiles enumerates .md files in dir, sorted by path so batch
// runs are deterministic. The extension match is case-insensitive.
func findMarkdownFiles(dir string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
