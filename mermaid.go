package md2docx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Diagram rendering defaults.
const (
	// DiagramCacheDirName is the render cache directory, created next to
	// the document being converted. Artifacts persist across runs.
	DiagramCacheDirName = ".mermaid-cache"

	// mermaidTimeout bounds one mmdc invocation.
	mermaidTimeout = 30 * time.Second

	defaultDiagramWidth      = 800
	defaultDiagramBackground = "white"

	// rasterScale upsamples PNG output for print-quality embedding in
	// DOCX: 300 DPI target over the 96 DPI browser baseline, rounded.
	rasterScale = "3"

	// diagramHashLength is the number of hex digits used in cache file
	// names. 64 bits of SHA-256 is plenty for per-project diagram counts.
	diagramHashLength = 16
)

// mermaidBlockPattern matches a fenced mermaid code block. Non-greedy so
// consecutive blocks match separately; case-insensitive language tag.
var mermaidBlockPattern = regexp.MustCompile("(?is)```mermaid[ \t]*\n(.*?)\n[ \t]*```")

// DiagramBlock is one fenced mermaid block found in a document.
type DiagramBlock struct {
	Full   string // the full matched block, fences included
	Source string // trimmed diagram source between the fences
}

// HasDiagramBlocks reports whether content contains at least one mermaid block.
func HasDiagramBlocks(content string) bool {
	return mermaidBlockPattern.MatchString(content)
}

// FindDiagramBlocks extracts all mermaid blocks in source order.
func FindDiagramBlocks(content string) []DiagramBlock {
	var blocks []DiagramBlock
	for _, m := range mermaidBlockPattern.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, DiagramBlock{
			Full:   m[0],
			Source: strings.TrimSpace(m[1]),
		})
	}
	return blocks
}

// diagramHash returns the content address of a diagram: two blocks with
// identical trimmed source share the hash and therefore the cached renders.
func diagramHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])[:diagramHashLength]
}

// MermaidRenderer renders mermaid blocks to images via the mermaid CLI
// (mmdc) and rewrites documents to reference them. Renders are
// content-addressed: a block whose vector and raster artifacts both exist
// in the cache is never re-rendered.
type MermaidRenderer struct {
	runner     CommandRunner
	lookPath   func(string) (string, error)
	logger     *log.Logger
	width      int
	background string
}

// NewMermaidRenderer creates a renderer with default width and background.
func NewMermaidRenderer() *MermaidRenderer {
	return &MermaidRenderer{
		runner:     ExecRunner{},
		lookPath:   exec.LookPath,
		logger:     log.New(io.Discard),
		width:      defaultDiagramWidth,
		background: defaultDiagramBackground,
	}
}

// Available reports whether the mermaid CLI can be found on the PATH.
func (r *MermaidRenderer) Available() bool {
	_, err := r.lookPath("mmdc")
	return err == nil
}

// Embed renders every mermaid block in content into cacheRoot and replaces
// each block with an image reference, relative to baseDir. PDF output
// references the vector artifact, everything else the raster one.
//
// A document without mermaid blocks is returned unchanged without touching
// the filesystem. A single failed render aborts the whole embed; callers
// choose whether to degrade to the raw blocks.
//
// The returned artifact paths include both renderings of every block, even
// though only one is referenced in-document: they form one render unit.
func (r *MermaidRenderer) Embed(ctx context.Context, content, cacheRoot, baseDir, format string) (string, []string, error) {
	blocks := FindDiagramBlocks(content)
	if len(blocks) == 0 {
		return content, nil, nil
	}

	mmdc, err := r.lookPath("mmdc")
	if err != nil {
		return "", nil, fmt.Errorf("%w: install it with: npm install -g @mermaid-js/mermaid-cli", ErrMermaidNotFound)
	}

	if err := os.MkdirAll(cacheRoot, 0o750); err != nil {
		return "", nil, fmt.Errorf("creating diagram cache %s: %w", cacheRoot, err)
	}

	rewritten := content
	artifacts := make([]string, 0, 2*len(blocks))

	for i, block := range blocks {
		hash := diagramHash(block.Source)
		vector := filepath.Join(cacheRoot, hash+".svg")
		raster := filepath.Join(cacheRoot, hash+".png")

		if fileutil.FileExists(vector) && fileutil.FileExists(raster) {
			r.logger.Debug("diagram cache hit", "hash", hash)
		} else {
			r.logger.Info("rendering diagram", "block", i+1, "of", len(blocks))
			if renderErr := r.renderBlock(ctx, mmdc, block.Source, vector, raster); renderErr != nil {
				return "", nil, fmt.Errorf("%w: block %d: %v", ErrMermaidRender, i+1, renderErr)
			}
		}

		target := vector
		if !strings.EqualFold(format, FormatPDF) {
			target = raster
		}
		ref := fmt.Sprintf("![Diagram %d](%s)", i+1, relativeTo(baseDir, target))
		rewritten = strings.Replace(rewritten, block.Full, ref, 1)

		artifacts = append(artifacts, vector, raster)
	}

	return rewritten, artifacts, nil
}

// renderBlock renders the missing artifacts for one block. The diagram
// source goes through a private temp file, removed on every exit path.
func (r *MermaidRenderer) renderBlock(ctx context.Context, mmdc, source, vector, raster string) error {
	srcPath, cleanup, err := fileutil.WriteTempFile("", source, "mmd")
	if err != nil {
		return err
	}
	defer cleanup()

	for _, out := range []string{vector, raster} {
		if fileutil.FileExists(out) {
			continue
		}
		if err := r.renderOne(ctx, mmdc, srcPath, out); err != nil {
			return err
		}
	}
	return nil
}

// renderOne runs a single mmdc invocation with a bounded wait.
func (r *MermaidRenderer) renderOne(ctx context.Context, mmdc, srcPath, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, mermaidTimeout)
	defer cancel()

	args := []string{"-i", srcPath, "-o", outPath, "-w", strconv.Itoa(r.width), "-b", r.background, "--quiet"}
	if strings.HasSuffix(outPath, ".png") {
		args = append(args, "-s", rasterScale)
	}

	_, stderr, err := r.runner.Run(ctx, mmdc, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s", mermaidTimeout)
		}
		if msg := strings.TrimSpace(stderr); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	if !fileutil.FileExists(outPath) {
		return fmt.Errorf("renderer completed but produced no file: %s", outPath)
	}
	return nil
}

// CleanupArtifacts removes rendered diagram files, ignoring already-missing
// ones. Used when a caller flags the render unit as transient instead of
// keeping the cache.
func CleanupArtifacts(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// relativeTo rewrites path relative to base with forward slashes, for use
// inside Markdown image references. Falls back to the absolute path when no
// relative form exists.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
