package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidInput      = errors.New("invalid input file")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrFrontmatter       = errors.New("frontmatter parsing failed")

	// External tool discovery errors.
	ErrPandocNotFound  = errors.New("pandoc not found")
	ErrEngineNotFound  = errors.New("no PDF engine found")
	ErrMermaidNotFound = errors.New("mermaid CLI (mmdc) not found")

	// Rendering errors.
	ErrMermaidRender = errors.New("mermaid rendering failed")
	ErrConversion    = errors.New("conversion failed")

	// Profile errors.
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)
