package md2docx

import (
	"fmt"
	"strings"
)

// Supported output formats.
const (
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
)

// SupportedFormats lists the output formats Pandoc is invoked with.
var SupportedFormats = []string{FormatDOCX, FormatPDF}

// ValidFormat reports whether format is a supported output format.
// The comparison is case-insensitive.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatDOCX, FormatPDF:
		return true
	}
	return false
}

// ParseFormats parses a comma-separated format list ("docx,pdf") into a
// deduplicated, lowercased slice preserving first-occurrence order.
// An empty or blank input yields [fallback]. Unknown format names fail
// with ErrUnsupportedFormat.
func ParseFormats(formats, fallback string) ([]string, error) {
	if strings.TrimSpace(formats) == "" {
		return []string{strings.ToLower(fallback)}, nil
	}

	var invalid []string
	seen := make(map[string]struct{})
	var result []string

	for _, raw := range strings.Split(formats, ",") {
		f := strings.ToLower(strings.TrimSpace(raw))
		if f == "" {
			continue
		}
		if !ValidFormat(f) {
			invalid = append(invalid, f)
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		result = append(result, f)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s (valid: %s)",
			ErrUnsupportedFormat, strings.Join(invalid, ", "), strings.Join(SupportedFormats, ", "))
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no valid format in %q", ErrUnsupportedFormat, formats)
	}
	return result, nil
}

// Input contains parameters for a single document conversion.
type Input struct {
	InputPath     string            // Markdown file to convert (required)
	OutputPath    string            // destination file; derived from input/profile when empty
	Format        string            // "docx" or "pdf"; empty resolves via profile then docx
	TemplatePath  string            // DOCX reference template; overrides the profile default
	Profile       string            // profile name; empty means no profile
	PDFEngine     string            // preferred LaTeX engine; auto-probed when empty
	Metadata      map[string]string // explicit variables; win over frontmatter per key
	ExtraArgs     []string          // extra Pandoc arguments, appended after profile args
	CleanDiagrams bool              // remove rendered diagram artifacts after conversion
}
