package md2docx

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/textenc"
)

// delimiter marks the start and end of a frontmatter block.
const delimiter = "---"

// bom is the UTF-8 byte-order mark, tolerated before the opening delimiter.
const bom = "\uFEFF"

// keyValuePattern matches a single "key: value" frontmatter line.
// The value must be non-empty; lines that do not match are silently
// ignored. This is a deliberately narrow scanner for a closed field set,
// not a YAML parser.
var keyValuePattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+)$`)

// Frontmatter holds the recognized metadata fields of a document.
// Absent fields are empty strings; present fields are trimmed and unquoted.
type Frontmatter struct {
	Title    string
	Subtitle string
	Author   string
	Version  string
	Date     string
	Customer string
	Project  string
}

// Variables returns the non-empty fields as Pandoc variable assignments.
// Safe on a nil receiver, which stands for a document without frontmatter.
func (f *Frontmatter) Variables() map[string]string {
	vars := make(map[string]string)
	if f == nil {
		return vars
	}
	for key, value := range map[string]string{
		"title":    f.Title,
		"subtitle": f.Subtitle,
		"author":   f.Author,
		"version":  f.Version,
		"date":     f.Date,
		"customer": f.Customer,
		"project":  f.Project,
	} {
		if value != "" {
			vars[key] = value
		}
	}
	return vars
}

// ParseFrontmatter extracts the frontmatter block from document text.
// It returns the parsed metadata (nil when the document carries none) and
// the body with the block stripped. A document whose opening delimiter is
// never closed is treated as having no frontmatter: the original text is
// returned unchanged.
func ParseFrontmatter(content string) (*Frontmatter, string) {
	return parseFrontmatterAt(content, time.Now())
}

// parseFrontmatterAt is ParseFrontmatter with an injectable clock, used to
// default an explicitly empty date field to the current date.
func parseFrontmatterAt(content string, now time.Time) (*Frontmatter, string) {
	text := strings.TrimPrefix(content, bom)

	lines := strings.Split(text, "\n")
	if strings.TrimRight(lines[0], "\r") != delimiter {
		return nil, content
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		// Opening delimiter without a closing one: lenient, not an error.
		return nil, content
	}

	fm := &Frontmatter{}
	for _, line := range lines[1:end] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := keyValuePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fm.set(m[1], unquote(strings.TrimSpace(m[2])), now)
	}

	body := strings.Join(lines[end+1:], "\n")
	return fm, body
}

// set stores a recognized field; unknown keys are dropped.
func (f *Frontmatter) set(key, value string, now time.Time) {
	switch key {
	case "title":
		f.Title = value
	case "subtitle":
		f.Subtitle = value
	case "author":
		f.Author = value
	case "version":
		f.Version = value
	case "date":
		f.Date = normalizeDate(value, now)
	case "customer":
		f.Customer = value
	case "project":
		f.Project = value
	}
}

// normalizeDate converts recognized date layouts to YYYY-MM-DD, defaults an
// explicitly empty date to today, and passes everything else through.
func normalizeDate(value string, now time.Time) string {
	if value == "" {
		return dateutil.Today(now)
	}
	if normalized, ok := dateutil.Normalize(value); ok {
		return normalized
	}
	return value
}

// unquote strips one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// ReadDocument reads a Markdown file and extracts its frontmatter.
// UTF-8 is attempted first, then Latin-1; a file readable under neither
// fails with ErrFrontmatter.
func ReadDocument(path string) (*Frontmatter, string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- document path is user-provided by design
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading %s: %v", ErrFrontmatter, path, err)
	}

	content, err := textenc.Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: cannot decode %s with any encoding: %v", ErrFrontmatter, path, err)
	}

	fm, body := ParseFrontmatter(content)
	return fm, body, nil
}
