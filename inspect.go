package md2docx

import (
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Title sources reported by InspectDocument.
const (
	TitleFromFrontmatter = "frontmatter"
	TitleFromHeading     = "heading"
	TitleFromFilename    = "filename"
)

// DocumentInfo summarizes one Markdown document for listings.
type DocumentInfo struct {
	Path         string
	Title        string
	TitleSource  string
	DiagramCount int
}

// InspectDocument reads a document and reports its effective title and
// diagram count. The title comes from frontmatter when present, else the
// first level-1 heading, else the file name stem.
func InspectDocument(path string) (*DocumentInfo, error) {
	fm, body, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	info := &DocumentInfo{
		Path:         path,
		DiagramCount: len(FindDiagramBlocks(body)),
	}

	if fm != nil && fm.Title != "" {
		info.Title = fm.Title
		info.TitleSource = TitleFromFrontmatter
		return info, nil
	}
	if heading := firstHeading(body); heading != "" {
		info.Title = heading
		info.TitleSource = TitleFromHeading
		return info, nil
	}
	base := filepath.Base(path)
	info.Title = strings.TrimSuffix(base, filepath.Ext(base))
	info.TitleSource = TitleFromFilename
	return info, nil
}

// InspectDir inspects every Markdown file under dir in sorted order.
// Unreadable documents are silently omitted; callers wanting per-file
// errors inspect documents individually.
func InspectDir(dir string, recursive bool) ([]*DocumentInfo, error) {
	files, err := findMarkdownFiles(dir, recursive)
	if err != nil {
		return nil, err
	}

	infos := make([]*DocumentInfo, 0, len(files))
	for _, file := range files {
		info, inspectErr := InspectDocument(file)
		if inspectErr != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// firstHeading returns the text of the first level-1 heading, or "".
func firstHeading(body string) string {
	source := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = headingText(heading, source)
		return ast.WalkStop, nil
	})
	return strings.TrimSpace(title)
}

// headingText concatenates the text segments of a heading's children.
func headingText(heading *ast.Heading, source []byte) string {
	var sb strings.Builder
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if text, ok := child.(*ast.Text); ok {
			sb.Write(text.Segment.Value(source))
			continue
		}
		// Emphasis and similar wrappers carry their text one level down.
		for inner := child.FirstChild(); inner != nil; inner = inner.NextSibling() {
			if text, ok := inner.(*ast.Text); ok {
				sb.Write(text.Segment.Value(source))
			}
		}
	}
	return sb.String()
}
