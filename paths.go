package md2docx

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlugLength caps generated filename slugs.
const DefaultSlugLength = 100

// titlePlaceholder is substituted in output naming patterns.
const titlePlaceholder = "{title}"

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^\p{L}\p{N}-]`)
	slugHyphens    = regexp.MustCompile(`-+`)

	// slugFold decomposes accented characters and strips the combining
	// marks, so "Résumé" folds to "Resume".
	slugFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts text to a filesystem-safe slug: accents folded,
// lowercased, whitespace and underscores collapsed to single hyphens,
// everything but letters, digits and hyphens dropped, truncated to
// maxLength without a trailing hyphen. maxLength <= 0 means no limit.
func Slugify(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	folded, _, err := transform.String(slugFold, text)
	if err != nil {
		folded = text
	}

	s := strings.ToLower(folded)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if maxLength > 0 {
		if r := []rune(s); len(r) > maxLength {
			s = strings.TrimRight(string(r[:maxLength]), "-")
		}
	}
	return s
}

// OutputFilename computes the output filename (no directory) for a document.
//
// Precedence: pattern+title substitutes the slugified title into the
// pattern's {title} placeholder and forces the format extension; a bare
// title becomes its slug plus extension; otherwise the input file's own
// base name with the extension replaced. Pure function of its inputs.
func OutputFilename(inputPath, title, pattern, format string) string {
	ext := "." + strings.TrimPrefix(strings.ToLower(format), ".")

	if pattern != "" && title != "" {
		filename := strings.ReplaceAll(pattern, titlePlaceholder, Slugify(title, DefaultSlugLength))
		return forceExtension(filename, ext)
	}

	if title != "" {
		return Slugify(title, DefaultSlugLength) + ext
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + ext
}

// forceExtension replaces whatever extension filename carries with ext.
func forceExtension(filename, ext string) string {
	if strings.HasSuffix(filename, ext) {
		return filename
	}
	if i := strings.LastIndex(filename, "."); i >= 0 {
		filename = filename[:i]
	}
	return filename + ext
}

// ResolveTemplatePath resolves a template path against the document
// directory, then the working directory. An empty input stays empty;
// absolute paths pass through. A path that resolves nowhere is returned
// as given so the caller can decide how loudly to complain.
func ResolveTemplatePath(templatePath, baseDir string) string {
	if templatePath == "" {
		return ""
	}
	if filepath.IsAbs(templatePath) {
		return templatePath
	}

	if baseDir != "" {
		if resolved := filepath.Join(baseDir, templatePath); pathExists(resolved) {
			return resolved
		}
	}
	if pathExists(templatePath) {
		if abs, err := filepath.Abs(templatePath); err == nil {
			return abs
		}
	}
	return templatePath
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultOutputPath derives the output path for a document converted
// without an explicit destination: same directory, same stem, format
// extension.
func DefaultOutputPath(inputPath, format string) string {
	ext := filepath.Ext(inputPath)
	return fmt.Sprintf("%s.%s", strings.TrimSuffix(inputPath, ext), strings.ToLower(format))
}
