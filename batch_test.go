package md2docx

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeConverter records conversions and writes the output file so the
// resolver's disk checks see realistic state.
type fakeConverter struct {
	inputs []Input
	fail   map[string]error // keyed by input file base name
}

func (f *fakeConverter) Convert(_ context.Context, in Input) (string, error) {
	f.inputs = append(f.inputs, in)
	if err := f.fail[filepath.Base(in.InputPath)]; err != nil {
		return "", err
	}
	if err := os.WriteFile(in.OutputPath, []byte("converted"), 0o644); err != nil {
		return "", err
	}
	return in.OutputPath, nil
}

func newTestBatch(converter *fakeConverter) *BatchService {
	return NewBatchService(converter, log.New(io.Discard))
}

func writeBatchDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertBatchBasic(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "b.md", "# B\n")
	writeBatchDoc(t, inputDir, "a.md", "# A\n")

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}

	if result.Successful != 2 || result.Failed != 0 || result.Skipped != 0 {
		t.Errorf("result = %+v", result)
	}
	// Enumeration order is sorted by path.
	if filepath.Base(converter.inputs[0].InputPath) != "a.md" {
		t.Errorf("first input = %q, want a.md", converter.inputs[0].InputPath)
	}
	for _, name := range []string{"a.docx", "b.docx"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing output %s", name)
		}
	}
}

func TestConvertBatchTitleCollision(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	doc := "---\ntitle: Same Title\n---\n# Body\n"
	writeBatchDoc(t, inputDir, "first.md", doc)
	writeBatchDoc(t, inputDir, "second.md", doc)

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if result.Successful != 2 {
		t.Fatalf("result = %+v", result)
	}

	var got []string
	for _, in := range converter.inputs {
		got = append(got, filepath.Base(in.OutputPath))
	}
	want := []string{"same-title.docx", "same-title_2.docx"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("output %d = %q, want %q", i, got[i], w)
		}
	}
}

func TestConvertBatchMultipleFormats(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "doc.md", "---\ntitle: Report\n---\n# Body\n")

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Formats:   []string{"docx", "pdf"},
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if result.Successful != 2 {
		t.Fatalf("result = %+v", result)
	}

	// Same title across formats must not trigger suffixing.
	var bases []string
	for _, in := range converter.inputs {
		bases = append(bases, filepath.Base(in.OutputPath))
	}
	if bases[0] != "report.docx" || bases[1] != "report.pdf" {
		t.Errorf("outputs = %v", bases)
	}
}

func TestConvertBatchSkipsExistingOutputs(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "doc.md", "# Body\n")
	if err := os.WriteFile(filepath.Join(outputDir, "doc.docx"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}

	if result.Skipped != 1 || result.Successful != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(converter.inputs) != 0 {
		t.Errorf("converter invoked for a skipped item")
	}
	data, _ := os.ReadFile(filepath.Join(outputDir, "doc.docx"))
	if string(data) != "old" {
		t.Errorf("existing output overwritten without the flag")
	}
}

func TestConvertBatchOverwriteReplacesOutputs(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "doc.md", "# Body\n")
	if err := os.WriteFile(filepath.Join(outputDir, "doc.docx"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if result.Successful != 1 || result.Skipped != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestConvertBatchRecursiveMirrorsTree(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "top.md", "# Top\n")
	writeBatchDoc(t, inputDir, filepath.Join("sub", "nested.md"), "# Nested\n")

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Recursive: true,
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if result.Successful != 2 {
		t.Fatalf("result = %+v", result)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "sub", "nested.docx")); err != nil {
		t.Error("nested output not mirrored into subdirectory")
	}
	if _, err := os.Stat(filepath.Join(outputDir, "top.docx")); err != nil {
		t.Error("top-level output missing")
	}
}

func TestConvertBatchNonRecursiveIgnoresSubdirs(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "top.md", "# Top\n")
	writeBatchDoc(t, inputDir, filepath.Join("sub", "nested.md"), "# Nested\n")

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if result.Successful != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestConvertBatchCollectsFailures(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	writeBatchDoc(t, inputDir, "bad.md", "# Bad\n")
	writeBatchDoc(t, inputDir, "good.md", "# Good\n")

	converter := &fakeConverter{fail: map[string]error{"bad.md": ErrConversion}}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  inputDir,
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}

	if result.Successful != 1 || result.Failed != 1 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v", result.Errors)
	}
	e := result.Errors[0]
	if filepath.Base(e.Document) != "bad.md" || e.Format != "docx" || e.Message == "" {
		t.Errorf("error entry = %+v", e)
	}
}

func TestConvertBatchEmptyDirectory(t *testing.T) {
	t.Parallel()

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  t.TempDir(),
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if result.Successful != 0 || result.Failed != 0 || result.Skipped != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestConvertBatchInvalidInputDir(t *testing.T) {
	t.Parallel()

	_, err := newTestBatch(&fakeConverter{}).ConvertBatch(context.Background(), BatchRequest{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestConvertBatchCancellation(t *testing.T) {
	t.Parallel()

	inputDir := t.TempDir()
	for _, name := range []string{"a.md", "b.md"} {
		writeBatchDoc(t, inputDir, name, "# Doc\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	converter := &fakeConverter{}
	result, err := newTestBatch(converter).ConvertBatch(ctx, BatchRequest{
		InputDir:  inputDir,
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if result == nil {
		t.Fatal("partial result missing on cancellation")
	}
	if len(converter.inputs) != 0 {
		t.Errorf("converter invoked after cancellation")
	}
}

func TestBatchResultString(t *testing.T) {
	t.Parallel()

	r := &BatchResult{Successful: 3, Skipped: 1, Failed: 2}
	got := r.String()
	for _, want := range []string{"3 successful", "1 skipped", "2 failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q missing %q", got, want)
		}
	}
}
