package md2docx

import (
	"path/filepath"
	"testing"
)

func newTestClaims(existing ...string) *pathClaims {
	onDisk := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		onDisk[p] = struct{}{}
	}
	c := newPathClaims()
	c.fileExists = func(p string) bool {
		_, ok := onDisk[p]
		return ok
	}
	return c
}

func TestClaimFirstUseIsVerbatim(t *testing.T) {
	t.Parallel()

	c := newTestClaims()
	if got := c.Claim("out/report.docx", false); got != "out/report.docx" {
		t.Errorf("first claim = %q, want verbatim candidate", got)
	}
}

func TestClaimSameTitleTwice(t *testing.T) {
	t.Parallel()

	// Two documents sharing the title "Same Title" must land on distinct
	// outputs: the first keeps the plain name, the second gets a counter.
	c := newTestClaims()

	first := c.Claim(filepath.Join("out", "same-title.docx"), true)
	second := c.Claim(filepath.Join("out", "same-title.docx"), true)

	if first != filepath.Join("out", "same-title.docx") {
		t.Errorf("first = %q", first)
	}
	if second != filepath.Join("out", "same-title_2.docx") {
		t.Errorf("second = %q, want counter suffix", second)
	}
}

func TestClaimDifferentFormatsNeverCollide(t *testing.T) {
	t.Parallel()

	c := newTestClaims()
	docx := c.Claim("out/report.docx", false)
	pdf := c.Claim("out/report.pdf", false)

	if docx != "out/report.docx" || pdf != "out/report.pdf" {
		t.Errorf("got %q and %q, want no suffixing across extensions", docx, pdf)
	}
}

func TestClaimCounterProgression(t *testing.T) {
	t.Parallel()

	c := newTestClaims()
	want := []string{
		"report.docx",
		"report_2.docx",
		"report_3.docx",
		"report_4.docx",
	}
	for i, w := range want {
		if got := c.Claim("report.docx", true); got != w {
			t.Errorf("claim %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestClaimStripsExistingCounter(t *testing.T) {
	t.Parallel()

	// A candidate that already carries a counter suffix restarts probing
	// from its stem instead of stacking suffixes.
	c := newTestClaims()
	c.Claim("report_2.docx", true)

	if got := c.Claim("report_2.docx", true); got != "report_3.docx" {
		t.Errorf("got %q, want %q", got, "report_3.docx")
	}
}

func TestClaimSkipsExistingFilesWithoutOverwrite(t *testing.T) {
	t.Parallel()

	c := newTestClaims("report_2.docx", "report_3.docx")
	c.Claim("report.docx", false)

	if got := c.Claim("report.docx", false); got != "report_4.docx" {
		t.Errorf("got %q, want probe past files on disk", got)
	}
}

func TestClaimOverwriteReusesExistingNames(t *testing.T) {
	t.Parallel()

	c := newTestClaims("report_2.docx")
	c.Claim("report.docx", true)

	if got := c.Claim("report.docx", true); got != "report_2.docx" {
		t.Errorf("got %q, want existing file reused under overwrite", got)
	}
}

func TestStripCounterSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stem string
		want string
	}{
		{stem: "report", want: "report"},
		{stem: "report_2", want: "report"},
		{stem: "report_42", want: "report"},
		{stem: "report_v2", want: "report_v2"},
		{stem: "report_", want: "report_"},
		{stem: "_2", want: ""},
		{stem: "my_report_2", want: "my_report"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.stem, func(t *testing.T) {
			t.Parallel()

			if got := stripCounterSuffix(tt.stem); got != tt.want {
				t.Errorf("stripCounterSuffix(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}
