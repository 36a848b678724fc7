package md2docx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// pathClaims assigns unique output paths within one batch run.
//
// Resolution is order-dependent: the resolver must be queried once per
// (document, format) pair in the order the batch enumerates them, so that
// suffix assignment is reproducible for a fixed input ordering.
type pathClaims struct {
	claimed    map[string]struct{}
	fileExists func(string) bool // injectable for tests
}

func newPathClaims() *pathClaims {
	return &pathClaims{
		claimed:    make(map[string]struct{}),
		fileExists: fileutil.FileExists,
	}
}

// Claim returns the final path for a candidate and marks it claimed.
//
// A first-use candidate is returned as-is: no suffix is ever applied to a
// name the batch has not seen. A candidate already claimed in this batch
// gets its counter suffix stripped and probes stem_2, stem_3, ... until a
// path is found that is neither claimed nor blocked by an existing file
// when overwrite is off.
func (c *pathClaims) Claim(candidate string, overwrite bool) string {
	if _, taken := c.claimed[candidate]; !taken {
		c.claimed[candidate] = struct{}{}
		return candidate
	}

	dir := filepath.Dir(candidate)
	base := filepath.Base(candidate)
	ext := filepath.Ext(base)
	stem := stripCounterSuffix(strings.TrimSuffix(base, ext))

	for n := 2; ; n++ {
		probe := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if _, taken := c.claimed[probe]; taken {
			continue
		}
		if c.fileExists(probe) && !overwrite {
			continue
		}
		c.claimed[probe] = struct{}{}
		return probe
	}
}

// stripCounterSuffix removes a trailing _<digits> collision counter so
// "report_2" probes restart from "report_2", "report_3", not "report_2_2".
func stripCounterSuffix(stem string) string {
	i := strings.LastIndex(stem, "_")
	if i < 0 || i == len(stem)-1 {
		return stem
	}
	for _, r := range stem[i+1:] {
		if r < '0' || r > '9' {
			return stem
		}
	}
	return stem[:i]
}
