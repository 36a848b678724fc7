package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// Exit codes for the md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126.
const (
	ExitSuccess = 0 // successful run
	ExitGeneral = 1 // general/unexpected error, or failed batch items
	ExitUsage   = 2 // invalid flags, config, or validation
	ExitIO      = 3 // file not found, permission denied
	ExitTool    = 4 // pandoc, LaTeX engine, or mermaid CLI problems
)

// exitCodeFor maps an error to an exit code. It uses errors.Is, so all
// error paths must wrap the library sentinels with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, md2docx.ErrPandocNotFound) ||
		errors.Is(err, md2docx.ErrEngineNotFound) ||
		errors.Is(err, md2docx.ErrMermaidNotFound) {
		return ExitTool
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2docx.ErrInvalidInput) {
		return ExitIO
	}

	if errors.Is(err, md2docx.ErrUnsupportedFormat) ||
		errors.Is(err, md2docx.ErrProfileNotFound) ||
		errors.Is(err, md2docx.ErrInvalidProfile) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, errUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
