package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   toolInfo   `json:"pandoc"`
	Mermaid  toolInfo   `json:"mermaid"`
	Engines  []toolInfo `json:"pdf_engines"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds one external tool detection result.
type toolInfo struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = ready (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		System: systemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	result.Pandoc = probeTool("pandoc")
	if !result.Pandoc.Found {
		result.Errors = append(result.Errors,
			"pandoc not found; install it from https://pandoc.org/installing.html")
	}

	result.Mermaid = probeTool("mmdc")
	if !result.Mermaid.Found {
		result.Warnings = append(result.Warnings,
			"mermaid CLI (mmdc) not found; diagrams will be left as code blocks. Install with: npm install -g @mermaid-js/mermaid-cli")
	}

	engineFound := false
	for _, engine := range []string{"xelatex", "lualatex", "pdflatex"} {
		info := probeTool(engine)
		result.Engines = append(result.Engines, info)
		engineFound = engineFound || info.Found
	}
	if !engineFound {
		result.Warnings = append(result.Warnings,
			"no LaTeX engine found; PDF output is unavailable. Install texlive-xetex, MiKTeX or MacTeX")
	}

	result.System.TempWritable = checkTempWritable()
	if !result.System.TempWritable {
		result.Errors = append(result.Errors, "temp directory is not writable")
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

func probeTool(name string) toolInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		return toolInfo{Name: name}
	}
	return toolInfo{Name: name, Found: true, Path: path}
}

func checkTempWritable() bool {
	f, err := os.CreateTemp("", "md2docx-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult prints the human-readable report.
func printDoctorResult(w io.Writer, result *doctorResult) {
	fmt.Fprintf(w, "md2docx doctor (%s/%s)\n\n", result.System.OS, result.System.Arch)

	printTool(w, result.Pandoc, "required")
	printTool(w, result.Mermaid, "optional, for diagrams")
	for _, engine := range result.Engines {
		printTool(w, engine, "for PDF output")
	}

	if result.System.TempWritable {
		fmt.Fprintln(w, "  ok  temp directory writable")
	} else {
		fmt.Fprintln(w, "  !!  temp directory not writable")
	}

	fmt.Fprintln(w)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(w, "error: %s\n", errMsg)
	}
	fmt.Fprintf(w, "status: %s\n", result.Status)
}

func printTool(w io.Writer, info toolInfo, note string) {
	if info.Found {
		fmt.Fprintf(w, "  ok  %s: %s\n", info.Name, filepath.ToSlash(info.Path))
		return
	}
	fmt.Fprintf(w, "  --  %s: not found (%s)\n", info.Name, note)
}
