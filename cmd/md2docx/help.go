package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert one Markdown file to DOCX or PDF")
	fmt.Fprintln(w, "  batch      Convert all Markdown files in a directory")
	fmt.Fprintln(w, "  list       List Markdown documents with titles and diagram counts")
	fmt.Fprintln(w, "  profiles   List available conversion profiles")
	fmt.Fprintln(w, "  doctor     Check pandoc, LaTeX, and mermaid CLI availability")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx convert <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert one Markdown file to DOCX or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with new extension)")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: docx or pdf (default: docx)")
	fmt.Fprintln(w, "  -t, --template <path>     DOCX reference template")
	fmt.Fprintln(w, "  -p, --profile <name>      Conversion profile (angebot, bericht, analyse, script)")
	fmt.Fprintln(w, "      --pdf-engine <s>      Preferred LaTeX engine (xelatex, lualatex, pdflatex)")
	fmt.Fprintln(w, "  -m, --meta <key=value>    Metadata variable, overrides frontmatter (repeatable)")
	fmt.Fprintln(w, "      --pandoc-arg <s>      Extra pandoc argument (repeatable)")
	fmt.Fprintln(w, "      --clean-diagrams      Remove rendered diagram files afterwards")
	fmt.Fprintln(w, "      --timeout <d>         Conversion timeout (default: 2m)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx batch <input-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert all Markdown files in a directory. Output names come from")
	fmt.Fprintln(w, "each document's frontmatter title; colliding names get _2, _3 suffixes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: input directory)")
	fmt.Fprintln(w, "  -f, --formats <s>         Comma-separated formats: docx,pdf (default: docx)")
	fmt.Fprintln(w, "  -t, --template <path>     DOCX reference template")
	fmt.Fprintln(w, "  -p, --profile <name>      Conversion profile")
	fmt.Fprintln(w, "      --pdf-engine <s>      Preferred LaTeX engine")
	fmt.Fprintln(w, "  -r, --recursive           Process subdirectories, mirroring the tree")
	fmt.Fprintln(w, "      --overwrite           Overwrite existing output files")
	fmt.Fprintln(w, "      --timeout <d>         Timeout per conversion (default: 2m)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx list <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Markdown documents with their effective title and diagram count.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -r, --recursive           Process subdirectories")
}

// runHelp dispatches help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "profiles":
		fmt.Fprintln(env.Stdout, "Usage: md2docx profiles [-c config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List available conversion profiles with their descriptions.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2docx doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that pandoc, a LaTeX engine, and the mermaid CLI are available.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
	}
}
