package main

import (
	"fmt"
	"text/tabwriter"

	md2docx "github.com/alnah/go-md2docx"
)

// runList executes the list command.
func runList(args []string, env *Environment) error {
	flags, positional, err := parseListFlags(args)
	if err != nil {
		return err
	}

	dir := "."
	if len(positional) > 0 {
		dir = positional[0]
	}

	infos, err := md2docx.InspectDir(dir, flags.recursive)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(env.Stdout, "No Markdown files found.")
		return nil
	}

	w := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTITLE\tSOURCE\tDIAGRAMS")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", info.Path, info.Title, info.TitleSource, info.DiagramCount)
	}
	return w.Flush()
}
