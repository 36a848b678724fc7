package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
)

// runProfiles executes the profiles command.
func runProfiles(args []string, env *Environment) error {
	var common commonFlags
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	addCommonFlags(fs, &common)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := loadConfig(common.config)
	if err != nil {
		return err
	}

	store := md2docx.NewProfileStore()
	if cfg.Profiles.File != "" {
		if err := store.LoadFile(cfg.Profiles.File); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY\tFORMATS\tDESCRIPTION")
	for _, p := range store.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Name, p.DisplayName, strings.Join(p.Formats(), ","), p.Description)
	}
	return w.Flush()
}
