package main

import (
	"fmt"

	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/yamlutil"
)

// runTemplatesCmd lists the built-in business templates, or prints one as
// YAML with "show <name>".
func runTemplatesCmd(args []string, env *Environment) error {
	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == "list"):
		for _, name := range generate.TemplateNames() {
			t, err := generate.LookupTemplate(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "%-24s %s\n", name, t.Description)
		}
		return nil

	case len(args) == 2 && args[0] == "show":
		t, err := generate.LookupTemplate(args[1])
		if err != nil {
			return err
		}
		out, err := yamlutil.Marshal(t.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "# %s: %s\n", t.Name, t.Description)
		_, err = env.Stdout.Write(out)
		return err

	case len(args) == 1 && (args[0] == "-h" || args[0] == "--help"):
		printTemplatesUsage(env.Stdout)
		return nil

	default:
		printTemplatesUsage(env.Stderr)
		return fmt.Errorf("%w: templates [list | show <name>]", ErrUsage)
	}
}
