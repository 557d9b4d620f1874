package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// takesValue reports whether the flag consumes the next word.
func (f flagDef) takesValue() bool { return f.Type != flagBool }

// names returns the flag spellings, long form first.
func (f flagDef) names() []string {
	if f.Short == "" {
		return []string{"--" + f.Long}
	}
	return []string{"--" + f.Long, "-" + f.Short}
}

func globs(pattern string) []string {
	var out []string
	for _, g := range strings.Split(pattern, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b bytes.Buffer
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for reportdoc\n\n")
	b.WriteString("_reportdoc_files() {\n")
	b.WriteString("    local g\n")
	b.WriteString("    COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
	b.WriteString("    for g in \"$@\"; do\n")
	b.WriteString("        COMPREPLY+=( $(compgen -f -X \"!$g\" -- \"$cur\") )\n")
	b.WriteString("    done\n")
	b.WriteString("}\n\n")

	b.WriteString("_reportdoc() {\n")
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    local prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		writeBashFlagValues(&b, c.Flags)

		var words []string
		for _, f := range c.Flags {
			words = append(words, f.names()...)
		}
		if len(words) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(words, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch {
		case len(c.Subcommands) > 0:
			b.WriteString("        if [[ $COMP_CWORD -eq 2 ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Subcommands, " "))
			if len(c.Args) > 0 {
				b.WriteString("        elif [[ $COMP_CWORD -eq 3 ]]; then\n")
				fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Args, " "))
			}
			b.WriteString("        fi\n")
		case len(c.Args) > 0:
			b.WriteString("        if [[ $COMP_CWORD -eq 2 ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Args, " "))
			b.WriteString("        fi\n")
		case c.TakesFiles:
			fmt.Fprintf(&b, "        _reportdoc_files %s\n", bashQuoteAll(globs(c.FilePattern)))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _reportdoc reportdoc\n")

	_, err := w.Write(b.Bytes())
	return err
}

// writeBashFlagValues completes the value of the flag in $prev.
func writeBashFlagValues(b *bytes.Buffer, flags []flagDef) {
	var cases []string
	for _, f := range flags {
		if !f.takesValue() {
			continue
		}
		var action string
		switch f.Type {
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"$cur\") )", strings.Join(f.Values, " "))
		case flagFile:
			action = "_reportdoc_files " + bashQuoteAll(globs(f.FileGlob))
		case flagDir:
			action = "COMPREPLY=( $(compgen -d -- \"$cur\") )"
		case flagString:
			action = "COMPREPLY=( $(compgen -f -- \"$cur\") )"
		default:
			action = ":"
		}
		cases = append(cases, fmt.Sprintf("            %s)\n                %s\n                return\n                ;;\n",
			strings.Join(f.names(), "|"), action))
	}
	if len(cases) == 0 {
		return
	}
	b.WriteString("        case \"$prev\" in\n")
	for _, c := range cases {
		b.WriteString(c)
	}
	b.WriteString("        esac\n")
}

func bashQuoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return strings.Join(quoted, " ")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b bytes.Buffer

	b.WriteString("#compdef reportdoc\n\n")
	b.WriteString("_reportdoc() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=$words[2]\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n            %s", zshFlagSpec(f))
		}
		switch {
		case len(c.Subcommands) > 0:
			fmt.Fprintf(&b, " \\\n            '1:subcommand:(%s)'", strings.Join(c.Subcommands, " "))
			if len(c.Args) > 0 {
				fmt.Fprintf(&b, " \\\n            '2:argument:(%s)'", strings.Join(c.Args, " "))
			}
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n            '1:argument:(%s)'", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"%s\"'", zshGlob(c.FilePattern))
		}
		b.WriteString("\n        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _reportdoc reportdoc\n")

	_, err := w.Write(b.Bytes())
	return err
}

// zshFlagSpec renders one flag as an _arguments word.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":" + f.Long + `:_files -g "` + zshGlob(f.FileGlob) + `"`
	case flagDir:
		action = ":" + f.Long + ":_files -/"
	case flagString:
		action = ":" + f.Long + ":_files"
	default:
		action = ":" + f.Long + ": "
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(pattern string) string {
	gs := globs(pattern)
	exts := make([]string, 0, len(gs))
	for _, g := range gs {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

var zshReplacer = strings.NewReplacer(
	`'`, `'\''`,
	`[`, `\[`,
	`]`, `\]`,
	`:`, `\:`,
)

func zshEscape(s string) string { return zshReplacer.Replace(s) }

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer, cmds []commandDef) error {
	var b bytes.Buffer

	b.WriteString("# fish completion for reportdoc\n\n")
	b.WriteString("complete -c reportdoc -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c reportdoc -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		b.WriteString("\n")
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)

		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c reportdoc -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile, flagString:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}

		switch {
		case len(c.Subcommands) > 0:
			fmt.Fprintf(&b, "complete -c reportdoc -n \"__fish_seen_subcommand_from %s; and not __fish_seen_subcommand_from %s\" -a '%s'\n",
				c.Name, strings.Join(c.Subcommands, " "), strings.Join(c.Subcommands, " "))
			if len(c.Args) > 0 {
				fmt.Fprintf(&b, "complete -c reportdoc -n \"__fish_seen_subcommand_from %s; and __fish_seen_subcommand_from %s\" -a '%s'\n",
					c.Name, c.Subcommands[len(c.Subcommands)-1], strings.Join(c.Args, " "))
			}
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c reportdoc -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c reportdoc -n %s -F\n", cond)
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

var fishReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func fishEscape(s string) string { return fishReplacer.Replace(s) }
