package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert report or markdown files to PDF")
	fmt.Fprintln(w, "  generate   Generate a consulting report with Gemini")
	fmt.Fprintln(w, "  reports    List, show, rate, export or delete saved reports")
	fmt.Fprintln(w, "  templates  List or show built-in business templates")
	fmt.Fprintln(w, "  doctor     Check Chrome, API key and report store")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'reportdoc help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert report text (.txt, .report) or markdown (.md, .markdown) to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --watch               Re-convert when sources change")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "      --word                Write a Word document (.doc) alongside PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --format <s>          Input format: report, markdown (default: by extension)")
	fmt.Fprintln(w, "      --lang <s>            Language: en, ar (ar renders right-to-left)")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer-position <s> Position: left, center, right")
	fmt.Fprintln(w, "      --footer-text <s>     Custom footer text")
	fmt.Fprintln(w, "      --footer-status <s>   Status, e.g. DRAFT")
	fmt.Fprintln(w, "      --footer-date <s>     Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "      --footer-doc-id <s>   Document ID")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cover:")
	fmt.Fprintln(w, "      --cover               Add a cover page")
	fmt.Fprintln(w, "      --cover-title <s>     Title (default: first heading, then filename)")
	fmt.Fprintln(w, "      --cover-subtitle <s>  Subtitle")
	fmt.Fprintln(w, "      --cover-logo <path>   Logo path or URL")
	fmt.Fprintln(w, "      --cover-org <s>       Organization")
	fmt.Fprintln(w, "      --prepared-by <s>     Author or firm")
	fmt.Fprintln(w, "      --cover-date <s>      Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --doc-version <s>     Version string")
	fmt.Fprintln(w, "      --doc-id <s>          Document ID/reference")
	fmt.Fprintln(w, "      --no-cover            Disable cover page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                 Add a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>   Min heading depth (1-6)")
	fmt.Fprintln(w, "      --toc-max-depth <n>   Max heading depth (1-6)")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watermark:")
	fmt.Fprintln(w, "      --wm-text <s>         Watermark text")
	fmt.Fprintln(w, "      --wm-color <s>        Watermark color (hex)")
	fmt.Fprintln(w, "      --wm-opacity <f>      Watermark opacity (0.0-1.0)")
	fmt.Fprintln(w, "      --wm-angle <f>        Watermark angle in degrees")
	fmt.Fprintln(w, "      --no-watermark        Disable watermark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page Breaks:")
	fmt.Fprintln(w, "      --break-before <s>    Break before headings: h1,h2,h3")
	fmt.Fprintln(w, "      --orphans <n>         Min lines at page bottom (1-5)")
	fmt.Fprintln(w, "      --widows <n>          Min lines at page top (1-5)")
	fmt.Fprintln(w, "      --ignore-page-breaks  Drop <page-break> markers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name (report, dark, minimal) or CSS file")
	fmt.Fprintln(w, "      --css <path>          Extra CSS appended to the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles and templates")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style for code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a consulting report, a manual or KPI benchmarks with Gemini.")
	fmt.Fprintln(w, "Business data comes from a YAML file, a built-in template, or both")
	fmt.Fprintln(w, "(the file wins, the template fills empty fields).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Business data:")
	fmt.Fprintln(w, "  -b, --business <path>     Business data YAML file")
	fmt.Fprintln(w, "      --template <name>     Built-in template (see 'reportdoc templates')")
	fmt.Fprintln(w, "      --org <s>             Organization name")
	fmt.Fprintln(w, "      --legal-form <s>      Legal form")
	fmt.Fprintln(w, "      --detail <s>          Detail level: summary, detailed, comprehensive")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generation:")
	fmt.Fprintln(w, "      --kind <s>            report (default), manual, benchmarks")
	fmt.Fprintln(w, "      --manual <s>          financial_policies, financial_sops, admin_sops")
	fmt.Fprintln(w, "      --from <id>           Saved report used as context for a manual")
	fmt.Fprintln(w, "      --lang <s>            Language: en, ar")
	fmt.Fprintln(w, "      --model <s>           Gemini model (default: gemini-2.5-flash)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generation timeout (e.g., 3m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write the text to a file (default: stdout)")
	fmt.Fprintln(w, "      --save                Save the result in the report store")
	fmt.Fprintln(w, "      --db <path>           Report store path")
	fmt.Fprintln(w, "      --convert             Also render a PDF next to --output")
	fmt.Fprintln(w, "      --html                Write HTML alongside the PDF")
	fmt.Fprintln(w, "      --word                Write a Word document alongside the PDF")
	fmt.Fprintln(w, "      --style <s>           Style name or CSS file")
	fmt.Fprintln(w, "      --no-cover            Skip the cover page")
	fmt.Fprintln(w, "      --no-toc              Skip the table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The API key is read from generation.apiKey, GEMINI_API_KEY or API_KEY.")
}

// printReportsUsage prints usage for the reports command.
func printReportsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc reports <subcommand> [flags] [id]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manage saved reports. IDs may be shortened to a unique prefix of 8+ characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  list                      List saved reports, newest first")
	fmt.Fprintln(w, "      --org <s>             Filter by organization name")
	fmt.Fprintln(w, "      --limit <n>           Show at most n reports")
	fmt.Fprintln(w, "      --json                Print JSON")
	fmt.Fprintln(w, "  show <id>                 Print a report's text")
	fmt.Fprintln(w, "  delete <id>               Delete a report")
	fmt.Fprintln(w, "  rate <id> <1-5>           Rate a report")
	fmt.Fprintln(w, "      --comment <s>         Feedback comment")
	fmt.Fprintln(w, "  export <id>               Render a report to PDF")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path (default: <org>-<id>.pdf)")
	fmt.Fprintln(w, "      --html, --word        Extra formats")
	fmt.Fprintln(w, "      --style <s>           Style name or CSS file")
	fmt.Fprintln(w, "      --no-cover, --no-toc  Skip cover or table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "      --db <path>           Report store path")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc templates [show <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List built-in business templates, or print one as YAML to start a")
	fmt.Fprintln(w, "business data file.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the environment: Chrome, the Gemini API key and the report store.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print JSON")
	fmt.Fprintln(w, "      --db <path>           Report store path")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: reportdoc completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(reportdoc completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(reportdoc completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    reportdoc completion fish > ~/.config/fish/completions/reportdoc.fish")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "generate":
		printGenerateUsage(env.Stdout)
	case "reports":
		printReportsUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: reportdoc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: reportdoc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
