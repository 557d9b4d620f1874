package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-reportdoc/internal/assets"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/generate"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Subcommands []string // first positional word, e.g. "reports list"
	Args        []string // fixed positional values, e.g. shell names
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments
}

// completionMeta holds completion-specific metadata for flags. Flag names,
// types and descriptions come from the FlagSets the commands parse with.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
func flagCompletionMeta() map[string]completionMeta {
	manuals := make([]string, 0, len(generate.ManualTypes()))
	for _, m := range generate.ManualTypes() {
		manuals = append(manuals, string(m))
	}

	return map[string]completionMeta{
		// Enum flags
		"page-size":       {Values: []string{"a4", "letter", "legal"}},
		"orientation":     {Values: []string{"portrait", "landscape"}},
		"footer-position": {Values: []string{"left", "center", "right"}},
		"format":          {Values: []string{"report", "markdown"}},
		"lang":            {Values: []string{generate.LangEnglish, generate.LangArabic}},
		"detail":          {Values: []string{"summary", "detailed", "comprehensive"}},
		"kind":            {Values: []string{kindReport, kindManual, kindBenchmarks}},
		"manual":          {Values: manuals},
		"template":        {Values: generate.TemplateNames()},
		"style":           {Values: assets.StyleNames()},
		"break-before":    {Values: []string{"h1", "h2", "h3", "h1,h2", "h1,h2,h3"}},

		// File flags with glob patterns
		"config":     {FileGlob: "*.yaml,*.yml"},
		"business":   {FileGlob: "*.yaml,*.yml"},
		"css":        {FileGlob: "*.css"},
		"cover-logo": {FileGlob: "*.png,*.jpg,*.jpeg,*.svg"},
		"db":         {FileGlob: "*.db"},

		// Directory flags
		"asset-path": {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with completion metadata.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// reportsFlagDefs merges the flags of every reports subcommand.
func reportsFlagDefs() []flagDef {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	seen := make(map[string]bool)
	for _, sub := range reportsSubcommands() {
		subFS := flag.NewFlagSet("reports "+sub, flag.ContinueOnError)
		registerReportsFlags(subFS, sub, &reportsFlags{})
		subFS.VisitAll(func(f *flag.Flag) {
			if !seen[f.Name] {
				seen[f.Name] = true
				fs.AddFlag(f)
			}
		})
	}
	return extractFlagsFromFlagSet(fs)
}

// reportsSubcommands returns the reports subcommands in usage order.
func reportsSubcommands() []string {
	return []string{"list", "show", "delete", "rate", "export"}
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	convertFS := flag.NewFlagSet("convert", flag.ContinueOnError)
	registerConvertFlags(convertFS, &convertFlags{})

	generateFS := flag.NewFlagSet("generate", flag.ContinueOnError)
	registerGenerateFlags(generateFS, &generateFlags{})

	doctorFS := flag.NewFlagSet("doctor", flag.ContinueOnError)
	registerDoctorFlags(doctorFS, &doctorFlags{})

	sourceGlobs := make([]string, 0, len(fileutil.SourceExtensions))
	for _, ext := range fileutil.SourceExtensions {
		sourceGlobs = append(sourceGlobs, "*"+ext)
	}

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert report or markdown files to PDF",
			Flags:       extractFlagsFromFlagSet(convertFS),
			TakesFiles:  true,
			FilePattern: strings.Join(sourceGlobs, ","),
		},
		{
			Name:  "generate",
			Desc:  "Generate a consulting report with Gemini",
			Flags: extractFlagsFromFlagSet(generateFS),
		},
		{
			Name:        "reports",
			Desc:        "List, show, rate, export or delete saved reports",
			Flags:       reportsFlagDefs(),
			Subcommands: reportsSubcommands(),
		},
		{
			Name:        "templates",
			Desc:        "List or show built-in business templates",
			Subcommands: []string{"list", "show"},
			Args:        generate.TemplateNames(),
		},
		{
			Name:  "doctor",
			Desc:  "Check Chrome, API key and report store",
			Flags: extractFlagsFromFlagSet(doctorFS),
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"convert", "generate", "reports", "templates", "doctor", "version", "completion"},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %w: %q (supported: bash, zsh, fish)", ErrUsage, ErrUnsupportedShell, shell)
	}
}

// runCompletionCmd handles the completion command.
func runCompletionCmd(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[1])
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}
