package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/assets"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime
	// defaults apply.
	if hasVerbose(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args[1] to its command and returns the exit code.
// A source file as first argument is shorthand for convert.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch {
	case isCommand(cmd, "convert"):
		err = runConvertCmd(ctx, rest, env)
	case isCommand(cmd, "generate"):
		err = runGenerateCmd(ctx, rest, env)
	case isCommand(cmd, "reports"):
		err = runReportsCmd(ctx, rest, env)
	case isCommand(cmd, "templates"):
		err = runTemplatesCmd(rest, env)
	case isCommand(cmd, "doctor"):
		return runDoctorCmd(rest, env)
	case isCommand(cmd, "completion"):
		err = runCompletionCmd(rest, env)
	case isCommand(cmd, "version", "--version"):
		fmt.Fprintf(env.Stdout, "reportdoc %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, "help", "-h", "--help"):
		runHelp(rest, env)
		return ExitSuccess
	case looksLikeSource(cmd):
		err = runConvertCmd(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		return reportError(err, env)
	}
	return ExitSuccess
}

// reportError prints err with its hint and returns the matching exit code.
// A help request is not an error.
func reportError(err error, env *Environment) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hintFor returns advice for errors that do not carry their own hint.
func hintFor(err error) string {
	switch {
	case errors.Is(err, reportdoc.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, reportdoc.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, generate.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(generate.TemplateNames())
	case errors.Is(err, generate.ErrMissingAPIKey):
		return hints.ForMissingAPIKey()
	}
	return ""
}

func isCommand(arg string, names ...string) bool {
	for _, n := range names {
		if arg == n {
			return true
		}
	}
	return false
}

// looksLikeSource reports whether arg names a convertible file.
func looksLikeSource(arg string) bool {
	return len(arg) > 0 && arg[0] != '-' && fileutil.IsSource(arg)
}

func hasVerbose(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
