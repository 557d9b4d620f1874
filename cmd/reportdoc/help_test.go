package main

// Notes:
// - print*Usage: we test that required strings are present, not the exact
//   layout.
// - Every registered convert flag must be documented in convert help.

import (
	"bytes"
	"io"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, s := range []string{"Usage: reportdoc", "convert", "generate", "reports", "templates", "doctor", "completion", "version", "help"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("usage should contain %q", s)
		}
	}
}

func TestPrintConvertUsage_DocumentsEveryFlag(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	registerConvertFlags(fs, &convertFlags{})

	var buf bytes.Buffer
	printConvertUsage(&buf)
	usage := buf.String()

	fs.VisitAll(func(fl *flag.Flag) {
		if !strings.Contains(usage, "--"+fl.Name) {
			t.Errorf("convert help does not document --%s", fl.Name)
		}
	})
}

func TestSubcommandUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(io.Writer)
		want  []string
	}{
		{"generate", printGenerateUsage, []string{"--template", "--kind", "--from", "--save", "--convert", "GEMINI_API_KEY"}},
		{"reports", printReportsUsage, []string{"list", "show", "delete", "rate", "export", "--db"}},
		{"templates", printTemplatesUsage, []string{"show <name>"}},
		{"doctor", printDoctorUsage, []string{"--json", "--db"}},
		{"completion", printCompletionUsage, []string{"bash", "zsh", "fish"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s usage should contain %q", tt.name, s)
				}
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{nil, "Commands:", ""},
		{[]string{"convert"}, "Usage: reportdoc convert", ""},
		{[]string{"generate"}, "Usage: reportdoc generate", ""},
		{[]string{"reports"}, "Usage: reportdoc reports", ""},
		{[]string{"templates"}, "Usage: reportdoc templates", ""},
		{[]string{"doctor"}, "Usage: reportdoc doctor", ""},
		{[]string{"version"}, "Usage: reportdoc version", ""},
		{[]string{"completion"}, "Usage: reportdoc completion", ""},
		{[]string{"bogus"}, "", "Unknown command: bogus"},
	}
	for _, tt := range tests {
		te := newTestEnv(t)
		runHelp(tt.args, te.Environment)
		if !strings.Contains(te.stdout.String(), tt.wantStdout) {
			t.Errorf("runHelp(%v) stdout = %q, want %q", tt.args, te.stdout.String(), tt.wantStdout)
		}
		if !strings.Contains(te.stderr.String(), tt.wantStderr) {
			t.Errorf("runHelp(%v) stderr = %q, want %q", tt.args, te.stderr.String(), tt.wantStderr)
		}
	}
}
