// Package hints appends actionable advice to error messages. Every hint is
// rendered as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-reportdoc/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker. Tests
// replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a common CI environment variable is set.
func InCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod environment variables that usually fix
// a failed Chrome launch.
func ForBrowserConnect() string {
	var advice []string
	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		advice = append(advice, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		advice = append(advice, "set ROD_BROWSER_BIN to use a specific Chrome")
	}
	return join(advice)
}

// ForTimeout suggests a longer timeout.
func ForTimeout() string {
	return format("for long reports, raise --timeout")
}

// ForConfigNotFound points at --config and at the user config directory
// among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-reportdoc") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory is shown when an output directory cannot be created.
func ForOutputDirectory() string {
	return format("check the parent directory exists and is writable")
}

// ForStyleNotFound lists the available style names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateNotFound lists the built-in business templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("templates: " + strings.Join(available, ", ") + " (see 'reportdoc templates')")
}

// ForMissingAPIKey names the places an API key is read from.
func ForMissingAPIKey() string {
	return format("set GEMINI_API_KEY (or API_KEY), or generation.apiKey in the config file")
}

// ForStore is shown when the report database cannot be opened.
func ForStore(path string) string {
	if path == "" {
		return format("set store.path in the config file or use --db")
	}
	return format("check " + path + " is writable, or use --db to choose another file")
}

func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func join(advice []string) string {
	if len(advice) == 0 {
		return ""
	}
	return format(strings.Join(advice, "; "))
}
