package hints

// ForBrowserConnect tests are not parallel: they set environment variables
// and swap IsInContainer.

import (
	"strings"
	"testing"
)

func withContainer(t *testing.T, inContainer bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

func clearCI(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(key, "")
	}
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          bool
		container   bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "ci", ci: true, wantSandbox: true, wantBin: true},
		{name: "docker", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, noSandbox: "1", wantBin: true},
		{name: "desktop with browser set", browserBin: "/usr/bin/chromium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)
			clearCI(t)
			if tt.ci {
				t.Setenv("CI", "true")
			}
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			got := ForBrowserConnect()
			if gotSandbox := strings.Contains(got, "ROD_NO_SANDBOX"); gotSandbox != tt.wantSandbox {
				t.Errorf("ForBrowserConnect() = %q, ROD_NO_SANDBOX present = %v, want %v", got, gotSandbox, tt.wantSandbox)
			}
			if gotBin := strings.Contains(got, "ROD_BROWSER_BIN"); gotBin != tt.wantBin {
				t.Errorf("ForBrowserConnect() = %q, ROD_BROWSER_BIN present = %v, want %v", got, gotBin, tt.wantBin)
			}
			if !tt.wantSandbox && !tt.wantBin && got != "" {
				t.Errorf("ForBrowserConnect() = %q, want empty", got)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"./acme.yaml", "/home/u/.config/go-reportdoc/acme.yaml"})
	if !strings.HasPrefix(got, "\n  hint: use --config") {
		t.Errorf("ForConfigNotFound() = %q, want --config hint", got)
	}
	if !strings.Contains(got, "or create /home/u/.config/go-reportdoc/acme.yaml") {
		t.Errorf("ForConfigNotFound() = %q, want user config suggestion", got)
	}

	if got := ForConfigNotFound(nil); strings.Contains(got, "or create") {
		t.Errorf("ForConfigNotFound(nil) = %q, want no create suggestion", got)
	}
}

func TestListHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"styles", ForStyleNotFound([]string{"dark", "report"}), "\n  hint: available: dark, report"},
		{"no styles", ForStyleNotFound(nil), ""},
		{"templates", ForTemplateNotFound([]string{"a", "b"}), "\n  hint: templates: a, b (see 'reportdoc templates')"},
		{"no templates", ForTemplateNotFound(nil), ""},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, got := range map[string]string{
		"timeout":     ForTimeout(),
		"output":      ForOutputDirectory(),
		"api key":     ForMissingAPIKey(),
		"store":       ForStore("/tmp/r.db"),
		"store unset": ForStore(""),
	} {
		if !strings.HasPrefix(got, "\n  hint: ") {
			t.Errorf("%s hint = %q, want hint prefix", name, got)
		}
	}
	if !strings.Contains(ForMissingAPIKey(), "GEMINI_API_KEY") {
		t.Error("ForMissingAPIKey() should name GEMINI_API_KEY")
	}
}
