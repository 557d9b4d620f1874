package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/fileutil"
	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/hints"
	"github.com/alnah/go-reportdoc/internal/store"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Chrome     chromeInfo     `json:"chrome"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Generation generationInfo `json:"generation"`
	Store      storeInfo      `json:"store"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// generationInfo reports whether report generation can run.
type generationInfo struct {
	APIKey bool   `json:"api_key"`
	Model  string `json:"model"`
}

// storeInfo describes the saved-report database.
type storeInfo struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Reports int    `json:"reports"`
}

// doctorFlags holds the doctor command flags.
type doctorFlags struct {
	common commonFlags
	json   bool
	db     string
}

func registerDoctorFlags(fs *flag.FlagSet, f *doctorFlags) {
	fs.BoolVar(&f.json, "json", false, "print JSON")
	fs.StringVar(&f.db, "db", "", "report store path")
	addCommonFlags(fs, &f.common)
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", printDoctorUsage, env.Stderr)
	registerDoctorFlags(fs, f)
	if err := parseFlagSet(fs, args); err != nil {
		return reportError(err, env)
	}

	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return reportError(err, env)
	}

	result := runDoctor(context.Background(), cfg, storePath(f.db, cfg))

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config, dbPath string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)
	checkGeneration(result, cfg)
	checkStore(ctx, result, dbPath)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- detected browser path
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()
	result.Env.CI = hints.InCI()

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("REPORTDOC_CONTAINER") == "1" {
		return true, "REPORTDOC_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "reportdoc-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// checkGeneration reports the API key and model. A missing key only warns:
// conversion works without it.
func checkGeneration(result *doctorResult, cfg *config.Config) {
	result.Generation.Model = firstNonEmpty(cfg.Generation.Model, generate.DefaultModel)
	if _, err := generate.ResolveAPIKey(cfg.Generation.APIKey); err == nil {
		result.Generation.APIKey = true
		return
	}
	result.Warnings = append(result.Warnings,
		"No Gemini API key. Set GEMINI_API_KEY to use 'reportdoc generate'")
}

// checkStore opens an existing report database and counts its reports. A
// missing database is fine as long as its directory can be created.
func checkStore(ctx context.Context, result *doctorResult, dbPath string) {
	result.Store.Path = dbPath

	if !fileutil.FileExists(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), dirPermissions); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Report store directory cannot be created: %v", err))
		}
		return
	}
	result.Store.Exists = true

	s, err := store.Open(dbPath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Report store: %v", err))
		return
	}
	defer s.Close()

	reports, err := s.List(ctx, store.ListOptions{})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Report store: %v", err))
		return
	}
	result.Store.Reports = len(reports)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "reportdoc doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Generation")
	if r.Generation.APIKey {
		fmt.Fprintln(w, "  [OK] API key: configured")
	} else {
		fmt.Fprintln(w, "  [WARN] API key: missing")
	}
	fmt.Fprintf(w, "  [OK] Model: %s\n", r.Generation.Model)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Report store")
	if r.Store.Exists {
		fmt.Fprintf(w, "  [OK] %s (%d reports)\n", r.Store.Path, r.Store.Reports)
	} else {
		fmt.Fprintf(w, "  [OK] %s (created on first save)\n", r.Store.Path)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
