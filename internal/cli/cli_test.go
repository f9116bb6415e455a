package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// runCLI executes the root command with args against a fake KEGG server
// serving routes, and returns what the command printed.
func runCLI(t *testing.T, routes map[string]string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{"KEGG_BASE_URL", "KEGG_CACHE_BACKEND", "KEGG_CACHE_DIR", "KEGG_RETRIES"} {
		t.Setenv(k, "")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--base-url", srv.URL, "--no-cache"}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	want := []string{"info", "list", "organisms", "find", "get", "seq", "conv", "link", "compounds", "cache", "serve", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	routes := map[string]string{
		"/info/pathway": "pathway          KEGG Pathway Database\npath             Release 110.0+/04-01, Apr 24",
	}

	got, err := runCLI(t, routes, "--json", "info", "pathway")
	if err != nil {
		t.Fatalf("info error: %v", err)
	}
	if !strings.Contains(got, `"kind": "key_value"`) || !strings.Contains(got, `"path": "Release 110.0+/04-01, Apr 24"`) {
		t.Errorf("info output = %s", got)
	}
}

func TestListCommandJSON(t *testing.T) {
	routes := map[string]string{
		"/list/pathway/hsa": "path:hsa00010\tGlycolysis / Gluconeogenesis - Homo sapiens (human)\n",
	}

	got, err := runCLI(t, routes, "--json", "list", "pathway", "hsa")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(got, `"path:hsa00010": "Glycolysis / Gluconeogenesis - Homo sapiens (human)"`) {
		t.Errorf("list output = %s", got)
	}
}

func TestSeqCommandFASTA(t *testing.T) {
	residues := strings.Repeat("M", 70)
	routes := map[string]string{
		"/get/hsa:10458/aaseq": ">hsa:10458 BAIAP2\n" + residues + "\n",
	}

	got, err := runCLI(t, routes, "seq", "hsa:10458")
	if err != nil {
		t.Fatalf("seq error: %v", err)
	}
	want := ">hsa:10458 BAIAP2\n" + residues[:60] + "\n" + residues[60:] + "\n"
	if got != want {
		t.Errorf("seq output = %q, want %q", got, want)
	}
}

func TestLinkCommandDOT(t *testing.T) {
	routes := map[string]string{
		"/link/pathway/hsa:10458": "hsa:10458\tpath:hsa04520\nhsa:10458\tpath:hsa04810\n",
	}

	got, err := runCLI(t, routes, "link", "pathway", "hsa:10458", "--format", "dot")
	if err != nil {
		t.Fatalf("link error: %v", err)
	}
	if !strings.HasPrefix(got, "digraph") || !strings.Contains(got, `"hsa:10458" -> "path:hsa04810"`) {
		t.Errorf("link output = %s", got)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"upstream 404", []string{"--json", "get", "C99999"}},
		{"invalid database", []string{"--json", "info", "bad/db"}},
		{"too many organisms", []string{"--json", "list", "pathway", "hsa", "eco"}},
		{"unknown link format", []string{"link", "pathway", "hsa:10458", "--format", "gif"}},
	}
	routes := map[string]string{
		"/link/pathway/hsa:10458": "hsa:10458\tpath:hsa04520\n",
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, routes, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCachePath(t *testing.T) {
	got, err := runCLI(t, nil, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	dir := strings.TrimSpace(got)
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q, want it to end in %q", dir, appName)
	}
}

func TestCachePathFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("KEGG_CACHE_DIR", dir)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestExecuteVerbose(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	if err := c.Execute(context.Background(), []string{"--verbose", "cache", "path"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level after --verbose = %v, want debug", got)
	}

	c = New(io.Discard, LogInfo)
	err := c.Execute(context.Background(), []string{"--log-format", "xml", "cache", "path"})
	if err == nil || ExitCode(err) != 1 {
		t.Errorf("Execute(--log-format xml) error = %v, want exit status 1", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{context.Canceled, 130},
		{fmt.Errorf("get: %w", context.Canceled), 130},
		{context.DeadlineExceeded, 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
