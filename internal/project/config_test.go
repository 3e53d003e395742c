package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[gen]
package = "calc"
runtime = "example.com/rt/ttrt"
defs = ["defs/calc.tt"]
defs_import = "example.com/calc"

[diagnostics]
max = 10
`)
	nested := filepath.Join(root, "cmd", "eval")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Path = filepath.Join(root, ConfigName)
	want.Root = root
	want.Package = "calc"
	want.Runtime = "example.com/rt/ttrt"
	want.Defs = []string{filepath.Join(root, "defs", "calc.tt")}
	want.DefsImport = "example.com/calc"
	want.MaxDiagnostics = 10
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("Discover = %+v\nwant %+v", cfg, want)
	}
}

func TestDiscoverWithoutConfig(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Package != "ast" || cfg.MatcherSuffix != ".matchers.go" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		is   error
	}{
		{"syntax", "[gen\n", "failed to parse TOML", nil},
		{"unknown key", "[gen]\npackge = \"x\"\n", "gen.packge", ErrUnknownKeys},
		{"suffix", "[gen]\nmatcher_suffix = \".txt\"\n", ".txt", ErrBadSuffix},
		{"absolute defs", "[gen]\ndefs = [\"/etc/defs.tt\"]\n", "must be relative", nil},
		{"escaping defs", "[gen]\ndefs = [\"../defs.tt\"]\n", "escapes project root", nil},
		{"negative max", "[diagnostics]\nmax = -1\n", "must not be negative", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("error %q is not %v", err, tc.is)
			}
		})
	}
}
