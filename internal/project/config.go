package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigName is the file tt looks for next to (or above) its input.
const ConfigName = "tt.toml"

var (
	ErrUnknownKeys = errors.New("unknown keys")
	ErrBadSuffix   = errors.New("output suffix must end in .go")
)

// Config is the decoded [gen] section of tt.toml. Paths in Defs are absolute
// after Load; everything else is passed to the generator as is.
type Config struct {
	Path string // файл, из которого прочитано; пусто для умолчаний
	Root string // каталог tt.toml

	Package        string
	Runtime        string
	Defs           []string
	DefsImport     string
	DefsSuffix     string
	MatcherSuffix  string
	MaxDiagnostics int
}

type fileConfig struct {
	Gen struct {
		Package       string   `toml:"package"`
		Runtime       string   `toml:"runtime"`
		Defs          []string `toml:"defs"`
		DefsImport    string   `toml:"defs_import"`
		DefsSuffix    string   `toml:"defs_suffix"`
		MatcherSuffix string   `toml:"matcher_suffix"`
	} `toml:"gen"`
	Diagnostics struct {
		Max int `toml:"max"`
	} `toml:"diagnostics"`
}

// Default is the configuration used when no tt.toml is found.
func Default() Config {
	return Config{
		Package:        "ast",
		Runtime:        "tt/ttrt",
		DefsSuffix:     ".go",
		MatcherSuffix:  ".matchers.go",
		MaxDiagnostics: 100,
	}
}

// FindConfig walks up from startDir to locate tt.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the tt.toml at path on top of Default.
func Load(path string) (Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if s := strings.TrimSpace(fc.Gen.Package); s != "" {
		cfg.Package = s
	}
	if s := strings.TrimSpace(fc.Gen.Runtime); s != "" {
		cfg.Runtime = s
	}
	cfg.DefsImport = strings.TrimSpace(fc.Gen.DefsImport)
	if meta.IsDefined("gen", "defs_suffix") {
		cfg.DefsSuffix = fc.Gen.DefsSuffix
	}
	if meta.IsDefined("gen", "matcher_suffix") {
		cfg.MatcherSuffix = fc.Gen.MatcherSuffix
	}
	for _, s := range []string{cfg.DefsSuffix, cfg.MatcherSuffix} {
		if !strings.HasSuffix(s, ".go") {
			return Config{}, fmt.Errorf("%s: %w: %q", path, ErrBadSuffix, s)
		}
	}
	if meta.IsDefined("diagnostics", "max") {
		if fc.Diagnostics.Max < 0 {
			return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
		}
		cfg.MaxDiagnostics = fc.Diagnostics.Max
	}
	for _, d := range fc.Gen.Defs {
		abs, err := resolveWithin(cfg.Root, d)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid [gen].defs entry %q: %w", path, d, err)
		}
		cfg.Defs = append(cfg.Defs, abs)
	}
	return cfg, nil
}

// Discover loads the nearest tt.toml above startDir, or returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func resolveWithin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(rel) {
		return "", errors.New("must be relative")
	}
	p := filepath.Join(root, filepath.Clean(filepath.FromSlash(rel)))
	r, err := filepath.Rel(root, p)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", errors.New("escapes project root")
	}
	return p, nil
}
