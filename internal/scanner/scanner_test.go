package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmorelli/augur/pkg/config"
)

func TestNew(t *testing.T) {
	// With nil config
	s := New(nil)
	if s == nil {
		t.Fatal("New(nil) returned nil")
	}
	if s.config == nil {
		t.Error("scanner.config should not be nil when passing nil")
	}

	// With explicit config
	cfg := config.DefaultConfig()
	s = New(cfg)
	if s.config != cfg {
		t.Error("scanner.config should be the provided config")
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", name, err)
		}
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"sort.pseudo":               "begin x <- 1 end",
		"search.pc":                 "begin y <- 2 end",
		"algos/fib.pseudo":          "begin z <- 3 end",
		"readme.md":                 "# docs",
		"node_modules/a/mod.pseudo": "begin w <- 4 end",
	})

	s := New(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 3 {
		t.Errorf("ScanDir() found %d files, want 3: %v", len(result), result)
	}
	for _, f := range result {
		base := filepath.Base(f)
		if base == "readme.md" || base == "mod.pseudo" && filepath.Base(filepath.Dir(filepath.Dir(f))) == "node_modules" {
			t.Errorf("ScanDir() should not include %s", f)
		}
	}
}

func TestScanDir_Sorted(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"c.pseudo": "x",
		"a.pseudo": "x",
		"b.pseudo": "x",
	})

	s := New(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("ScanDir() found %d files, want 3", len(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i-1] > result[i] {
			t.Errorf("ScanDir() results not sorted: %v", result)
		}
	}
}

func TestScanDir_ExcludePatterns(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"keep.pseudo":     "x",
		"skip.min.pseudo": "x",
	})

	s := New(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("ScanDir() found %d files, want 1: %v", len(result), result)
	}
	if filepath.Base(result[0]) != "keep.pseudo" {
		t.Errorf("ScanDir() kept %s, want keep.pseudo", result[0])
	}
}

func TestScanDir_CustomExtensions(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"a.algo":   "x",
		"b.pseudo": "x",
	})

	cfg := config.DefaultConfig()
	cfg.Sources.Extensions = []string{".algo"}

	s := New(cfg)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 || filepath.Base(result[0]) != "a.algo" {
		t.Errorf("ScanDir() = %v, want [a.algo]", result)
	}
}

func TestScanDir_MissingRoot(t *testing.T) {
	s := New(nil)
	if _, err := s.ScanDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ScanDir() should fail for a missing root")
	}
}

func TestScanFile(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"sort.pseudo": "x",
		"readme.md":   "x",
	})

	s := New(nil)

	ok, err := s.ScanFile(filepath.Join(tmpDir, "sort.pseudo"))
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if !ok {
		t.Error("ScanFile() should accept sort.pseudo")
	}

	ok, err = s.ScanFile(filepath.Join(tmpDir, "readme.md"))
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if ok {
		t.Error("ScanFile() should reject readme.md")
	}

	ok, err = s.ScanFile(tmpDir)
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if ok {
		t.Error("ScanFile() should reject directories")
	}

	if _, err := s.ScanFile(filepath.Join(tmpDir, "missing.pseudo")); err == nil {
		t.Error("ScanFile() should fail for a missing file")
	}
}
