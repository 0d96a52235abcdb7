package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmorelli/augur/pkg/config"
	"github.com/urfave/cli/v2"
)

// TestGetPaths verifies path handling from CLI arguments.
func TestGetPaths(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no args defaults to current dir",
			args:     []string{},
			expected: []string{"."},
		},
		{
			name:     "single path",
			args:     []string{"/foo/bar"},
			expected: []string{"/foo/bar"},
		},
		{
			name:     "multiple paths",
			args:     []string{"/foo", "/bar"},
			expected: []string{"/foo", "/bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Action: func(c *cli.Context) error {
					result := getPaths(c)
					if len(result) != len(tt.expected) {
						t.Errorf("getPaths() = %v, want %v", result, tt.expected)
						return nil
					}
					for i := range result {
						if result[i] != tt.expected[i] {
							t.Errorf("getPaths()[%d] = %q, want %q", i, result[i], tt.expected[i])
						}
					}
					return nil
				},
			}
			if err := app.Run(append([]string{"augur"}, tt.args...)); err != nil {
				t.Fatalf("app.Run() error = %v", err)
			}
		})
	}
}

func TestCollectFiles(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	direct := write("sort.pseudo", "x")
	write("sub/fib.pseudo", "x")
	write("sub/notes.md", "x")

	cfg := config.DefaultConfig()

	// A plain file is taken as-is even without a known extension.
	files, err := collectFiles(cfg, []string{direct})
	if err != nil {
		t.Fatalf("collectFiles() error = %v", err)
	}
	if len(files) != 1 || files[0] != direct {
		t.Errorf("collectFiles() = %v, want [%s]", files, direct)
	}

	// Directories are scanned with extension filtering.
	files, err = collectFiles(cfg, []string{tmpDir})
	if err != nil {
		t.Fatalf("collectFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("collectFiles() found %d files, want 2: %v", len(files), files)
	}

	if _, err := collectFiles(cfg, []string{filepath.Join(tmpDir, "missing")}); err == nil {
		t.Error("collectFiles() should fail for a missing path")
	}
}

func TestAnalyzeCommandRuns(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "loop.pseudo")
	source := `procedure Walk(A, n)
begin
    for i <- 1 to n do
        print A[i]
end`
	if err := os.WriteFile(src, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(tmpDir, "out.json")

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.StringFlag{Name: "format", Value: "text"},
			&cli.StringFlag{Name: "output"},
			&cli.BoolFlag{Name: "no-color"},
		},
		Commands: []*cli.Command{analyzeCmd()},
	}

	err := app.Run([]string{"augur", "--format", "json", "--output", out, "analyze", src})
	if err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 {
		t.Error("analyze wrote no output")
	}
}
