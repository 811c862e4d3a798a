package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "MINITASK_GOLDEN_UPDATE"

// Golden compares got against testdata/<name>.golden.
// With UpdateEnv set, the golden file is rewritten instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("output mismatch for %s\nWant:\n%s\nGot:\n%s", name, want, got)
	}
}

// WriteArtifact creates an executable file holding program in a temp dir
// and returns its path. The file has no data segment until it is sealed.
func WriteArtifact(t *testing.T, program string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "minitask")
	if err := os.WriteFile(path, []byte(program), 0755); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	return path
}
