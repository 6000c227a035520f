package driver

import (
	"os"
	"testing"
)

func writeFile(path, s string) error {
	return os.WriteFile(path, []byte(s), 0o644)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}
