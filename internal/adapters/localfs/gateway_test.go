package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func setupTestCorpus(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "advanced"), 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	files := map[string]string{
		"readme.md":          "# Readme\n\n[[getting-started]]\n",
		"advanced/config.md": "# Config\n",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, rel), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return tmpDir
}

func TestGateway_ReadDir(t *testing.T) {
	gw := New(setupTestCorpus(t))

	entries, err := gw.ReadDir(context.Background(), ".")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	byName := make(map[string]bool)
	for _, e := range entries {
		byName[e.Name] = e.IsDir
	}
	if isDir, ok := byName["readme.md"]; !ok || isDir {
		t.Error("expected readme.md as a file entry")
	}
	if isDir, ok := byName["advanced"]; !ok || !isDir {
		t.Error("expected advanced as a directory entry")
	}
}

func TestGateway_ReadDirBuildsRelativePaths(t *testing.T) {
	gw := New(setupTestCorpus(t))

	entries, err := gw.ReadDir(context.Background(), "advanced")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "advanced/config.md" {
		t.Errorf("expected advanced/config.md, got %+v", entries)
	}
}

func TestGateway_ReadFile(t *testing.T) {
	gw := New(setupTestCorpus(t))

	content, err := gw.ReadFile(context.Background(), "advanced/config.md")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "# Config\n" {
		t.Errorf("unexpected content %q", content)
	}

	if _, err := gw.ReadFile(context.Background(), "missing.md"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestGateway_StatFingerprintChangesWithContent(t *testing.T) {
	root := setupTestCorpus(t)
	gw := New(root)

	before, err := gw.Stat(context.Background(), "readme.md")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "readme.md"), []byte("# Readme but longer now\n"), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	after, err := gw.Stat(context.Background(), "readme.md")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if before == after {
		t.Error("fingerprint should change when the file changes")
	}
}

func TestGateway_IsLocal(t *testing.T) {
	if New(t.TempDir()).Remote() {
		t.Error("local gateway must not report remote")
	}
}
