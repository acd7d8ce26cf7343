package staticfiles

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/wss-platform/wss-backend/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(io.Discard)
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestCollect_CopiesTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	root := filepath.Join(t.TempDir(), "staticfiles")

	writeFile(t, filepath.Join(src, "css", "app.css"), "body{}")
	writeFile(t, filepath.Join(src, "js", "app.js"), "void 0")
	writeFile(t, filepath.Join(src, "favicon.ico"), "icon")

	n, err := Collect(root, []string{src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 files copied, got %d", n)
	}
	if got := readFile(t, filepath.Join(root, "css", "app.css")); got != "body{}" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestCollect_ClearsStaleFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	root := filepath.Join(t.TempDir(), "staticfiles")

	writeFile(t, filepath.Join(root, "stale.txt"), "old")
	writeFile(t, filepath.Join(src, "fresh.txt"), "new")

	if _, err := Collect(root, []string{src}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "stale.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected stale file removed, stat err=%v", err)
	}
	if got := readFile(t, filepath.Join(root, "fresh.txt")); got != "new" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestCollect_LaterSourceWins(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	root := filepath.Join(t.TempDir(), "staticfiles")

	writeFile(t, filepath.Join(first, "app.css"), "first")
	writeFile(t, filepath.Join(second, "app.css"), "second")

	n, err := Collect(root, []string{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 copies, got %d", n)
	}
	if got := readFile(t, filepath.Join(root, "app.css")); got != "second" {
		t.Fatalf("expected later source to win, got %q", got)
	}
}

func TestCollect_MissingSourceSkipped(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	root := filepath.Join(t.TempDir(), "staticfiles")

	writeFile(t, filepath.Join(src, "a.txt"), "a")

	n, err := Collect(root, []string{filepath.Join(src, "no-such-dir"), src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 file copied, got %d", n)
	}
}

func TestCollect_SourceIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFile(t, file, "x")

	if _, err := Collect(filepath.Join(dir, "out"), []string{file}); err == nil {
		t.Fatal("expected error for non-directory source")
	}
}

func TestCollect_EmptyRootRejected(t *testing.T) {
	t.Parallel()

	if _, err := Collect("", nil); err == nil {
		t.Fatal("expected error")
	}
}
