// Package staticfiles materializes the derived static asset tree served by
// the front proxy. Collect clears the target and re-copies every file from
// the configured source directories; when two sources carry the same relative
// path the later source wins.
package staticfiles

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wss-platform/wss-backend/internal/logger"
)

// Collect rebuilds root from sources and returns the number of files copied.
func Collect(root string, sources []string) (int, error) {
	if root == "" {
		return 0, fmt.Errorf("staticfiles: empty root")
	}

	if err := os.RemoveAll(root); err != nil {
		return 0, fmt.Errorf("staticfiles: clear %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return 0, fmt.Errorf("staticfiles: create %s: %w", root, err)
	}

	copied := 0
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Logger.Warn().Str("dir", src).Msg("static source missing; skipped")
				continue
			}
			return copied, fmt.Errorf("staticfiles: stat %s: %w", src, err)
		}
		if !info.IsDir() {
			return copied, fmt.Errorf("staticfiles: %s is not a directory", src)
		}

		n, err := copyTree(root, src)
		if err != nil {
			return copied, err
		}
		copied += n
	}

	return copied, nil
}

func copyTree(root, src string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(root, rel)

		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		if !d.Type().IsRegular() {
			// symlinks and specials are not assets
			return nil
		}

		if err := copyFile(dst, path); err != nil {
			return fmt.Errorf("staticfiles: copy %s: %w", rel, err)
		}
		copied++
		return nil
	})
	return copied, err
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
