package layout

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// CopyAssets copies every regular file directly under srcDir into imageRoot, keeping
// file names. It does not recurse. Directories, symlinks and other non-regular entries
// are skipped and the copy continues with the next entry. It returns the number of
// files copied.
func CopyAssets(srcDir, imageRoot string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, errors.FileSystemError("failed to list asset directory").WithCause(err).
			WithContext("path", srcDir).
			Build()
	}

	if err := os.MkdirAll(imageRoot, 0o750); err != nil {
		return 0, errors.FileSystemError("failed to create image directory").WithCause(err).
			WithContext("path", imageRoot).
			Build()
	}

	copied := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			slog.Debug("Skipping non-file asset entry", "path", filepath.Join(srcDir, entry.Name()))
			continue
		}

		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(imageRoot, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return copied, errors.FileSystemError("failed to copy asset").WithCause(err).
				WithContext("path", src).
				WithContext("target", dst).
				Build()
		}
		copied++
	}
	return copied, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
