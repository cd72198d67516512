package layout

import (
	"io/fs"
	"iter"
	"path/filepath"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// Walk returns a lazy sequence of every regular file under root, in lexical order.
// Directories are skipped. A traversal error is yielded once with an empty path and
// ends the sequence. Each call starts a fresh traversal.
func Walk(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", errors.FileSystemError("failed to walk article tree").WithCause(err).
				WithContext("path", root).
				Build())
		}
	}
}

// Count consumes a fresh traversal of root and returns the number of regular files.
func Count(root string) (int, error) {
	n := 0
	for _, err := range Walk(root) {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
