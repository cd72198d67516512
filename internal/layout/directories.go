package layout

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// Archive folder names inside an unpacked ZIM export.
const (
	articleFolder = "A"
	imageFolder   = "I"
	imageSubdir   = "m"
	outputFolder  = "wiki"
)

// Directories holds the semantic sub-paths of one unpacked archive.
type Directories struct {
	Root        string
	ArticleRoot string // <root>/A, as extracted
	ImageRoot   string // <root>/I/m
	OutputRoot  string // <root>/wiki, where articles live after MoveArticles
}

// Resolve maps an unpacked archive root to its semantic directories. It performs no I/O.
func Resolve(root string) Directories {
	return Directories{
		Root:        root,
		ArticleRoot: filepath.Join(root, articleFolder),
		ImageRoot:   filepath.Join(root, imageFolder, imageSubdir),
		OutputRoot:  filepath.Join(root, outputFolder),
	}
}

// MoveArticles renames the article folder to the output folder. It reports moved=false
// without touching anything when the output folder already exists, so reruns are safe.
func MoveArticles(dirs Directories) (moved bool, err error) {
	if _, err := os.Stat(dirs.OutputRoot); err == nil {
		return false, nil
	}

	if err := os.Rename(dirs.ArticleRoot, dirs.OutputRoot); err != nil {
		return false, errors.FileSystemError("failed to move article folder").WithCause(err).
			WithContext("path", dirs.ArticleRoot).
			WithContext("target", dirs.OutputRoot).
			Build()
	}
	return true, nil
}
