package site

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// readDocument reads and parses the HTML file at path. The raw bytes are returned too
// because some extraction works on markup rather than on the tree.
func readDocument(path string) (*goquery.Document, []byte, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, nil, errors.FileSystemError("failed to read document").WithCause(chain(ErrArticleParse, err)).
			WithContext("path", path).
			Build()
	}

	doc, err := parseDocument(raw)
	if err != nil {
		return nil, nil, errors.ParseError("failed to parse document").WithCause(chain(ErrArticleParse, err)).
			WithContext("path", path).
			Build()
	}
	return doc, raw, nil
}

func parseDocument(raw []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// writeDocument serializes doc and replaces path atomically: the markup goes to a
// temporary file in the same directory which is then renamed over path.
func writeDocument(doc *goquery.Document, path string) error {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return errors.InternalError("failed to serialize document").WithCause(err).
				WithContext("path", path).
				Build()
		}
	}
	return writeFileAtomic(path, buf.Bytes())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".zimsite-*.tmp")
	if err != nil {
		return fsError(err, "failed to create temporary file", path)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fsError(err, "failed to write document", path)
	}
	if err := tmp.Close(); err != nil {
		return fsError(err, "failed to write document", path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fsError(err, "failed to set document permissions", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fsError(err, "failed to replace document", path)
	}
	return nil
}

func fsError(err error, message, path string) error {
	return errors.FileSystemError(message).WithCause(err).
		WithContext("path", path).
		Build()
}
