package site

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrMissingCanonicalReference means the main page has no usable link[rel=canonical].
	ErrMissingCanonicalReference = stderrors.New("missing canonical reference")
	// ErrMissingRevisionIdentifier means the main page markup has no oldid=<digits> token.
	ErrMissingRevisionIdentifier = stderrors.New("missing revision identifier")
	// ErrFetchFailure means the live page request failed or returned a non-2xx status.
	ErrFetchFailure = stderrors.New("fetch failure")
	// ErrMergeStructure means an expected merge anchor is absent from one of the documents.
	ErrMergeStructure = stderrors.New("merge structure failure")
	// ErrArticleParse means an article file could not be read or parsed.
	ErrArticleParse = stderrors.New("article parse failure")
)

// chain returns an error matching both sentinel and cause with errors.Is.
func chain(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
