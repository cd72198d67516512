package config

import (
	"strings"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// Validate checks the options after defaults have been applied.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.UnpackedDir) == "" {
		return errors.ValidationError("unpacked_dir is required").Build()
	}
	if err := validatePageName("main_page", o.MainPage); err != nil {
		return err
	}
	if err := validatePageName("kiwix_main_page", o.KiwixMainPage); err != nil {
		return err
	}
	switch o.Articles.OnError {
	case ArticleErrorAbort, ArticleErrorSkip:
	default:
		return errors.ValidationError("articles.on_error must be 'abort' or 'skip'").
			WithContext("value", string(o.Articles.OnError)).
			Build()
	}
	if o.Articles.Workers < 1 {
		return errors.ValidationError("articles.workers must be at least 1").
			WithContext("value", o.Articles.Workers).
			Build()
	}
	if !strings.HasPrefix(o.Articles.Postfix, ".") || strings.ContainsAny(o.Articles.Postfix, "/?#") {
		return errors.ValidationError("articles.postfix must look like a file extension").
			WithContext("value", o.Articles.Postfix).
			Build()
	}
	if o.Fetch.Timeout < 0 {
		return errors.ValidationError("fetch.timeout must not be negative").Build()
	}
	return nil
}

func validatePageName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ValidationError(field + " is required").Build()
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.ValidationError(field+" must be a file name, not a path").
			WithContext("value", name).
			Build()
	}
	return nil
}
