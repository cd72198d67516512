package config

import "strings"

var articleErrorPolicies = map[string]ArticleErrorPolicy{
	"abort":    ArticleErrorAbort,
	"fail":     ArticleErrorAbort,
	"skip":     ArticleErrorSkip,
	"continue": ArticleErrorSkip,
}

// NormalizeArticleErrorPolicy maps a raw policy name (case-insensitive, surrounding
// space ignored, "fail" and "continue" accepted as aliases) to its policy. It returns
// "" for unknown names so validation can report the original value.
func NormalizeArticleErrorPolicy(raw string) ArticleErrorPolicy {
	return articleErrorPolicies[strings.ToLower(strings.TrimSpace(raw))]
}
