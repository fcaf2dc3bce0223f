package validate

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	msgMissingURL = "Please enter a URL."
	msgInvalidURL = "Please enter a valid URL (e.g. https://example.com/article)."
	msgBadScheme  = "Only http and https URLs are supported."
)

// Result is the outcome of validating a single input. Corrected is non-empty
// when the input was rewritten (scheme insertion) to make it pass.
type Result struct {
	Valid     bool
	Message   string
	Corrected string
}

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// ValidateURL checks whether raw is an http(s) URL the analysis service can
// fetch. Inputs without a scheme are retried with an https:// prefix; the
// correction never touches the host, so it cannot redirect the user to a
// different site.
func ValidateURL(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{Message: msgMissingURL}
	}

	if result, parsed := checkStructure(trimmed); parsed {
		return result
	}

	if !schemePrefix.MatchString(trimmed) {
		corrected := "https://" + trimmed
		if result, parsed := checkStructure(corrected); parsed && result.Valid {
			result.Corrected = corrected
			return result
		}
	}

	return Result{Message: msgInvalidURL}
}

// checkStructure runs the structural checks against a candidate. The second
// return value reports whether the candidate parsed as an absolute URL at
// all; when false the caller may still attempt an auto-correction.
func checkStructure(candidate string) (Result, bool) {
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Result{}, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Result{Message: msgBadScheme}, true
	}
	host := parsed.Hostname()
	switch {
	case len(host) < 3,
		strings.Contains(host, ".."),
		strings.HasPrefix(host, "."),
		strings.HasSuffix(host, "."):
		return Result{Message: msgInvalidURL}, true
	}
	return Result{Valid: true}, true
}
