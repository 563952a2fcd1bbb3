package domain

import (
	"net/url"
	"regexp"
	"strings"
)

var unsafeCSS = regexp.MustCompile(`(?i)[;{}<>"'\\]|expression\s*\(|javascript:|@import|url\s*\(`)

// CSSValue returns v if it is a plain CSS value, or "" otherwise.
func CSSValue(v string) string {
	v = strings.TrimSpace(v)
	if unsafeCSS.MatchString(v) || strings.ContainsAny(v, "\n\r") {
		return ""
	}
	return v
}

// CSSURL wraps an http(s) URL in url("..."), or returns "" for anything else.
func CSSURL(u string) string {
	u = strings.TrimSpace(u)
	if !IsHTTPURL(u) || strings.ContainsAny(u, "\"'\\()<>\n\r ") {
		return ""
	}
	return `url("` + u + `")`
}

func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
