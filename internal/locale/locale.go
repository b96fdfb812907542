// Package locale resolves the display language for a request.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Tag is a supported display language.
type Tag string

const (
	Chinese Tag = "zh"
	English Tag = "en"

	// Default is used when no signal names a supported language.
	Default = Chinese
)

// Signals are the environment hints a caller collected for one resolution.
// Empty fields mean "no signal".
type Signals struct {
	// Path is the request or page path; a leading /en or /zh segment wins.
	Path string
	// Stored is a previously saved preference (cookie, flag).
	Stored string
	// Document is the language the rendering surface declares.
	Document string
	// Browser is the runtime language tag, e.g. "en-US" or "zh_CN.UTF-8".
	Browser string
}

// Resolve picks the locale from s. It never fails; the first matching signal
// wins and Default is returned when none match.
func Resolve(s Signals) Tag {
	if tag, ok := fromPath(s.Path); ok {
		return tag
	}
	if tag, ok := Parse(s.Stored); ok {
		return tag
	}
	if tag, ok := Parse(s.Document); ok {
		return tag
	}
	browser := strings.ToLower(strings.TrimSpace(s.Browser))
	switch {
	case strings.HasPrefix(browser, "zh"):
		return Chinese
	case strings.HasPrefix(browser, "en"):
		return English
	}
	return Default
}

// Parse accepts exactly "zh" or "en" (surrounding space and case ignored).
func Parse(s string) (Tag, bool) {
	switch Tag(strings.ToLower(strings.TrimSpace(s))) {
	case Chinese:
		return Chinese, true
	case English:
		return English, true
	default:
		return "", false
	}
}

func fromPath(path string) (Tag, bool) {
	for _, tag := range []Tag{English, Chinese} {
		prefix := "/" + string(tag)
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return tag, true
		}
	}
	return "", false
}

// BrowserTag returns the highest-priority tag of an Accept-Language header,
// or "" when the header is empty or malformed.
func BrowserTag(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

func (t Tag) String() string { return string(t) }
