// Package htmlsanitize cleans markup coming from configuration and dataset
// files before it reaches a page.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcOnce sync.Once
	ugc     *bluemonday.Policy

	strictOnce sync.Once
	strict     *bluemonday.Policy
)

func ugcPolicy() *bluemonday.Policy {
	ugcOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("span", "p", "a", "strong", "em")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		ugc = p
	})
	return ugc
}

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Sanitize keeps safe formatting and links and removes scripts, event
// handlers, iframes and forms.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugcPolicy().Sanitize(s)
}

// SafeHTML sanitizes s and marks the result as trusted for templates.
func SafeHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// PlainText strips every tag from s and returns unescaped text, ready to be
// escaped again by the template that prints it.
func PlainText(s string) string {
	if s == "" || !strings.ContainsAny(s, "<>&") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(s)))
}
