package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|ul|ol|li|br|strong|em|b|i|u|span|table|section|html|body)\b[^<>]*>`)

// IsHTML reports whether content looks like editor-produced HTML rather than
// plain text.
func IsHTML(content string) bool {
	return htmlTag.MatchString(content)
}

// Sanitize parses HTML content and returns the inner HTML of its body with
// active content removed: scripts, styles, frames, embedded objects, event
// handler attributes and javascript: links.
func Sanitize(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse resume html: %w", err)
	}
	doc.Find("script, style, iframe, frame, frameset, object, embed, link, meta, base, noscript, form").Remove()
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		var drop []string
		for _, a := range s.Get(0).Attr {
			key := strings.ToLower(a.Key)
			val := strings.ToLower(strings.TrimSpace(a.Val))
			if strings.HasPrefix(key, "on") || strings.HasPrefix(val, "javascript:") {
				drop = append(drop, a.Key)
			}
		}
		for _, k := range drop {
			s.RemoveAttr(k)
		}
	})
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize resume html: %w", err)
	}
	return strings.TrimSpace(body), nil
}
