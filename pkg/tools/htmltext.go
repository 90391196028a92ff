package tools

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeHTML reports whether the payload is plausibly an HTML document.
func LooksLikeHTML(s string) bool {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body")
}

// HTMLToText extracts readable text from an HTML document, dropping script
// and style content and collapsing whitespace.
func HTMLToText(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	text := collapseWhitespace(root.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// collapseWhitespace joins non-empty lines and squeezes runs of spaces.
func collapseWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
