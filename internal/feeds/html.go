package feeds

import (
	"html"
	"strings"
)

// stripHTML flattens the HTML fragments Mastodon puts in status content
// into plain text. Paragraph and line breaks become newlines, every other
// tag is dropped, and entities are decoded.
func stripHTML(fragment string) string {
	var b strings.Builder
	b.Grow(len(fragment))

	inTag := false
	var tag strings.Builder
	for _, r := range fragment {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			switch normalizeTag(tag.String()) {
			case "br":
				b.WriteByte('\n')
			case "/p":
				b.WriteString("\n\n")
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(html.UnescapeString(b.String()))
}

func normalizeTag(raw string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	return strings.TrimSuffix(strings.ToLower(name), "/")
}
