// Package draft assembles the weeknotes post skeleton: Jekyll frontmatter
// plus per-source sections built from stored items. Prose is left to the
// author; this produces structure, not writing.
package draft

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eastgate/weeknotes/internal/store"
	"github.com/eastgate/weeknotes/internal/week"
)

// Fallback section texts for weeks with no activity from a source.
const (
	noMastodonContent = "*No Mastodon activity found for this period.*"
	noLinkdingContent = "*No bookmarks found for this period.*"
)

// Input is everything Compose needs to render a skeleton.
type Input struct {
	Week   week.Info
	Author string
	Items  []store.Item
}

// frontmatter is the Jekyll post header.
type frontmatter struct {
	Layout string   `yaml:"layout"`
	Title  string   `yaml:"title"`
	Date   string   `yaml:"date"`
	Author string   `yaml:"author,omitempty"`
	Tags   []string `yaml:"tags,omitempty"`
}

// Compose renders the embedded template with the week's items. Sections
// for sources with no items get a placeholder note so the skeleton always
// has the same shape.
func Compose(in Input) (string, error) {
	sunday := in.Week.End.AddDate(0, 0, -1)

	fm, err := yaml.Marshal(frontmatter{
		Layout: "post",
		Title:  in.Week.Title,
		Date:   sunday.Format(week.DateLayout),
		Author: in.Author,
		Tags:   collectTags(in.Items),
	})
	if err != nil {
		return "", fmt.Errorf("render frontmatter: %w", err)
	}

	vars := map[string]string{
		"FRONTMATTER":      string(fm),
		"TITLE":            in.Week.Title,
		"WEEK_RANGE":       fmt.Sprintf("%s to %s", in.Week.Start.Format(week.DateLayout), sunday.Format(week.DateLayout)),
		"START_DATE":       in.Week.Start.Format(week.DateLayout),
		"END_DATE":         sunday.Format(week.DateLayout),
		"POST_DATE":        sunday.Format(week.DateLayout),
		"MASTODON_CONTENT": mastodonSection(in.Items),
		"LINKDING_CONTENT": linkdingSection(in.Items),
	}

	result := weeknotesTemplate
	for key, val := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", val)
	}
	return result, nil
}

// mastodonSection lists each post's text with a link back to the original.
func mastodonSection(items []store.Item) string {
	var lines []string
	for _, item := range items {
		if item.Source != store.SourceMastodon {
			continue
		}
		text := strings.Join(strings.Fields(item.Content), " ")
		if item.URL != "" {
			lines = append(lines, fmt.Sprintf("- %s ([post](%s))", text, item.URL))
		} else {
			lines = append(lines, "- "+text)
		}
	}
	if len(lines) == 0 {
		return noMastodonContent
	}
	return strings.Join(lines, "\n")
}

// linkdingSection lists each bookmark as a markdown link.
func linkdingSection(items []store.Item) string {
	var lines []string
	for _, item := range items {
		if item.Source != store.SourceLinkding {
			continue
		}
		title := item.Title
		if title == "" {
			title = item.URL
		}
		line := fmt.Sprintf("- [%s](%s)", title, item.URL)
		if item.Content != "" {
			line += ": " + item.Content
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return noLinkdingContent
	}
	return strings.Join(lines, "\n")
}

// collectTags deduplicates item tags in first-seen order.
func collectTags(items []store.Item) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, item := range items {
		for _, tag := range item.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
