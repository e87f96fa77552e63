package search

import (
	"strings"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/sahilm/fuzzy"
)

// FieldSeparator joins the normalized fields of a haystack.
// Keyboard input never produces it, so a typed query cannot span two fields.
const FieldSeparator = "\x00"

// Normalize lowercases and trims s for case-insensitive matching.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Haystack builds the normalized search text for an item within its section.
// Field order: section name, section description, item title, item note, tags.
func Haystack(section *model.Section, item *model.Item) string {
	fields := make([]string, 0, 4+len(item.Tags))
	fields = append(fields,
		Normalize(section.Name),
		Normalize(section.Description),
		Normalize(item.Title),
		Normalize(item.Note),
	)
	for _, tag := range item.Tags {
		fields = append(fields, Normalize(tag))
	}
	return strings.Join(fields, FieldSeparator)
}

// Matches reports whether item (within section) is included under the
// already-normalized query. The empty query matches everything.
func Matches(section *model.Section, item *model.Item, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(query, FieldSeparator) {
		return false
	}
	return strings.Contains(Haystack(section, item), query)
}

// itemTitles implements fuzzy.Source over every item title in a document.
type itemTitles []string

func (it itemTitles) String(i int) string {
	return it[i]
}

func (it itemTitles) Len() int {
	return len(it)
}

// Suggest fuzzy-matches query against all item titles and returns up to limit
// distinct titles, best first. It is a hint for empty result sets and never
// decides visibility.
func Suggest(doc *model.Document, query string, limit int) []string {
	query = Normalize(query)
	if doc == nil || query == "" || limit <= 0 {
		return nil
	}

	var titles itemTitles
	seen := make(map[string]bool)
	for _, s := range doc.Sections {
		for _, it := range s.Items {
			if it.Title == "" || seen[it.Title] {
				continue
			}
			seen[it.Title] = true
			titles = append(titles, it.Title)
		}
	}

	matches := fuzzy.FindFrom(query, titles)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]string, len(matches))
	for i, m := range matches {
		results[i] = titles[m.Index]
	}
	return results
}
