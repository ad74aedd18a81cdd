package catalog

import (
	"strings"

	"github.com/mrlokans/shelfcache/internal/entities"
)

// NoSummary is stored when a record has neither summaries nor subjects.
const NoSummary = "No summary available."

const listSeparator = ", "

// ToItem converts a remote record into the local storage shape. The ID is
// left zero for the store to assign.
func ToItem(r Record) entities.Item {
	return entities.Item{
		Title:    r.Title,
		Author:   authorsOf(r.Authors),
		Summary:  summaryOf(r.Summaries, r.Subjects),
		Language: strings.Join(r.Languages, listSeparator),
	}
}

// ToItems maps a page of records, preserving order.
func ToItems(records []Record) []entities.Item {
	items := make([]entities.Item, 0, len(records))
	for _, r := range records {
		items = append(items, ToItem(r))
	}
	return items
}

func authorsOf(people []Person) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return strings.Join(names, listSeparator)
}

// summaryOf picks the first non-empty summary, then the first non-empty
// subject, then NoSummary.
func summaryOf(summaries, subjects []string) string {
	if s, ok := firstNonEmpty(summaries); ok {
		return strings.ReplaceAll(s, "\r\n", " ")
	}
	if s, ok := firstNonEmpty(subjects); ok {
		return s
	}
	return NoSummary
}

func firstNonEmpty(values []string) (string, bool) {
	for _, v := range values {
		if v != "" {
			return v, true
		}
	}
	return "", false
}
