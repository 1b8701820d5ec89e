package suggest

import (
	"fmt"
	"sort"
	"strings"
)

// Icon identifies the image drawn next to a list entry.
type Icon int

// Icons for list entries.
const (
	IconNone Icon = iota
	IconSearch
	IconAdd
)

// String returns the icon name.
func (i Icon) String() string {
	switch i {
	case IconSearch:
		return "search"
	case IconAdd:
		return "add"
	default:
		return "none"
	}
}

// Entry is one row of a suggestion list.
type Entry struct {
	Text    string
	Icon    Icon
	Special bool
}

// List is a suggestion list ready for presentation.
type List struct {
	// Query is the text the list was built for.
	Query string

	// Entries in display order.
	Entries []Entry

	// Selected is the index of the preselected entry, or -1.
	Selected int

	// Special is the text of the distinguished find/add entry.
	Special string

	// Exact reports whether the query is a known tag.
	Exact bool
}

// Texts returns the entry texts in display order.
func (l List) Texts() []string {
	texts := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		texts[i] = e.Text
	}
	return texts
}

// FindText returns the distinguished entry text for a known tag.
func FindText(query string) string {
	return fmt.Sprintf("[Find \"%s\" in WebEdit.ini]", query)
}

// AddText returns the distinguished entry text for an unknown tag.
func AddText(query string) string {
	return fmt.Sprintf("[Add \"%s\" to WebEdit.ini]", query)
}

// NotFoundText returns the sole entry text shown when nothing qualifies.
func NotFoundText(query string) string {
	return fmt.Sprintf("Tag not found. Add \"%s\" to WebEdit.ini?", query)
}

// Build turns a ranking result into a display list.
//
// Candidates are deduplicated and sorted case-insensitively. The
// distinguished entry is placed right after the closest candidate, and
// the closest candidate is preselected. With no candidates the list holds
// only the not-found entry.
func Build(query string, res Result) List {
	if len(res.Candidates) == 0 {
		text := NotFoundText(query)
		return List{
			Query:    query,
			Entries:  []Entry{{Text: text, Icon: IconAdd, Special: true}},
			Selected: 0,
			Special:  text,
		}
	}

	names := dedupe(res.Candidates)
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	special, icon := AddText(query), IconAdd
	if res.Exact {
		special, icon = FindText(query), IconSearch
	}

	list := List{
		Query:    query,
		Entries:  make([]Entry, 0, len(names)+1),
		Selected: -1,
		Special:  special,
		Exact:    res.Exact,
	}
	for _, name := range names {
		list.Entries = append(list.Entries, Entry{Text: name})
		if name == res.Closest {
			list.Selected = len(list.Entries) - 1
			list.Entries = append(list.Entries, Entry{Text: special, Icon: icon, Special: true})
		}
	}
	return list
}

// Suggest ranks tags against query and builds the display list.
func Suggest(query string, tags []string) List {
	return Build(query, Rank(query, tags))
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
