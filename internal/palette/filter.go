package palette

import "strings"

// Filter returns the snapshot items matching query, in snapshot order.
//
// A blank query matches everything. Otherwise an item matches when the
// lower-cased query is contained in its label, description or any keyword.
// Only case is folded; whitespace inside the query is significant.
func Filter(snapshot Snapshot, query string) []Item {
	if strings.TrimSpace(query) == "" {
		return append([]Item(nil), snapshot...)
	}

	q := strings.ToLower(query)
	view := make([]Item, 0, len(snapshot))
	for _, item := range snapshot {
		if matches(item, q) {
			view = append(view, item)
		}
	}
	return view
}

// matches expects q to be lower-cased already.
func matches(item Item, q string) bool {
	if strings.Contains(strings.ToLower(item.Label), q) {
		return true
	}
	if item.Description != "" && strings.Contains(strings.ToLower(item.Description), q) {
		return true
	}
	for _, kw := range item.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}
