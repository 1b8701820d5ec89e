package suggest

import "unicode/utf8"

// Result is the outcome of ranking tags against a query.
type Result struct {
	// Candidates are the qualifying tags in configuration order.
	Candidates []string

	// Closest is the candidate with the lowest distance. An exact match
	// wins regardless of distance. Empty when there are no candidates.
	Closest string

	// Exact reports whether the query is itself a known tag.
	Exact bool
}

// Rank returns the tags similar to query. Ties on distance keep the
// first tag encountered as the closest.
func Rank(query string, tags []string) Result {
	var res Result
	best := -1
	for _, tag := range tags {
		if tag == query {
			res.Candidates = append(res.Candidates, tag)
			res.Closest = tag
			res.Exact = true
			best = 0
			continue
		}

		d := Distance(query, tag)
		if !qualifies(d, query, tag) {
			continue
		}
		res.Candidates = append(res.Candidates, tag)
		if !res.Exact && (best < 0 || d < best) {
			res.Closest = tag
			best = d
		}
	}
	return res
}

// qualifies reports whether distance d is within half the longer
// string's rune length.
func qualifies(d int, a, b string) bool {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return d*2 <= longest
}
