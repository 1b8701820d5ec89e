// Package suggest ranks known tag names against an unknown query and
// builds the list shown to the user.
//
// Ranking uses the Levenshtein edit distance over lowercased runes. A
// candidate qualifies when its distance is at most half the length of
// the longer of the two strings. An exact, case-sensitive match always
// qualifies and becomes the closest candidate.
//
// The list model carries a distinguished entry that offers to find or
// add the query in the configuration file. Its text depends on whether
// the query is itself a known tag.
package suggest
