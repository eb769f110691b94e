// Package wildcard decides whether free-text spans bound to a parameter slot
// by fuzzy matching are acceptable as list items.
//
// The test is a heuristic for "is this a simple noun phrase": fewer than
// three space-separated tokens and no English closed-class word among them.
// It is not a parser; false positives and negatives are expected.
package wildcard

import "strings"

// closedClassWords are English function words that rarely belong in a
// simple noun phrase. Matching is exact and case-sensitive.
var closedClassWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "so": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "about": true,
	"as": true, "if": true, "then": true, "than": true, "when": true,
	"where": true, "why": true, "how": true,
	// reference words
	"this": true, "that": true, "these": true, "those": true, "it": true, "them": true,
}

// maxTokens is the first token count that is rejected.
const maxTokens = 3

// IsClosedClass reports whether any token of s is a closed-class word.
func IsClosedClass(s string) bool {
	for _, tok := range strings.Split(s, " ") {
		if closedClassWords[tok] {
			return true
		}
	}
	return false
}

// IsSimpleNoun reports whether s passes the simple-noun heuristic.
func IsSimpleNoun(s string) bool {
	return len(strings.Split(s, " ")) < maxTokens && !IsClosedClass(s)
}

// Validate reports whether every candidate is a simple noun. It stops at the
// first candidate that fails. An empty sequence is accepted.
func Validate(candidates []string) bool {
	for _, c := range candidates {
		if !IsSimpleNoun(c) {
			return false
		}
	}
	return true
}
