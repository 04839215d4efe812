// Package query classifies free-text questions into retrieval intents using
// an ordered list of pattern rules. Classification is a pure function: the
// same question always yields the same intent and parameters.
package query

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind enumerates the retrieval intents.
type Kind int

const (
	// KindName looks up a single record by (partial) name.
	KindName Kind = iota
	// KindTopN ranks records by p2e_score and returns the first N.
	KindTopN
	// KindListing matches a term across every searchable field.
	KindListing
	// KindGeneric matches the whole question across the primary text fields.
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindTopN:
		return "top_n"
	case KindListing:
		return "listing"
	default:
		return "generic"
	}
}

// Intent is the result of classifying a question.
type Intent struct {
	Kind Kind
	Name string // KindName: the extracted name literal
	N    int    // KindTopN: requested result count
	Term string // KindListing / KindGeneric: the search term
}

const (
	topNCap     = 50
	topNDefault = 5
)

// Rules are tested in order; the first match wins.
var (
	quotedRe = regexp.MustCompile(`['"]([^'"]+)['"]`)
	phraseRe = regexp.MustCompile(`(?i)\b(?:tell me about|information on|details of|info on|who is|who's|about)\s+(?:the\s+|a\s+|an\s+)?(.+?)[?.!]*$`)
	topNRe   = regexp.MustCompile(`(?i)\btop\s+(\d+)?\s*(?:by\s+)?p2e(?:\s+score)?\b`)
	listRe   = regexp.MustCompile(`(?i)\b(?:list|show|find|who are)\s+(?:people\s+|items\s+|results\s+)?(?:in\s+|with\s+|on\s+|that have\s+)?(.+?)[?.!]*$`)
)

// Classify maps a question to exactly one Intent. Priority order: quoted
// name, phrase-triggered name, top-N ranking, listing, generic fallback.
func Classify(question string) Intent {
	q := strings.TrimSpace(question)

	if m := quotedRe.FindStringSubmatch(q); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return Intent{Kind: KindName, Name: name}
		}
	}

	if m := phraseRe.FindStringSubmatch(q); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return Intent{Kind: KindName, Name: name}
		}
	}

	if m := topNRe.FindStringSubmatch(q); m != nil {
		n := topNDefault
		if m[1] != "" {
			if parsed, err := strconv.Atoi(m[1]); err == nil && parsed > 0 {
				n = parsed
			}
		}
		if n > topNCap {
			n = topNCap
		}
		return Intent{Kind: KindTopN, N: n}
	}

	if m := listRe.FindStringSubmatch(q); m != nil {
		if term := strings.TrimSpace(m[1]); term != "" {
			return Intent{Kind: KindListing, Term: term}
		}
	}

	return Intent{Kind: KindGeneric, Term: q}
}
