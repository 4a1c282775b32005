// internal/factcheck/claims.go
// Pattern-based claim detection. A sentence becomes a claim candidate when
// it matches at least one factual-indicator category and none of the
// pure-opinion patterns; candidates are ranked by how many distinct
// categories they match.
package factcheck

import (
	"regexp"
	"sort"
	"strings"
)

// MinSentenceLen filters out fragments too short to carry a claim.
const MinSentenceLen = 15

// MaxClaims caps how many candidate claims are kept per statement.
const MaxClaims = 3

// category is one family of factual indicators.
type category struct {
	name string
	re   *regexp.Regexp
}

var categories = []category{
	{"percentage", regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(%|percent)`)},
	{"number", regexp.MustCompile(`(?i)\b\d[\d,]*\b`)},
	{"money", regexp.MustCompile(`(?i)(\$\d|\b(billion|million|trillion)\b)`)},
	{"trend", regexp.MustCompile(`(?i)\b(increased|decreased|rose|fell|doubled|grew|shrank|cut|created|lost)\b`)},
	{"year", regexp.MustCompile(`\b(19|20)\d{2}\b`)},
	{"citation", regexp.MustCompile(`(?i)\b(according to|research shows|studies show|data shows|report(s|ed)?)\b`)},
	{"policy", regexp.MustCompile(`(?i)\b(signed|passed|vetoed|enacted|repealed|proposed|voted|rejoined|invested|committed)\b`)},
	{"economy", regexp.MustCompile(`(?i)\b(jobs?|unemployment|inflation|wages?|economy|economic|tax(es)?|gdp|trade)\b`)},
	{"security", regexp.MustCompile(`(?i)\b(crime|police|border|military|security|violence)\b`)},
	{"infrastructure", regexp.MustCompile(`(?i)\b(roads?|bridges?|broadband|infrastructure|grid|pipelines?|charging stations?)\b`)},
	{"place", regexp.MustCompile(`\b(America|American|United States|China|Russia|Mexico|Europe|India|Paris)\b`)},
	{"institution", regexp.MustCompile(`(?i)\b(congress|senate|white house|supreme court|administration|biden|trump|obama|sanders|democrats|republicans)\b`)},
	{"absolute", regexp.MustCompile(`(?i)\b(always|never|all|none|every|no one)\b`)},
}

// Opinion patterns disqualify a sentence outright.
var opinionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(i think|i believe|i feel|in my opinion|personally|look,)`),
	regexp.MustCompile(`(?i)\b(is|are|was|were)\s+(great|terrible|wonderful|awful|amazing|horrible|fantastic|disgraceful)\b`),
	regexp.MustCompile(`(?i)^(we|you|they) (need|must|should|deserve)\b`),
}

// Hard indicators required for a claim to be considered checkable; softer
// topical matches alone are not enough to verify anything.
var hardCategories = map[string]bool{
	"percentage": true,
	"number":     true,
	"money":      true,
	"trend":      true,
	"year":       true,
	"citation":   true,
	"policy":     true,
}

// Pure-value statements pass the category filter on topical words alone
// but assert nothing verifiable.
var pureValuePattern = regexp.MustCompile(`(?i)\b(matter(s)?|important|crucial|vital|sacred|fundamental|right thing)\b`)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks a statement into trimmed, non-empty sentences.
func splitSentences(statement string) []string {
	parts := sentenceSplit.Split(statement, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isOpinion reports whether a sentence matches a pure-opinion pattern.
func isOpinion(sentence string) bool {
	for _, re := range opinionPatterns {
		if re.MatchString(sentence) {
			return true
		}
	}
	return false
}

// matchCategories returns the names of all indicator categories the
// sentence matches.
func matchCategories(sentence string) []string {
	var matched []string
	for _, c := range categories {
		if c.re.MatchString(sentence) {
			matched = append(matched, c.name)
		}
	}
	return matched
}

// ExtractClaims returns up to MaxClaims candidate claims from a statement,
// strongest first. Sentences under MinSentenceLen characters or matching
// opinion patterns are discarded; the rest are ranked by distinct matched
// categories. Ties keep statement order.
func ExtractClaims(statement string) []string {
	type candidate struct {
		sentence string
		score    int
		index    int
	}

	var candidates []candidate
	for i, sentence := range splitSentences(statement) {
		if len(sentence) < MinSentenceLen || isOpinion(sentence) {
			continue
		}
		matched := matchCategories(sentence)
		if len(matched) == 0 {
			continue
		}
		candidates = append(candidates, candidate{sentence, len(matched), i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})

	if len(candidates) > MaxClaims {
		candidates = candidates[:MaxClaims]
	}

	claims := make([]string, len(candidates))
	for i, c := range candidates {
		claims[i] = c.sentence
	}
	return claims
}

// Checkable applies the stricter filter used before scoring: the claim
// must carry at least one hard indicator and must not be a pure-value
// statement with nothing verifiable behind it.
func Checkable(claim string) bool {
	if isOpinion(claim) {
		return false
	}
	matched := matchCategories(claim)
	hard := false
	for _, name := range matched {
		if hardCategories[name] {
			hard = true
			break
		}
	}
	if !hard {
		return false
	}
	if pureValuePattern.MatchString(claim) && len(matched) == 1 {
		return false
	}
	return true
}
