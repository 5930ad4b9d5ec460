package classify

import (
	"github.com/cloudflare/ahocorasick"
)

// keywordSet records which vocabulary keywords occur in a given text.
type keywordSet map[string]bool

func (s keywordSet) union(other keywordSet) keywordSet {
	out := make(keywordSet, len(s)+len(other))
	for kw := range s {
		out[kw] = true
	}
	for kw := range other {
		out[kw] = true
	}
	return out
}

// textMatcher finds all vocabulary keywords in a text in one pass. The
// vocabulary is the union of every keyword any rule or detection stage can
// ask about, so a single automaton serves the whole pipeline.
type textMatcher struct {
	dict    []string
	matcher *ahocorasick.Matcher
}

func newTextMatcher(rules []Rule) *textMatcher {
	seen := make(map[string]bool)
	var dict []string
	add := func(kws ...string) {
		for _, kw := range kws {
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			dict = append(dict, kw)
		}
	}

	for i := range rules {
		r := &rules[i]
		for _, c := range r.TopConditions {
			add(c.Keywords...)
		}
		add(r.ExactKeywords...)
		add(r.PartialKeywords...)
		add(r.ExcludeKeywords...)
		add(r.FilenameKeywords...)
	}
	add(paymentIndicators...)
	add(receiptIndicators...)
	add(receiptPaymentExclusions...)
	add(forcedTaxKeywords...)
	for _, cond := range prefectureReceiptConditions {
		add(cond...)
	}
	for _, cond := range municipalReceiptConditions {
		add(cond...)
	}

	return &textMatcher{
		dict:    dict,
		matcher: ahocorasick.NewStringMatcher(dict),
	}
}

// hits returns the set of vocabulary keywords occurring in text.
func (m *textMatcher) hits(text string) keywordSet {
	if text == "" {
		return keywordSet{}
	}
	found := m.matcher.MatchThreadSafe([]byte(text))
	set := make(keywordSet, len(found))
	for _, idx := range found {
		set[m.dict[idx]] = true
	}
	return set
}
