// Package classify implements rule-based classification of Japanese tax
// filing documents. Rules carry priority-ordered keyword conditions; the
// engine resolves a document label and confidence from extracted text and
// the source filename.
package classify

import "strings"

// Domain groups document codes by tax area. It is derived from the leading
// digit of the 4-digit document code.
type Domain string

const (
	DomainNationalTax    Domain = "national_tax"
	DomainLocalTax       Domain = "local_tax"
	DomainConsumptionTax Domain = "consumption_tax"
	DomainAccounting     Domain = "accounting"
	DomainAssets         Domain = "assets"
	DomainSummary        Domain = "summary"
	DomainUnknown        Domain = "unknown"
)

// DomainForCode maps a document code to its domain by leading digit. Codes
// outside the known series, including the unclassified 9999, map to
// DomainUnknown.
func DomainForCode(code string) Domain {
	if code == "" {
		return DomainUnknown
	}
	switch code[0] {
	case '0':
		return DomainNationalTax
	case '1', '2':
		return DomainLocalTax
	case '3':
		return DomainConsumptionTax
	case '5':
		return DomainAccounting
	case '6':
		return DomainAssets
	case '7':
		return DomainSummary
	default:
		return DomainUnknown
	}
}

// RuleMeta carries processing hints attached to a rule's result.
type RuleMeta struct {
	// NoSplit marks ledger-style documents that must be kept whole instead
	// of being split into per-page files.
	NoSplit bool
}

// Rule is one classification target. Keyword channels mirror the matching
// stages: TopConditions short-circuit with full confidence, exact and
// partial keywords accumulate score, exclude keywords veto the rule, and
// filename keywords score against the filename only.
type Rule struct {
	Label            string
	Priority         int
	TopConditions    []AndCondition
	ExactKeywords    []string
	PartialKeywords  []string
	ExcludeKeywords  []string
	FilenameKeywords []string
	Meta             RuleMeta
}

// Code returns the leading 4-digit code of the rule label.
func (r *Rule) Code() string {
	if i := strings.Index(r.Label, "_"); i > 0 {
		return r.Label[:i]
	}
	return r.Label
}

// Domain returns the tax area the rule belongs to.
func (r *Rule) Domain() Domain {
	return DomainForCode(r.Code())
}

func (r *Rule) hasPartial(kw string) bool {
	for _, p := range r.PartialKeywords {
		if p == kw {
			return true
		}
	}
	return false
}
