// Package period resolves the year-month (YYMM) token stamped into final
// filenames. The token is caller-supplied as a rule; detected values are a
// fallback, and some document types refuse them outright.
package period

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Source reports where a resolved period value came from.
type Source string

const (
	SourceUser     Source = "user"
	SourceDetected Source = "detected"
	SourceNone     Source = "none"
)

// userOnlyCodes are document types whose period can never be read off the
// document itself; asset ledgers and the payment summary carry dates that do
// not correspond to the filing period.
var userOnlyCodes = map[string]bool{
	"0000": true,
	"6001": true,
	"6002": true,
	"6003": true,
}

// Result is the outcome of a period resolution. Either Ok reports a usable
// value, or NeedsInput flags that the caller must supply one. A missing
// period on a document type that tolerates it yields Ok with an empty YYMM
// and SourceNone.
type Result struct {
	YYMM   string
	Source Source

	NeedsInput bool
	Code       string
	Hint       string
}

// Ok reports whether the resolution produced a usable (possibly empty) value.
func (r Result) Ok() bool { return !r.NeedsInput }

func needsInput(code string) Result {
	return Result{
		NeedsInput: true,
		Code:       code,
		Hint:       "a year-month (YYMM) value must be supplied for this document type",
	}
}

var (
	yymmRe     = regexp.MustCompile(`^\d{4}$`)
	yySepMMRe  = regexp.MustCompile(`^(\d{2})[^\d]?(\d{2})$`)
	yyyySepMM  = regexp.MustCompile(`^(\d{4})[^\d]?(\d{2})$`)
	monthRange = regexp.MustCompile(`^\d{2}(0[1-9]|1[0-2])$`)
)

// Normalize parses a period token into canonical YYMM form. Accepted inputs:
// "2508", "25/08", "25-08", "2025-08", "202508", full-width digits. Returns
// false for anything else or for an out-of-range month.
func Normalize(v string) (string, bool) {
	s := strings.TrimSpace(norm.NFKC.String(v))
	if s == "" {
		return "", false
	}

	var out string
	switch {
	case yymmRe.MatchString(s):
		out = s
	case yySepMMRe.MatchString(s):
		m := yySepMMRe.FindStringSubmatch(s)
		out = m[1] + m[2]
	case yyyySepMM.MatchString(s):
		m := yyyySepMM.FindStringSubmatch(s)
		out = m[1][2:] + m[2]
	default:
		return "", false
	}

	if !Valid(out) {
		return "", false
	}
	return out, true
}

// Valid reports whether a string is a canonical YYMM token with a real month.
func Valid(yymm string) bool {
	return monthRange.MatchString(yymm)
}

// Resolve applies the period policy for one document. The user-supplied
// token always wins. Document types in the user-only set refuse detected
// values and demand input when the user token is missing or malformed.
// Everything else falls back to the detected value, then to an empty token.
func Resolve(code, userInput, detected string) Result {
	code4 := code
	if len(code4) > 4 {
		code4 = code4[:4]
	}

	if yymm, ok := Normalize(userInput); ok {
		return Result{YYMM: yymm, Source: SourceUser}
	}

	if userOnlyCodes[code4] {
		return needsInput(code4)
	}

	if yymm, ok := Normalize(detected); ok {
		return Result{YYMM: yymm, Source: SourceDetected}
	}

	return Result{Source: SourceNone}
}
