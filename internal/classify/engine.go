package classify

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"github.com/shiftsoft/taxdoc/internal/jurisdiction"
)

// Classification methods, reported on every result.
const (
	MethodHighestPriorityAnd = "highest_priority_and_condition"
	MethodStandard           = "standard_keyword_matching"
	MethodFallback           = "default_fallback"
	MethodForcedPayment      = "forced_payment"
	MethodForcedReceipt      = "forced_receipt"
	MethodLocalTaxReceipt    = "local_tax_receipt"
)

// UnclassifiedLabel is the fallback label when no rule reaches the
// confidence threshold.
const UnclassifiedLabel = "9999_未分類"

// Step records one rule evaluation during standard scoring, kept for
// diagnostics.
type Step struct {
	DocumentType  string   `json:"document_type"`
	Score         float64  `json:"score"`
	Matched       []string `json:"matched_keywords,omitempty"`
	Excluded      bool     `json:"excluded"`
	ExcludeReason string   `json:"exclude_reason,omitempty"`
}

// Result is the outcome of classifying one document.
type Result struct {
	// DocumentType is the final label, jurisdiction sequencing applied
	// (e.g. "1011_愛知県_法人都道府県民税・事業税・特別法人事業税").
	DocumentType string `json:"document_type"`
	// Confidence is 0.0 through 1.0; trigger and AND-condition matches
	// report 1.0, the fallback reports 0.0.
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	Method          string   `json:"classification_method"`
	// OriginalDocTypeCode is the 4-digit base code before sequencing
	// ("1003" for a result renumbered to 1013).
	OriginalDocTypeCode string   `json:"original_doc_type_code"`
	Domain              Domain   `json:"domain"`
	Meta                RuleMeta `json:"-"`
	// PrefectureCode and CityCode are the jurisdiction ordinals applied to
	// this result, zero when sequencing did not apply.
	PrefectureCode int    `json:"prefecture_code,omitempty"`
	CityCode       int    `json:"city_code,omitempty"`
	Steps          []Step `json:"-"`
}

// Code returns the leading numeric code of the final label.
func (r *Result) Code() string {
	if i := strings.Index(r.DocumentType, "_"); i > 0 {
		return r.DocumentType[:i]
	}
	return r.DocumentType
}

// Config tunes engine construction.
type Config struct {
	// Debug enables per-rule evaluation traces on the log function.
	Debug bool
	// CacheSize caps the result cache; 0 selects the default.
	CacheSize int
}

const defaultCacheSize = 256

// Engine classifies documents against the production rule table. Safe for
// concurrent use.
type Engine struct {
	rules      []Rule
	byPriority []int
	byCode     map[string]*Rule
	matcher    *textMatcher
	debug      bool

	logMu sync.Mutex
	logFn func(format string, args ...interface{})

	cacheMu   sync.RWMutex
	cache     map[string]*Result
	cacheSize int
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return NewEngineWithConfig(Config{})
}

// NewEngineWithConfig creates an engine with the given settings.
func NewEngineWithConfig(cfg Config) *Engine {
	rules := defaultRules()

	byPriority := make([]int, len(rules))
	for i := range byPriority {
		byPriority[i] = i
	}
	sort.SliceStable(byPriority, func(a, b int) bool {
		return rules[byPriority[a]].Priority > rules[byPriority[b]].Priority
	})

	byCode := make(map[string]*Rule, len(rules))
	for i := range rules {
		byCode[rules[i].Code()] = &rules[i]
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	return &Engine{
		rules:      rules,
		byPriority: byPriority,
		byCode:     byCode,
		matcher:    newTextMatcher(rules),
		debug:      cfg.Debug,
		cache:      make(map[string]*Result),
		cacheSize:  size,
	}
}

// SetLogFunc installs a log sink for classification traces. Pass nil to
// silence the engine.
func (e *Engine) SetLogFunc(fn func(format string, args ...interface{})) {
	e.logMu.Lock()
	e.logFn = fn
	e.logMu.Unlock()
}

func (e *Engine) logf(format string, args ...interface{}) {
	e.logMu.Lock()
	fn := e.logFn
	e.logMu.Unlock()
	if fn != nil {
		fn(format, args...)
	}
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.debug {
		e.logf(format, args...)
	}
}

// Rules exposes the rule table, for listings and diagnostics.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// RuleForCode returns the rule owning a 4-digit base code.
func (e *Engine) RuleForCode(code string) (*Rule, bool) {
	r, ok := e.byCode[code]
	return r, ok
}

// Classify resolves the document label for the given extracted text and
// source filename. juris supplies the jurisdiction configuration used for
// sequencing; it may be nil, in which case results keep their base codes.
func (e *Engine) Classify(ctx context.Context, text, filename string, juris *jurisdiction.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text = Preprocess(text)
	filename = Preprocess(filename)

	key := cacheKey(text, filename, juris)
	if res, ok := e.cached(key); ok {
		return res, nil
	}

	textHits := e.matcher.hits(text)
	fileHits := e.matcher.hits(filename)
	combined := textHits.union(fileHits)

	var det jurisdiction.Detection
	detected := false
	if juris != nil {
		det, detected = juris.Detector().Detect(text, filename)
		if detected && len(det.Conflicts) > 0 {
			e.logf("%s", det.ConflictWarning())
		}
	}

	res := e.checkForced(combined)
	if res == nil {
		res = e.checkLocalReceipt(combined, juris, det, detected)
	}
	if res == nil {
		res = e.checkTopConditions(combined)
	}
	if res == nil {
		res = e.standardClassification(textHits, fileHits, combined)
	}

	e.finalize(res, juris, det, detected)
	e.store(key, res)
	return res, nil
}

// checkTopConditions scans the rule table in descending priority order and
// returns a full-confidence result on the first satisfied AND condition.
// Equal priorities resolve by table order.
func (e *Engine) checkTopConditions(combined keywordSet) *Result {
	for _, idx := range e.byPriority {
		r := &e.rules[idx]
		for i, cond := range r.TopConditions {
			ok, matched := cond.Match(combined)
			if !ok {
				continue
			}
			e.logf("top condition %d matched for %s: %v", i+1, r.Label, matched)
			return &Result{
				DocumentType:    r.Label,
				Confidence:      1.0,
				MatchedKeywords: matched,
				Method:          MethodHighestPriorityAnd,
			}
		}
	}
	return nil
}

// standardClassification accumulates keyword scores per rule and keeps the
// first best total. A rule whose exclude keyword occurs in either channel is
// skipped unless one of its top conditions also matches.
func (e *Engine) standardClassification(textHits, fileHits, combined keywordSet) *Result {
	var (
		bestLabel    string
		bestScore    float64
		bestKeywords []string
		steps        []Step
	)

	for i := range e.rules {
		r := &e.rules[i]

		textScore, textKeywords := r.textScore(textHits)
		fileScore, fileKeywords := r.filenameScore(fileHits)
		total := textScore + fileScore*filenameScoreFactor
		matched := append(textKeywords, fileKeywords...)

		excluded := false
		excludeReason := ""
		if !r.topConditionMatches(combined) {
			for _, kw := range r.ExcludeKeywords {
				if textHits[kw] || fileHits[kw] {
					excluded = true
					excludeReason = fmt.Sprintf("exclude keyword %q present", kw)
					break
				}
			}
		}

		steps = append(steps, Step{
			DocumentType:  r.Label,
			Score:         total,
			Matched:       matched,
			Excluded:      excluded,
			ExcludeReason: excludeReason,
		})

		if excluded {
			e.debugf("  %s: excluded (%s)", r.Label, excludeReason)
			continue
		}
		e.debugf("  %s: score %.1f keywords %v", r.Label, total, matched)

		if total > bestScore {
			bestScore = total
			bestLabel = r.Label
			bestKeywords = matched
		}
	}

	confidence := bestScore / confidenceDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}

	if bestLabel == "" || confidence < confidenceThreshold {
		e.logf("no rule above threshold (best %.2f), falling back to %s", confidence, UnclassifiedLabel)
		return &Result{
			DocumentType: UnclassifiedLabel,
			Confidence:   0.0,
			Method:       MethodFallback,
			Steps:        steps,
		}
	}

	e.logf("standard classification: %s score %.1f confidence %.2f", bestLabel, bestScore, confidence)
	return &Result{
		DocumentType:    bestLabel,
		Confidence:      confidence,
		MatchedKeywords: bestKeywords,
		Method:          MethodStandard,
		Steps:           steps,
	}
}

func (r *Rule) topConditionMatches(hits keywordSet) bool {
	for _, cond := range r.TopConditions {
		if ok, _ := cond.Match(hits); ok {
			return true
		}
	}
	return false
}

// finalize fills derived fields and applies jurisdiction sequencing.
func (e *Engine) finalize(res *Result, juris *jurisdiction.Context, det jurisdiction.Detection, detected bool) {
	if res.OriginalDocTypeCode == "" {
		res.OriginalDocTypeCode = res.Code()
	}
	res.Domain = DomainForCode(res.OriginalDocTypeCode)
	if r, ok := e.byCode[res.OriginalDocTypeCode]; ok {
		res.Meta = r.Meta
	}
	e.applySequencing(res, juris, det, detected)
}

func cacheKey(text, filename string, juris *jurisdiction.Context) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(filename))
	h.Write([]byte{0})
	if juris != nil {
		h.Write([]byte(juris.Fingerprint()))
	}
	return fmt.Sprintf("%x", h.Sum64())
}

func (e *Engine) cached(key string) (*Result, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	res, ok := e.cache[key]
	return res, ok
}

func (e *Engine) store(key string, res *Result) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if len(e.cache) >= e.cacheSize {
		e.cache = make(map[string]*Result)
	}
	e.cache[key] = res
}
