package jurisdiction

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Weights for detection evidence. Office/filing-context phrases outrank bare
// jurisdiction names because a company's own letterhead address can contain a
// prefecture or city name that has nothing to do with the issuing tax office.
const (
	weightBareName   = 1
	weightCityName   = 2
	weightOfficeHint = 3
)

// Generic office-context tokens. They count toward a slot only when the
// slot's own jurisdiction name was also found.
var officeContextTokens = []string{"県税事務所", "都税事務所", "税務署", "市役所", "町役場", "村役場"}

// Default company-address blanking patterns carried over from the deployed
// configuration. Best-effort: they cover known letterhead addresses, not
// every possible one.
var defaultAddressPatterns = []string{
	`東京都港区港南.*品川グランドセントラルタワー`,
	`愛知県蒲郡市豊岡町.*44番地`,
	`福岡県福岡市中央区草香江`,
}

// DetectorConfig tunes slot detection.
type DetectorConfig struct {
	// AddressPatterns are regexes blanked out of the text before matching,
	// to keep the filer's own address from being read as the issuing
	// jurisdiction. Nil selects the built-in defaults.
	AddressPatterns []string

	// ExtraKeywords maps slot IDs to additional evidence phrases, e.g.
	// office names that do not contain the jurisdiction name
	// ("東三河県税事務所" for an Aichi slot).
	ExtraKeywords map[int][]string
}

type slotPattern struct {
	text   string
	weight int
}

// Detection reports the outcome of one slot-detection attempt.
type Detection struct {
	SlotID  int
	Score   int
	Matched []string
	// Conflicts lists other slots whose evidence was also present; a
	// non-empty list is surfaced as an inconsistency warning, never an
	// error.
	Conflicts []int
}

// Detector locates the configured jurisdiction slot a document belongs to by
// scanning its text and filename for slot-specific evidence.
type Detector struct {
	ctx       *Context
	addressRe []*regexp.Regexp
	patterns  map[int][]slotPattern
}

func newDetector(ctx *Context, cfg DetectorConfig) *Detector {
	addrPatterns := cfg.AddressPatterns
	if addrPatterns == nil {
		addrPatterns = defaultAddressPatterns
	}

	d := &Detector{
		ctx:      ctx,
		patterns: make(map[int][]slotPattern, len(ctx.Slots)),
	}
	for _, p := range addrPatterns {
		if re, err := regexp.Compile(p); err == nil {
			d.addressRe = append(d.addressRe, re)
		}
	}

	for _, s := range ctx.Slots {
		var pats []slotPattern
		if s.Prefecture != "" {
			pats = append(pats, slotPattern{s.Prefecture, weightBareName})
		}
		if s.City != "" {
			pats = append(pats,
				slotPattern{s.City, weightCityName},
				slotPattern{s.City + "役所", weightOfficeHint},
				slotPattern{s.City + "長", weightOfficeHint},
			)
		}
		for _, kw := range cfg.ExtraKeywords[s.ID] {
			pats = append(pats, slotPattern{kw, weightOfficeHint})
		}
		d.patterns[s.ID] = pats
	}
	return d
}

// Detect scans text and filename for each slot's evidence and returns the
// best-scoring slot. Filename evidence is checked first on its own: filenames
// are curated by the submitting office and never contain the filer's
// address, so a filename hit resolves the slot without consulting the body.
func (d *Detector) Detect(text, filename string) (Detection, bool) {
	if det, ok := d.scan(filename); ok {
		return det, true
	}
	return d.scan(d.blankAddresses(text) + " " + filename)
}

func (d *Detector) blankAddresses(text string) string {
	for _, re := range d.addressRe {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// contextProximity is the byte window around a jurisdiction-name occurrence
// searched for generic office tokens; 60 bytes covers about 20 CJK runes,
// enough for office names like 東三河県税事務所 that do not themselves
// contain the jurisdiction name.
const contextProximity = 60

// officeContextNear reports whether a generic office token occurs within
// contextProximity bytes of an occurrence of name in text.
func officeContextNear(text, name string) bool {
	if name == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], name)
		if i < 0 {
			return false
		}
		i += start
		lo := i - contextProximity
		if lo < 0 {
			lo = 0
		}
		hi := i + len(name) + contextProximity
		if hi > len(text) {
			hi = len(text)
		}
		window := text[lo:hi]
		for _, tok := range officeContextTokens {
			if strings.Contains(window, tok) {
				return true
			}
		}
		start = i + len(name)
	}
}

func (d *Detector) scan(text string) (Detection, bool) {
	type scored struct {
		id      int
		score   int
		matched []string
	}
	var results []scored

	for _, s := range d.ctx.Slots {
		sc := scored{id: s.ID}
		for _, p := range d.patterns[s.ID] {
			if p.text == "" || !strings.Contains(text, p.text) {
				continue
			}
			sc.score += p.weight
			sc.matched = append(sc.matched, p.text)
		}
		// A generic office token adjacent to this slot's own name
		// strengthens it: "愛知県東三河県税事務所" should beat a bare
		// "福岡県" address fragment elsewhere in the document.
		if officeContextNear(text, s.Prefecture) || officeContextNear(text, s.City) {
			sc.score += weightOfficeHint
		}
		if sc.score > 0 {
			results = append(results, sc)
		}
	}

	if len(results) == 0 {
		return Detection{}, false
	}

	// Highest score wins; equal scores resolve to the lowest slot ID so the
	// outcome never depends on map iteration order.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].id < results[j].id
	})

	best := results[0]
	det := Detection{SlotID: best.id, Score: best.score, Matched: best.matched}
	for _, r := range results[1:] {
		det.Conflicts = append(det.Conflicts, r.id)
	}
	return det, true
}

// ConflictWarning formats a non-fatal inconsistency message for a detection
// whose evidence also pointed at other slots.
func (det Detection) ConflictWarning() string {
	if len(det.Conflicts) == 0 {
		return ""
	}
	return fmt.Sprintf("jurisdiction evidence for set %d also matched sets %v", det.SlotID, det.Conflicts)
}
