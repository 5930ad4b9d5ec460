// Package naming assembles the final output filename for a classified
// document: canonical code, jurisdiction, document title, and the period
// stamp, joined deterministically.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiftsoft/taxdoc/internal/classify"
)

// LabelSource tells whether a label passed through jurisdiction sequencing.
type LabelSource string

const (
	SourceBase    LabelSource = "base"
	SourceOverlay LabelSource = "overlay"
)

// FinalLabel is the fully resolved identity of one output document. Built
// once at label-resolution time and consumed immediately; never mutated.
type FinalLabel struct {
	Code         string
	Title        string
	Municipality string
	Period       string
	Source       LabelSource
}

// jurisdictionBearing are the base codes whose label carries a jurisdiction
// name as its middle segment.
var jurisdictionBearing = map[string]bool{
	"1001": true,
	"2001": true,
}

// FromResult derives the final label from a classification result and a
// resolved period token.
func FromResult(res *classify.Result, yymm string) FinalLabel {
	label := FinalLabel{Period: yymm, Source: SourceBase}
	if res.PrefectureCode != 0 || res.CityCode != 0 {
		label.Source = SourceOverlay
	}

	parts := strings.SplitN(res.DocumentType, "_", 3)
	label.Code = parts[0]
	switch {
	case len(parts) == 3 && jurisdictionBearing[res.OriginalDocTypeCode]:
		label.Municipality = parts[1]
		label.Title = parts[2]
	case len(parts) >= 2:
		label.Title = strings.Join(parts[1:], "_")
	}
	return label
}

// Filename renders the label into an output filename with the given
// extension (".pdf" or ".csv"). Empty segments are dropped, so a document
// without a period stamp gets no trailing underscore.
func (l FinalLabel) Filename(ext string) string {
	segments := make([]string, 0, 4)
	for _, s := range []string{l.Code, l.Municipality, l.Title, l.Period} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "_") + ext
}

// UniquePath returns a path for name under dir that does not collide with an
// existing file, suffixing "_1", "_2", ... before the extension as needed.
func UniquePath(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
