package classify

const (
	exactWeight         = 2.0
	filenameWeight      = 3.0
	cityHallBonusWeight = 9.0
	filenameScoreFactor = 1.5

	confidenceDivisor   = 10.0
	confidenceThreshold = 0.2
)

// filenameTag marks keywords that matched on the filename channel in the
// reported match list.
const filenameTag = "[ファイル名]"

// textScore scores the rule against the document text hit set. Any exclude
// keyword present vetoes the whole channel.
func (r *Rule) textScore(hits keywordSet) (float64, []string) {
	for _, kw := range r.ExcludeKeywords {
		if hits[kw] {
			return 0, nil
		}
	}

	var score float64
	var matched []string
	for _, kw := range r.ExactKeywords {
		if hits[kw] {
			score += float64(r.Priority) * exactWeight
			matched = append(matched, kw)
		}
	}
	for _, kw := range r.PartialKeywords {
		if hits[kw] {
			score += float64(r.Priority)
			matched = append(matched, kw)
		}
	}
	return score, matched
}

// filenameScore scores the rule against the filename hit set. Filename
// keywords carry a higher weight than text keywords: a curated filename is
// stronger evidence than body text. The 市役所 pattern on the municipal tax
// return rule gets an extra boost because city-hall filenames are otherwise
// drowned out by prefecture-level keywords.
func (r *Rule) filenameScore(hits keywordSet) (float64, []string) {
	for _, kw := range r.ExcludeKeywords {
		if hits[kw] {
			return 0, nil
		}
	}

	var score float64
	var matched []string
	for _, kw := range r.FilenameKeywords {
		if !hits[kw] {
			continue
		}
		weight := filenameWeight
		if kw == "市役所" && r.hasPartial("法人市民税") {
			weight = cityHallBonusWeight
		}
		score += float64(r.Priority) * weight
		matched = append(matched, filenameTag+kw)
	}
	for _, kw := range r.ExactKeywords {
		if hits[kw] {
			score += float64(r.Priority) * exactWeight
			matched = append(matched, filenameTag+kw)
		}
	}
	return score, matched
}
