package classify

import (
	"fmt"

	"github.com/shiftsoft/taxdoc/internal/jurisdiction"
)

// Local-tax portal acknowledgments carry none of the national e-filing
// boilerplate, so they get their own AND-condition stage ahead of general
// scoring. Each condition requires every keyword.
var prefectureReceiptConditions = [][]string{
	{"申告受付完了通知", "法人事業税"},
	{"申告受付完了通知", "特別法人事業税"},
	{"県税事務所", "受信通知"},
	{"都税事務所", "受信通知"},
}

var municipalReceiptConditions = [][]string{
	{"申告受付完了通知", "法人市民税"},
	{"申告受付完了通知", "法人市町村民税"},
	{"市役所", "申告受付完了通知"},
	{"市長", "法人市民税", "受付完了通知"},
}

func matchReceiptConditions(hits keywordSet, conditions [][]string) []string {
	for _, cond := range conditions {
		ok := true
		for _, kw := range cond {
			if !hits[kw] {
				ok = false
				break
			}
		}
		if ok {
			return cond
		}
	}
	return nil
}

// checkLocalReceipt classifies prefecture and municipal acknowledgment
// receipts and assigns the jurisdiction-sequenced code directly. Detection
// failures fall back to the first configured slot (first municipal slot for
// city receipts) so a batch never stalls on a missing jurisdiction hint.
func (e *Engine) checkLocalReceipt(hits keywordSet, juris *jurisdiction.Context, det jurisdiction.Detection, detected bool) *Result {
	if cond := matchReceiptConditions(hits, prefectureReceiptConditions); cond != nil {
		code := jurisdiction.BasePrefectureCode + jurisdiction.ReceiptOffset
		prefOrdinal := 0
		if juris != nil {
			slotID := det.SlotID
			if !detected {
				slotID, _ = juris.FirstSlotID()
			}
			if c, ok := juris.PrefectureReceiptCode(slotID); ok {
				code = c
				prefOrdinal = c - jurisdiction.ReceiptOffset
			}
		}
		e.logf("local receipt classification: %d_受信通知 via %v", code, cond)
		return &Result{
			DocumentType:        fmt.Sprintf("%d_受信通知", code),
			Confidence:          1.0,
			MatchedKeywords:     cond,
			Method:              MethodLocalTaxReceipt,
			OriginalDocTypeCode: "1003",
			PrefectureCode:      prefOrdinal,
		}
	}

	if cond := matchReceiptConditions(hits, municipalReceiptConditions); cond != nil {
		code := jurisdiction.BaseCityCode + jurisdiction.ReceiptOffset
		cityOrdinal := 0
		if juris != nil {
			slotID := det.SlotID
			if !detected || !slotHasCity(juris, det.SlotID) {
				slotID, _ = juris.FirstCitySlotID()
			}
			if c, ok := juris.CityReceiptCode(slotID); ok {
				code = c
				cityOrdinal = c - jurisdiction.ReceiptOffset
			}
		}
		e.logf("local receipt classification: %d_受信通知 via %v", code, cond)
		return &Result{
			DocumentType:        fmt.Sprintf("%d_受信通知", code),
			Confidence:          1.0,
			MatchedKeywords:     cond,
			Method:              MethodLocalTaxReceipt,
			OriginalDocTypeCode: "2003",
			CityCode:            cityOrdinal,
		}
	}

	return nil
}

func slotHasCity(juris *jurisdiction.Context, slotID int) bool {
	s, ok := juris.SlotByID(slotID)
	return ok && s.City != ""
}
