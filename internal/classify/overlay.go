package classify

import (
	"fmt"
	"strings"

	"github.com/shiftsoft/taxdoc/internal/jurisdiction"
)

// fixedSequenceCodes are labels that never receive jurisdiction sequencing.
// National-tax and consumption-tax notices are single-issuer documents, and
// the prefecture payment notice keeps its base code by convention.
var fixedSequenceCodes = map[string]bool{
	"0003_受信通知": true,
	"0004_納付情報": true,
	"3003_受信通知": true,
	"3004_納付情報": true,
	"1004_納付情報": true,
}

// applySequencing renumbers local-tax results to the ordinal of the detected
// jurisdiction and splices the jurisdiction name into placeholder labels.
// Results outside the local-tax domain, fixed labels, and receipts already
// sequenced by the local-receipt stage pass through unchanged.
func (e *Engine) applySequencing(res *Result, juris *jurisdiction.Context, det jurisdiction.Detection, detected bool) {
	if juris == nil || res.Method == MethodLocalTaxReceipt {
		return
	}
	if fixedSequenceCodes[res.DocumentType] {
		return
	}
	if res.Domain != DomainLocalTax {
		return
	}

	prefSlot := det.SlotID
	if !detected {
		prefSlot, _ = juris.FirstSlotID()
	}
	citySlot := det.SlotID
	if !detected || !slotHasCity(juris, det.SlotID) {
		citySlot, _ = juris.FirstCitySlotID()
	}

	switch res.OriginalDocTypeCode {
	case "1001":
		ord, ok := juris.PrefectureOrdinal(prefSlot)
		if !ok {
			return
		}
		slot, _ := juris.SlotByID(prefSlot)
		res.DocumentType = spliceJurisdiction(res.DocumentType, ord, slot.Prefecture)
		res.PrefectureCode = ord

	case "2001":
		ord, ok := juris.CityOrdinal(citySlot)
		if !ok {
			return
		}
		slot, _ := juris.SlotByID(citySlot)
		res.DocumentType = spliceJurisdiction(res.DocumentType, ord, slot.Municipality())
		res.CityCode = ord

	case "1003":
		code, ok := juris.PrefectureReceiptCode(prefSlot)
		if !ok {
			return
		}
		res.DocumentType = renumber(res.DocumentType, code)
		res.PrefectureCode = code - jurisdiction.ReceiptOffset

	case "2003":
		code, ok := juris.CityReceiptCode(citySlot)
		if !ok {
			return
		}
		res.DocumentType = renumber(res.DocumentType, code)
		res.CityCode = code - jurisdiction.ReceiptOffset

	case "2004":
		code, ok := juris.CityPaymentCode(citySlot)
		if !ok {
			return
		}
		res.DocumentType = renumber(res.DocumentType, code)
		res.CityCode = code - jurisdiction.PaymentOffset
	}
}

// spliceJurisdiction replaces the code and the placeholder segment of a
// three-part label: "1001_都道府県_X" with ordinal 1011 and name 愛知県
// becomes "1011_愛知県_X".
func spliceJurisdiction(label string, ordinal int, name string) string {
	parts := strings.SplitN(label, "_", 3)
	if len(parts) != 3 {
		return label
	}
	return fmt.Sprintf("%d_%s_%s", ordinal, name, parts[2])
}

// renumber replaces the code segment of a label, keeping the title.
func renumber(label string, code int) string {
	parts := strings.SplitN(label, "_", 2)
	if len(parts) != 2 {
		return label
	}
	return fmt.Sprintf("%d_%s", code, parts[1])
}
