package classify

// Phrase triggers for payment-notice and acknowledgment-receipt documents.
// These phrases are printed verbatim by the e-filing portals, so their
// presence overrides keyword scoring entirely.
var paymentIndicators = []string{
	"納付区分番号通知",
	"納付内容を確認し",
	"以下のボタンより納付",
	"メール詳細（納付区分番号通知）",
}

var receiptIndicators = []string{
	"送信されたデータを受け付けました",
	"申告データを受付けました",
	"メール詳細",
}

// receiptPaymentExclusions blocks the receipt trigger when the document also
// carries payment phrasing; such documents are payment notices that happen to
// reuse the receipt boilerplate.
var receiptPaymentExclusions = []string{
	"納付区分番号通知",
	"納付内容を確認し",
}

// forcedTaxKeywords are the tax-heading keywords consulted to pick the target
// code once a forced trigger fires.
var forcedTaxKeywords = []string{
	"法人税", "内国法人", "消費税",
	"都道府県", "県税事務所", "都税事務所",
	"市町村", "市役所", "市民税",
}

// taxBranch is one tax heading in the forced-trigger sub-selection. Branches
// are consulted in declaration order; the first one with any keyword present
// wins.
type taxBranch struct {
	keywords    []string
	paymentCode string
	receiptCode string
}

var forcedTaxBranches = []taxBranch{
	{[]string{"法人税", "内国法人"}, "0004_納付情報", "0003_受信通知"},
	{[]string{"消費税"}, "3004_納付情報", "3003_受信通知"},
	{[]string{"都道府県", "県税事務所", "都税事務所"}, "1004_納付情報", "1003_受信通知"},
	{[]string{"市町村", "市役所", "市民税"}, "2004_納付情報", "2003_受信通知"},
}

func anyHit(hits keywordSet, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if hits[kw] {
			found = append(found, kw)
		}
	}
	return found
}

// checkForced applies the phrase-trigger stage on the combined text+filename
// hit set. Payment triggers are checked before receipt triggers; the receipt
// path is suppressed when payment phrasing is present. Returns nil when no
// trigger fires or no tax heading resolves a target code.
func (e *Engine) checkForced(hits keywordSet) *Result {
	if found := anyHit(hits, paymentIndicators); len(found) > 0 {
		for _, branch := range forcedTaxBranches {
			taxHits := anyHit(hits, branch.keywords)
			if len(taxHits) == 0 {
				continue
			}
			e.logf("forced payment classification: %s via %v", branch.paymentCode, found)
			return &Result{
				DocumentType:    branch.paymentCode,
				Confidence:      1.0,
				MatchedKeywords: append(found, taxHits...),
				Method:          MethodForcedPayment,
			}
		}
	}

	if found := anyHit(hits, receiptIndicators); len(found) > 0 {
		if len(anyHit(hits, receiptPaymentExclusions)) > 0 {
			return nil
		}
		for _, branch := range forcedTaxBranches {
			taxHits := anyHit(hits, branch.keywords)
			if len(taxHits) == 0 {
				continue
			}
			e.logf("forced receipt classification: %s via %v", branch.receiptCode, found)
			return &Result{
				DocumentType:    branch.receiptCode,
				Confidence:      1.0,
				MatchedKeywords: append(found, taxHits...),
				Method:          MethodForcedReceipt,
			}
		}
	}

	return nil
}
