package jurisdiction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSlots() []Slot {
	return []Slot{
		{ID: 1, Prefecture: "東京都"},
		{ID: 2, Prefecture: "愛知県", City: "蒲郡市"},
		{ID: 3, Prefecture: "福岡県", City: "福岡市"},
	}
}

func TestBuildOrderMapsTokyoFirst(t *testing.T) {
	maps, err := BuildOrderMaps(threeSlots())
	require.NoError(t, err)

	assert.Equal(t, map[int]int{1: 1001, 2: 1011, 3: 1021}, maps.PrefectureOrder)
	assert.Equal(t, map[int]int{2: 2001, 3: 2011}, maps.CityOrder)

	_, hasTokyoCity := maps.CityOrder[1]
	assert.False(t, hasTokyoCity, "Tokyo slot must not appear in the municipal order")
}

func TestBuildOrderMapsTokyoNotFirst(t *testing.T) {
	_, err := BuildOrderMaps([]Slot{
		{ID: 1, Prefecture: "愛知県"},
		{ID: 2, Prefecture: "東京都"},
	})
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 2, cfgErr.Slot)
	assert.Contains(t, cfgErr.Error(), "set 2")
}

func TestBuildOrderMapsTokyoWithCity(t *testing.T) {
	_, err := BuildOrderMaps([]Slot{
		{ID: 1, Prefecture: "東京都", City: "渋谷区"},
	})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 1, cfgErr.Slot)
}

func TestBuildOrderMapsWithoutTokyo(t *testing.T) {
	maps, err := BuildOrderMaps([]Slot{
		{ID: 1, Prefecture: "愛知県", City: "蒲郡市"},
		{ID: 2, Prefecture: "福岡県", City: "福岡市"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1001, 2: 1011}, maps.PrefectureOrder)
	assert.Equal(t, map[int]int{1: 2001, 2: 2011}, maps.CityOrder)
}

func TestBuildOrderMapsSkipsEmptyCities(t *testing.T) {
	maps, err := BuildOrderMaps([]Slot{
		{ID: 1, Prefecture: "東京都"},
		{ID: 2, Prefecture: "大阪府"},
		{ID: 3, Prefecture: "愛知県", City: "名古屋市"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 2001}, maps.CityOrder)
}

func TestOrdinalMonotonicity(t *testing.T) {
	slots := []Slot{
		{ID: 1, Prefecture: "東京都"},
		{ID: 2, Prefecture: "愛知県", City: "蒲郡市"},
		{ID: 3, Prefecture: "福岡県", City: "福岡市"},
		{ID: 4, Prefecture: "大阪府", City: "大阪市"},
		{ID: 5, Prefecture: "神奈川県", City: "横浜市"},
	}
	maps, err := BuildOrderMaps(slots)
	require.NoError(t, err)

	seen := map[int]bool{}
	for i, s := range slots {
		code := maps.PrefectureOrder[s.ID]
		assert.Equal(t, 1001+10*i, code)
		assert.False(t, seen[code], "duplicate prefecture ordinal %d", code)
		seen[code] = true
	}
	assert.Equal(t, 1001, maps.PrefectureOrder[1], "Tokyo always receives 1001")
}

func TestContextSequenceCodes(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	code, ok := ctx.PrefectureReceiptCode(2)
	require.True(t, ok)
	assert.Equal(t, 1013, code)

	code, ok = ctx.CityReceiptCode(3)
	require.True(t, ok)
	assert.Equal(t, 2013, code)

	code, ok = ctx.CityPaymentCode(2)
	require.True(t, ok)
	assert.Equal(t, 2004, code)

	_, ok = ctx.CityReceiptCode(1)
	assert.False(t, ok, "Tokyo has no municipal sequence")
}

func TestContextFallbackSlots(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	id, ok := ctx.FirstSlotID()
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = ctx.FirstCitySlotID()
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestDetectorPrefersOfficeContext(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	det, ok := ctx.Detector().Detect("愛知県東三河県税事務所 御中 法人事業税について", "scan001.pdf")
	require.True(t, ok)
	assert.Equal(t, 2, det.SlotID)
}

func TestDetectorCityHall(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	det, ok := ctx.Detector().Detect("福岡市役所 法人市民税申告書", "notification.pdf")
	require.True(t, ok)
	assert.Equal(t, 3, det.SlotID)
}

func TestDetectorFilenameWins(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	// The body mentions another prefecture but the curated filename names
	// the issuing office.
	det, ok := ctx.Detector().Detect("東京都内の事業所より提出", "蒲郡市役所_法人市民税.pdf")
	require.True(t, ok)
	assert.Equal(t, 2, det.SlotID)
}

func TestDetectorBlanksCompanyAddress(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	// The letterhead address mentions Fukuoka; the only remaining evidence
	// is the Aichi office.
	text := "株式会社サンプル 福岡県福岡市中央区草香江 提出先 愛知県東三河県税事務所"
	det, ok := ctx.Detector().Detect(text, "doc.pdf")
	require.True(t, ok)
	assert.Equal(t, 2, det.SlotID)
}

func TestDetectorScopesOfficeContextToSlotName(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	// The Aichi mention is a bare address fragment far from any office
	// token; the Fukuoka mention sits inside an office name. The office
	// bonus must go to Fukuoka only, even though Aichi has the lower set.
	text := "事業所所在地 愛知県名古屋市中区丸の内一丁目1番1号 サンプルビル5階 届出書類在中 提出先 福岡県西福岡県税事務所"
	det, ok := ctx.Detector().Detect(text, "doc.pdf")
	require.True(t, ok)
	assert.Equal(t, 3, det.SlotID)
}

func TestDetectorNoEvidence(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	_, ok := ctx.Detector().Detect("支店一覧と勘定科目の説明", "ledger.pdf")
	assert.False(t, ok)
}

func TestDetectorConflictWarning(t *testing.T) {
	ctx, err := NewContext(threeSlots())
	require.NoError(t, err)

	det, ok := ctx.Detector().Detect("愛知県東三河県税事務所 福岡県西福岡県税事務所", "doc.pdf")
	require.True(t, ok)
	assert.NotEmpty(t, det.Conflicts)
	assert.Contains(t, det.ConflictWarning(), "also matched")
}
