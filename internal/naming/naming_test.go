package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftsoft/taxdoc/internal/classify"
)

func TestFromResultSequencedPrefecture(t *testing.T) {
	res := &classify.Result{
		DocumentType:        "1011_愛知県_法人都道府県民税・事業税・特別法人事業税",
		OriginalDocTypeCode: "1001",
		PrefectureCode:      1011,
	}
	label := FromResult(res, "2508")

	assert.Equal(t, "1011", label.Code)
	assert.Equal(t, "愛知県", label.Municipality)
	assert.Equal(t, "法人都道府県民税・事業税・特別法人事業税", label.Title)
	assert.Equal(t, SourceOverlay, label.Source)
	assert.Equal(t, "1011_愛知県_法人都道府県民税・事業税・特別法人事業税_2508.pdf", label.Filename(".pdf"))
}

func TestFromResultBaseLabel(t *testing.T) {
	res := &classify.Result{
		DocumentType:        "0003_受信通知",
		OriginalDocTypeCode: "0003",
	}
	label := FromResult(res, "2508")

	assert.Equal(t, "0003", label.Code)
	assert.Equal(t, "", label.Municipality)
	assert.Equal(t, "受信通知", label.Title)
	assert.Equal(t, SourceBase, label.Source)
	assert.Equal(t, "0003_受信通知_2508.pdf", label.Filename(".pdf"))
}

func TestFromResultMultiSegmentTitle(t *testing.T) {
	res := &classify.Result{
		DocumentType:        "0002_添付資料_法人税",
		OriginalDocTypeCode: "0002",
	}
	label := FromResult(res, "2508")

	assert.Equal(t, "添付資料_法人税", label.Title)
	assert.Equal(t, "0002_添付資料_法人税_2508.pdf", label.Filename(".pdf"))
}

func TestFilenameWithoutPeriod(t *testing.T) {
	res := &classify.Result{
		DocumentType:        "5001_決算書",
		OriginalDocTypeCode: "5001",
	}
	label := FromResult(res, "")

	assert.Equal(t, "5001_決算書.pdf", label.Filename(".pdf"))
}

func TestFromResultSequencedReceipt(t *testing.T) {
	res := &classify.Result{
		DocumentType:        "2013_受信通知",
		OriginalDocTypeCode: "2003",
		CityCode:            2011,
	}
	label := FromResult(res, "2507")

	assert.Equal(t, "2013", label.Code)
	assert.Equal(t, "受信通知", label.Title)
	assert.Equal(t, SourceOverlay, label.Source)
	assert.Equal(t, "2013_受信通知_2507.csv", label.Filename(".csv"))
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "0003_受信通知_2508.pdf")
	assert.Equal(t, filepath.Join(dir, "0003_受信通知_2508.pdf"), first)

	require.NoError(t, os.WriteFile(first, []byte("x"), 0o644))
	second := UniquePath(dir, "0003_受信通知_2508.pdf")
	assert.Equal(t, filepath.Join(dir, "0003_受信通知_2508_1.pdf"), second)

	require.NoError(t, os.WriteFile(second, []byte("x"), 0o644))
	third := UniquePath(dir, "0003_受信通知_2508.pdf")
	assert.Equal(t, filepath.Join(dir, "0003_受信通知_2508_2.pdf"), third)
}
