package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestCheckFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := checkFile("", 1024)
	assert.ErrorContains(t, err, "path cannot be empty")

	_, err = checkFile(filepath.Join(dir, "missing.pdf"), 1024)
	assert.ErrorContains(t, err, "does not exist")

	_, err = checkFile(dir, 1024)
	assert.ErrorContains(t, err, "directory")

	txt := writeFile(t, dir, "notes.txt", []byte("hello"))
	_, err = checkFile(txt, 1024)
	assert.ErrorContains(t, err, "not a PDF")

	big := writeFile(t, dir, "big.pdf", []byte(strings.Repeat("x", 64)))
	_, err = checkFile(big, 16)
	assert.ErrorContains(t, err, "too large")
}

func TestValidatorRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	fake := writeFile(t, dir, "fake.pdf", []byte("this is not a pdf at all"))

	v := NewValidator(1 << 20)
	res, err := v.ValidateFile(fake)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "PDF header")
	assert.False(t, v.IsValidPDF(fake))
}

func TestValidatorRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.pdf", nil)

	v := NewValidator(1 << 20)
	res, err := v.ValidateFile(empty)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "empty")
}

func TestExtractorRejectsMissingFile(t *testing.T) {
	x := NewExtractor(1 << 20)
	_, err := x.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestPageBlank(t *testing.T) {
	assert.True(t, pageBlank(""))
	assert.True(t, pageBlank("   \n\t  "))
	assert.True(t, pageBlank("ページ 1"))
	assert.False(t, pageBlank(strings.Repeat("税", blankPageRuneThreshold)))
}

func TestExtractionHelpers(t *testing.T) {
	e := &Extraction{
		Pages: []PageText{
			{Number: 1, Text: "申告書の本文です", Blank: false},
			{Number: 2, Text: "", Blank: true},
			{Number: 3, Text: "続きの本文", Blank: false},
		},
	}

	assert.Equal(t, 3, e.PageCount())
	assert.Equal(t, []int{2}, e.BlankPages())
	assert.Equal(t, "申告書の本文です\n続きの本文", e.Text())
}

func TestSortByPageSuffix(t *testing.T) {
	paths := []string{
		"out/bundle_10.pdf",
		"out/bundle_2.pdf",
		"out/bundle_1.pdf",
	}
	sortByPageSuffix(paths)
	assert.Equal(t, []string{
		"out/bundle_1.pdf",
		"out/bundle_2.pdf",
		"out/bundle_10.pdf",
	}, paths)
}
