// Package pdf provides the document I/O collaborators of the pipeline: text
// extraction for classification input, bundle splitting, and validation.
package pdf

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// maxTextSize caps the total extracted text per document.
	maxTextSize = 10 * 1024 * 1024

	// blankPageRuneThreshold is the minimum number of runes of trimmed text
	// a page needs before it counts as content. Notification bundles pad
	// with empty separator pages that must not reach classification.
	blankPageRuneThreshold = 50
)

// PageText is the extracted text of one page.
type PageText struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Blank  bool   `json:"blank"`
}

// Extraction is the extracted content of one document.
type Extraction struct {
	Path  string     `json:"path"`
	Size  int64      `json:"size"`
	Pages []PageText `json:"pages"`
}

// Text returns the concatenated text of all non-blank pages, the
// classification input for the whole document.
func (e *Extraction) Text() string {
	var b strings.Builder
	for _, p := range e.Pages {
		if p.Blank {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// PageCount returns the number of pages in the document.
func (e *Extraction) PageCount() int { return len(e.Pages) }

// BlankPages returns the 1-based numbers of pages with no usable text.
func (e *Extraction) BlankPages() []int {
	var blanks []int
	for _, p := range e.Pages {
		if p.Blank {
			blanks = append(blanks, p.Number)
		}
	}
	return blanks
}

// pageBlank reports whether extracted page text falls under the content
// threshold.
func pageBlank(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < blankPageRuneThreshold
}

// Extractor reads PDF text content page by page.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates an extractor enforcing the given file size limit.
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{maxFileSize: maxFileSize}
}

// ExtractText extracts per-page text from the PDF at path. Pages that fail
// to parse are recorded as blank rather than failing the document; OCR-only
// scans legitimately yield no text.
func (x *Extractor) ExtractText(path string) (*Extraction, error) {
	info, err := checkFile(path, x.maxFileSize)
	if err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	ext := &Extraction{Path: path, Size: info.Size()}
	total := 0
	for num := 1; num <= reader.NumPage(); num++ {
		pt := PageText{Number: num, Blank: true}

		page := reader.Page(num)
		if !page.V.IsNull() {
			content, err := page.GetPlainText(nil)
			if err == nil && total < maxTextSize {
				if total+len(content) > maxTextSize {
					content = content[:maxTextSize-total]
				}
				total += len(content)
				pt.Text = content
				pt.Blank = pageBlank(content)
			}
		}

		ext.Pages = append(ext.Pages, pt)
	}

	return ext, nil
}

// checkFile stats path and rejects directories, non-PDF names, and files
// over the size limit.
func checkFile(path string, maxFileSize int64) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if maxFileSize > 0 && info.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), maxFileSize)
	}

	return info, nil
}
