package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Splitter cuts multi-document notification bundles into single-page PDFs
// so each notice can be classified and renamed on its own.
type Splitter struct {
	conf *model.Configuration
}

// NewSplitter creates a splitter with relaxed validation; portal-generated
// bundles are frequently not strictly conformant.
func NewSplitter() *Splitter {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Splitter{conf: conf}
}

// PageCount returns the number of pages of the PDF at path.
func (s *Splitter) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// SplitSinglePages writes one PDF per page of path into outDir and returns
// the produced paths in page order.
func (s *Splitter) SplitSinglePages(path, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := api.SplitFile(path, outDir, 1, s.conf); err != nil {
		return nil, fmt.Errorf("failed to split PDF: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	matches, err := filepath.Glob(filepath.Join(outDir, base+"_*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("failed to list split output: %w", err)
	}
	sortByPageSuffix(matches)
	return matches, nil
}

// sortByPageSuffix orders split outputs by their numeric page suffix, so
// page 10 sorts after page 9 instead of after page 1.
func sortByPageSuffix(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return pageSuffix(paths[i]) < pageSuffix(paths[j])
	})
}

func pageSuffix(path string) int {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(stem, "_")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(stem[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
