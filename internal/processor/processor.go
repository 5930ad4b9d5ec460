// Package processor runs the batch pipeline: walk an input directory,
// classify each document, resolve its filing period, and write the renamed
// copy into the output directory.
package processor

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/shiftsoft/taxdoc/internal/classify"
	"github.com/shiftsoft/taxdoc/internal/config"
	"github.com/shiftsoft/taxdoc/internal/jurisdiction"
	"github.com/shiftsoft/taxdoc/internal/naming"
	"github.com/shiftsoft/taxdoc/internal/pdf"
	"github.com/shiftsoft/taxdoc/internal/period"
)

// FileResult records the outcome for a single input file (or a single page
// cut out of a bundle).
type FileResult struct {
	Source          string   `json:"source"`
	Output          string   `json:"output,omitempty"`
	Code            string   `json:"code"`
	DocumentType    string   `json:"document_type"`
	Method          string   `json:"method"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	Period          string   `json:"period,omitempty"`
	PeriodNeeded    bool     `json:"period_needed,omitempty"`
	SplitPage       int      `json:"split_page,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Summary aggregates a directory run.
type Summary struct {
	Processed int          `json:"processed"`
	Renamed   int          `json:"renamed"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Results   []FileResult `json:"results"`
}

// Processor owns the collaborators for one batch. The jurisdiction context
// is built once per batch and shared read-only across files.
type Processor struct {
	engine    *classify.Engine
	juris     *jurisdiction.Context
	extractor *pdf.Extractor
	validator *pdf.Validator
	splitter  *pdf.Splitter
	outputDir string
	yymm      string
	logger    *log.Logger
	debug     bool
}

// New builds a processor from the loaded configuration. Slot
// misconfiguration fails here, before any document is touched.
func New(cfg *config.Config) (*Processor, error) {
	juris, err := cfg.Jurisdiction()
	if err != nil {
		return nil, err
	}

	engine := classify.NewEngineWithConfig(classify.Config{Debug: cfg.IsDebug()})
	logger := log.New(os.Stderr, "[taxdoc] ", log.LstdFlags)
	if cfg.IsDebug() {
		engine.SetLogFunc(logger.Printf)
	}

	return &Processor{
		engine:    engine,
		juris:     juris,
		extractor: pdf.NewExtractor(cfg.MaxFileSize),
		validator: pdf.NewValidator(cfg.MaxFileSize),
		splitter:  pdf.NewSplitter(),
		outputDir: cfg.OutputDirectory,
		yymm:      cfg.YYMM,
		logger:    logger,
		debug:     cfg.IsDebug(),
	}, nil
}

// Engine exposes the classification engine, for callers that classify raw
// text without going through files.
func (p *Processor) Engine() *classify.Engine { return p.engine }

// Jurisdiction exposes the batch's jurisdiction context.
func (p *Processor) Jurisdiction() *jurisdiction.Context { return p.juris }

// ProcessDirectory classifies and renames every supported file directly
// under dir. Subdirectories are not descended into.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read input directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(p.outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", p.outputDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".pdf" && ext != ".csv" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	summary := &Summary{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		results, err := p.ProcessFile(ctx, filepath.Join(dir, name))
		summary.Processed++
		if err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, FileResult{
				Source: name,
				Error:  err.Error(),
			})
			p.logger.Printf("failed: %s: %v", name, err)
			continue
		}
		for _, r := range results {
			if r.Output != "" {
				summary.Renamed++
			} else {
				summary.Skipped++
			}
			summary.Results = append(summary.Results, r)
		}
	}
	return summary, nil
}

// ClassifyFile classifies a single file without renaming it. CSV files are
// classified on the filename channel only.
func (p *Processor) ClassifyFile(ctx context.Context, path string) (*classify.Result, error) {
	filename := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return p.engine.Classify(ctx, "", filename, p.juris)
	case ".pdf":
		extraction, err := p.extractor.ExtractText(path)
		if err != nil {
			return nil, fmt.Errorf("text extraction failed for %s: %w", filename, err)
		}
		return p.engine.Classify(ctx, extraction.Text(), filename, p.juris)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// ProcessFile classifies one file and writes its renamed copy (or copies,
// when a bundle is cut into pages) into the output directory.
func (p *Processor) ProcessFile(ctx context.Context, path string) ([]FileResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		res, err := p.processCSV(ctx, path)
		if err != nil {
			return nil, err
		}
		return []FileResult{res}, nil
	case ".pdf":
		return p.processPDF(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// processCSV classifies on the filename channel only. CSV exports carry no
// extractable text for the engine.
func (p *Processor) processCSV(ctx context.Context, path string) (FileResult, error) {
	filename := filepath.Base(path)
	res, err := p.engine.Classify(ctx, "", filename, p.juris)
	if err != nil {
		return FileResult{}, err
	}
	return p.rename(path, filename, ".csv", res, 0)
}

func (p *Processor) processPDF(ctx context.Context, path string) ([]FileResult, error) {
	filename := filepath.Base(path)

	validation, err := p.validator.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("invalid PDF %s: %s", filename, validation.Message)
	}

	extraction, err := p.extractor.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed for %s: %w", filename, err)
	}

	res, err := p.engine.Classify(ctx, extraction.Text(), filename, p.juris)
	if err != nil {
		return nil, err
	}

	if extraction.PageCount() > 1 && !res.Meta.NoSplit {
		return p.processBundle(ctx, path, filename)
	}

	single, err := p.rename(path, filename, ".pdf", res, 0)
	if err != nil {
		return nil, err
	}
	return []FileResult{single}, nil
}

// processBundle cuts a multi-page PDF into single pages and classifies each
// page on its own. Blank pages are skipped, not renamed.
func (p *Processor) processBundle(ctx context.Context, path, filename string) ([]FileResult, error) {
	workDir, err := os.MkdirTemp("", "taxdoc-split-")
	if err != nil {
		return nil, fmt.Errorf("cannot create split directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	pages, err := p.splitter.SplitSinglePages(path, workDir)
	if err != nil {
		return nil, fmt.Errorf("cannot split %s: %w", filename, err)
	}
	if count, err := p.splitter.PageCount(path); err == nil && count != len(pages) {
		p.logger.Printf("split of %s produced %d files for %d pages", filename, len(pages), count)
	}

	var results []FileResult
	for i, pagePath := range pages {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		pageNo := i + 1

		extraction, err := p.extractor.ExtractText(pagePath)
		if err != nil {
			results = append(results, FileResult{
				Source:    filename,
				SplitPage: pageNo,
				Error:     err.Error(),
			})
			continue
		}
		if len(extraction.Pages) > 0 && extraction.Pages[0].Blank {
			p.logger.Printf("skipping blank page %d of %s", pageNo, filename)
			results = append(results, FileResult{
				Source:    filename,
				SplitPage: pageNo,
				Code:      "",
			})
			continue
		}

		res, err := p.engine.Classify(ctx, extraction.Text(), filename, p.juris)
		if err != nil {
			return results, err
		}
		r, err := p.rename(pagePath, filename, ".pdf", res, pageNo)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// rename resolves the period, assembles the final label, and copies src into
// the output directory under the new name.
func (p *Processor) rename(src, sourceName, ext string, res *classify.Result, pageNo int) (FileResult, error) {
	detected := detectPeriod(sourceName)
	pr := period.Resolve(res.Code(), p.yymm, detected)

	label := naming.FromResult(res, pr.YYMM)
	dest := naming.UniquePath(p.outputDir, label.Filename(ext))

	if err := copyFile(src, dest); err != nil {
		return FileResult{}, fmt.Errorf("cannot write %s: %w", dest, err)
	}

	p.logger.Printf("renamed %s -> %s (%s, confidence %.2f)",
		sourceName, filepath.Base(dest), res.Method, res.Confidence)

	return FileResult{
		Source:          sourceName,
		Output:          filepath.Base(dest),
		Code:            res.Code(),
		DocumentType:    res.DocumentType,
		Method:          res.Method,
		Confidence:      res.Confidence,
		MatchedKeywords: res.MatchedKeywords,
		Period:          pr.YYMM,
		PeriodNeeded:    pr.NeedsInput,
		SplitPage:       pageNo,
	}, nil
}

var periodTokenRe = regexp.MustCompile(`\d{2,4}[-/]\d{1,2}|\d{4,6}`)

// detectPeriod scans a filename for the first token that normalizes to a
// valid YYMM stamp.
func detectPeriod(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, tok := range periodTokenRe.FindAllString(base, -1) {
		if yymm, ok := period.Normalize(tok); ok {
			return yymm
		}
	}
	return ""
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
