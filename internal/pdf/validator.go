package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidationResult reports the outcome of validating one file.
type ValidationResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validator checks PDF files before they enter the pipeline.
type Validator struct {
	maxFileSize int64
	conf        *model.Configuration
}

// NewValidator creates a validator enforcing the given file size limit.
func NewValidator(maxFileSize int64) *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{maxFileSize: maxFileSize, conf: conf}
}

// ValidateFile reports whether the file at path is a processable PDF. An
// invalid file yields a result with the reason, not an error; errors are
// reserved for the file being unreadable.
func (v *Validator) ValidateFile(path string) (*ValidationResult, error) {
	result := &ValidationResult{Path: path}
	if err := v.check(path); err != nil {
		result.Message = err.Error()
		return result, nil
	}
	result.Valid = true
	return result, nil
}

// IsValidPDF is a boolean shorthand for ValidateFile.
func (v *Validator) IsValidPDF(path string) bool {
	return v.check(path) == nil
}

func (v *Validator) check(path string) error {
	info, err := checkFile(path, v.maxFileSize)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if err := checkHeader(path); err != nil {
		return err
	}
	if err := api.ValidateFile(path, v.conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 5)
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("cannot read file header: %w", err)
	}
	if string(header) != "%PDF-" {
		return fmt.Errorf("file does not start with a PDF header: %s", path)
	}
	return nil
}
