package services

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

type PDFInspector interface {
	PageCount(filePath string) (int, error)
}

type pdfInspector struct{}

func NewPDFInspector() PDFInspector {
	return &pdfInspector{}
}

// PageCount opens the PDF at filePath and returns its number of pages. The
// parser panics on some malformed input, so panics are turned into errors.
func (p *pdfInspector) PageCount(filePath string) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.NumPage(), nil
}
