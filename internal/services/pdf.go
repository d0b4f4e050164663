package services

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFService extracts embedded text from PDF uploads. Validation and page
// counting go through pdfcpu in relaxed mode; text extraction uses
// ledongthuc/pdf page by page, skipping pages that fail to decode.
type PDFService struct {
	conf *model.Configuration
}

func NewPDFService() *PDFService {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFService{conf: conf}
}

// PageCount validates the document and returns its number of pages.
func (s *PDFService) PageCount(content []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(content), s.conf)
	if err != nil {
		return 0, wrapErr(ErrFileProcessing, "invalid PDF: %v", err)
	}
	return ctx.PageCount, nil
}

// ExtractText pulls the plain text of every page.
func (s *PDFService) ExtractText(content []byte, filename string) (*ProcessedInput, error) {
	pages, err := s.PageCount(content)
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, wrapErr(ErrFileProcessing, "failed to open PDF %q: %v", filename, err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	extracted := builder.String()
	if strings.TrimSpace(extracted) == "" {
		return nil, wrapErr(ErrFileProcessing, "no text content found in PDF %q", filename)
	}

	return &ProcessedInput{
		Kind:     InputText,
		Text:     extracted,
		Filename: filename,
		Pages:    pages,
	}, nil
}
