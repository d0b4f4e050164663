package services

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// InputKind is what the extraction stage hands to the generation stage.
type InputKind string

const (
	InputText  InputKind = "text"
	InputImage InputKind = "image"
)

// FileKind is the coarse routing category derived from the file extension.
type FileKind string

const (
	FileKindText     FileKind = "text"
	FileKindDocument FileKind = "document"
	FileKindSheet    FileKind = "sheet"
	FileKindImage    FileKind = "image"
)

var (
	textExtensions  = []string{".txt", ".md"}
	docExtensions   = []string{".pdf", ".docx"}
	sheetExtensions = []string{".xlsx"}
	imageExtensions = []string{".png", ".jpg", ".jpeg"}
)

// SupportedExtensions lists every extension the processor accepts.
func SupportedExtensions() []string {
	out := make([]string, 0, len(textExtensions)+len(docExtensions)+len(sheetExtensions)+len(imageExtensions))
	out = append(out, textExtensions...)
	out = append(out, docExtensions...)
	out = append(out, sheetExtensions...)
	out = append(out, imageExtensions...)
	return out
}

// ProcessedInput is the normalized result of file extraction. Exactly one of
// Text or Image is populated, matching Kind.
type ProcessedInput struct {
	Kind     InputKind
	Text     string
	Image    []byte
	MIMEType string
	Filename string
	Pages    int
}

// FileService routes uploads to the extractor matching their extension.
type FileService struct {
	maxFileSize int64
	pdf         *PDFService
}

func NewFileService(maxFileSize int64, pdf *PDFService) *FileService {
	return &FileService{maxFileSize: maxFileSize, pdf: pdf}
}

// DetectKind validates the extension and returns the routing category.
func (s *FileService) DetectKind(filename string) (FileKind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case contains(textExtensions, ext):
		return FileKindText, nil
	case contains(docExtensions, ext):
		return FileKindDocument, nil
	case contains(sheetExtensions, ext):
		return FileKindSheet, nil
	case contains(imageExtensions, ext):
		return FileKindImage, nil
	default:
		return "", wrapErr(ErrUnsupportedFileType, "file type %q is not supported", ext)
	}
}

// Process validates and extracts the uploaded file into a ProcessedInput.
func (s *FileService) Process(content []byte, filename string) (*ProcessedInput, error) {
	if int64(len(content)) > s.maxFileSize {
		return nil, wrapErr(ErrFileTooLarge, "file size (%.2fMB) exceeds maximum allowed size (%dMB)",
			float64(len(content))/(1<<20), s.maxFileSize>>20)
	}

	kind, err := s.DetectKind(filename)
	if err != nil {
		return nil, err
	}

	switch kind {
	case FileKindText:
		return processTextFile(content, filename)
	case FileKindDocument:
		if strings.EqualFold(filepath.Ext(filename), ".pdf") {
			return s.pdf.ExtractText(content, filename)
		}
		return extractDocx(content, filename)
	case FileKindSheet:
		return extractSheet(content, filename)
	case FileKindImage:
		return processImageFile(content, filename)
	default:
		return nil, wrapErr(ErrUnsupportedFileType, "file type %q is not supported", filepath.Ext(filename))
	}
}

func processTextFile(content []byte, filename string) (*ProcessedInput, error) {
	if !utf8.Valid(content) {
		return nil, wrapErr(ErrFileProcessing, "unable to decode text file %q as UTF-8", filename)
	}
	return &ProcessedInput{
		Kind:     InputText,
		Text:     string(content),
		Filename: filename,
	}, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
