package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// extractDocx reads word/document.xml out of the .docx zip container and
// walks its XML stream: w:t carries text runs, w:p ends a paragraph, w:tab
// and w:br map to their whitespace equivalents.
func extractDocx(content []byte, filename string) (*ProcessedInput, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, wrapErr(ErrFileProcessing, "failed to open Word document %q: %v", filename, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, wrapErr(ErrFileProcessing, "Word document %q has no word/document.xml", filename)
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, wrapErr(ErrFileProcessing, "failed to read Word document %q: %v", filename, err)
	}
	defer rc.Close()

	text, paragraphs, err := walkDocumentXML(rc)
	if err != nil {
		return nil, wrapErr(ErrFileProcessing, "failed to parse Word document %q: %v", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, wrapErr(ErrFileProcessing, "no text content found in Word document %q", filename)
	}

	return &ProcessedInput{
		Kind:     InputText,
		Text:     text,
		Filename: filename,
		Pages:    paragraphs,
	}, nil
}

func walkDocumentXML(r io.Reader) (string, int, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	var inText bool
	paragraphs := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				builder.WriteByte('\t')
			case "br":
				builder.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteByte('\n')
				paragraphs++
			}
		case xml.CharData:
			if inText {
				builder.Write(el)
			}
		}
	}

	return builder.String(), paragraphs, nil
}
