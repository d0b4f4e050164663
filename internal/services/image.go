package services

import (
	"bytes"
	"image"

	_ "image/jpeg"
	_ "image/png"
)

// DetectImageMIMEType sniffs the format from the file's magic bytes.
// Unknown formats default to JPEG, mirroring what the provider tolerates best.
func DetectImageMIMEType(content []byte) string {
	head := content
	if len(head) > 12 {
		head = head[:12]
	}
	switch {
	case bytes.HasPrefix(content, []byte{0xff, 0xd8, 0xff}):
		return "image/jpeg"
	case bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(content, []byte("GIF87a")) || bytes.HasPrefix(content, []byte("GIF89a")):
		return "image/gif"
	case bytes.HasPrefix(content, []byte("RIFF")) && bytes.Contains(head, []byte("WEBP")):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// processImageFile validates that the upload decodes as an image and keeps
// the raw bytes for the multimodal prompt.
func processImageFile(content []byte, filename string) (*ProcessedInput, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		return nil, wrapErr(ErrFileProcessing, "failed to process image %q: %v", filename, err)
	}

	return &ProcessedInput{
		Kind:     InputImage,
		Image:    content,
		MIMEType: DetectImageMIMEType(content),
		Filename: filename,
	}, nil
}
