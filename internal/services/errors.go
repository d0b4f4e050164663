package services

import (
	"errors"
	"fmt"
)

var (
	// ErrAIUnavailable is returned when the provider integration is not configured.
	ErrAIUnavailable = errors.New("ai provider is not configured")

	// ErrUnsupportedFileType marks uploads with an extension nothing can extract.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge marks uploads over the configured size cap.
	ErrFileTooLarge = errors.New("file size exceeded")

	// ErrFileProcessing marks extraction failures for an otherwise supported file.
	ErrFileProcessing = errors.New("file processing failed")

	// ErrAIService marks failed calls to the model provider.
	ErrAIService = errors.New("ai service failed")

	// ErrContentGeneration marks model replies that could not be parsed.
	ErrContentGeneration = errors.New("content generation failed")
)

// wrapErr keeps the sentinel visible to errors.Is while adding context.
func wrapErr(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
