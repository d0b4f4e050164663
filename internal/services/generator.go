package services

import (
	"context"
	"math"
	"time"

	"cardforge/internal/models"
)

const textInputName = "text_input"

// ContentService orchestrates extraction and generation into response envelopes.
type ContentService struct {
	files *FileService
	ai    *AIService
}

func NewContentService(files *FileService, ai *AIService) *ContentService {
	return &ContentService{files: files, ai: ai}
}

// GenerateFromFile extracts the upload and generates study cards from it.
func (s *ContentService) GenerateFromFile(ctx context.Context, content []byte, filename string, numFlashcards, numMCQs int, focus ContentFocus) (*models.GenerateContentResponse, error) {
	start := time.Now()

	input, err := s.files.Process(content, filename)
	if err != nil {
		return nil, err
	}

	cards, err := s.ai.GenerateCards(ctx, input, numFlashcards, numMCQs, focus)
	if err != nil {
		return nil, err
	}

	return s.cardsResponse(filename, cards, start), nil
}

// GenerateFromText generates study cards directly from raw text.
func (s *ContentService) GenerateFromText(ctx context.Context, text string, numFlashcards, numMCQs int, focus ContentFocus) (*models.GenerateContentResponse, error) {
	start := time.Now()

	input := &ProcessedInput{
		Kind:     InputText,
		Text:     text,
		Filename: textInputName,
	}

	cards, err := s.ai.GenerateCards(ctx, input, numFlashcards, numMCQs, focus)
	if err != nil {
		return nil, err
	}

	return s.cardsResponse(textInputName, cards, start), nil
}

// GenerateChoices generates a distractor set for a question or term.
func (s *ContentService) GenerateChoices(ctx context.Context, input string) (*models.GenerateChoicesResponse, error) {
	start := time.Now()

	choices, err := s.ai.GenerateChoices(ctx, input)
	if err != nil {
		return nil, err
	}

	return &models.GenerateChoicesResponse{
		Status: "success",
		Metadata: models.ResponseMetadata{
			OriginalFilename:      textInputName,
			AIModel:               s.ai.Model(),
			ProcessingTimeSeconds: roundSeconds(time.Since(start)),
		},
		Data: *choices,
	}, nil
}

func (s *ContentService) cardsResponse(filename string, cards []models.Card, start time.Time) *models.GenerateContentResponse {
	return &models.GenerateContentResponse{
		Status: "success",
		Metadata: models.ResponseMetadata{
			OriginalFilename:      filename,
			AIModel:               s.ai.Model(),
			ProcessingTimeSeconds: roundSeconds(time.Since(start)),
		},
		Data: models.GeneratedContent{Cards: cards},
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
