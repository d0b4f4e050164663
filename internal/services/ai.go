package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"cardforge/internal/models"
)

// chatClient is the slice of the provider client the service needs. Tests
// substitute a fake; production wires *openai.Client.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AIService talks to an OpenAI-compatible chat completion endpoint and turns
// replies into typed study content.
type AIService struct {
	client  chatClient
	model   string
	timeout time.Duration
}

func NewAIService(apiKey, model, baseURL string, timeout time.Duration) *AIService {
	if apiKey == "" {
		return &AIService{model: model, timeout: timeout}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &AIService{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (s *AIService) disabled() bool {
	return s.client == nil || s.model == ""
}

// Model returns the configured model identifier for response metadata.
func (s *AIService) Model() string {
	return s.model
}

// extractJSON removes markdown code block formatting if present and extracts the JSON
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Remove markdown code blocks like ```json ... ``` or ``` ... ```
	if strings.HasPrefix(content, "```") {
		// Skip past the opening ``` and optional language identifier (e.g., "json")
		start := 3
		// Find the first newline to skip the language identifier line
		if newlineIdx := strings.Index(content[start:], "\n"); newlineIdx != -1 {
			start += newlineIdx + 1
		}

		// Find the closing ```
		if endIdx := strings.Index(content[start:], "```"); endIdx != -1 {
			content = content[start : start+endIdx]
		} else {
			// No closing ```, just take everything after the opening
			content = content[start:]
		}
	}

	content = strings.TrimSpace(content)

	// Additional safety: find the first { and last } to extract just the JSON object
	if startIdx := strings.Index(content, "{"); startIdx != -1 {
		if endIdx := strings.LastIndex(content, "}"); endIdx != -1 && endIdx > startIdx {
			content = content[startIdx : endIdx+1]
		}
	}

	return strings.TrimSpace(content)
}

// cardPayload is the wire shape of a single card in the model reply. Type is
// kept loose because models occasionally return it as a string.
type cardPayload struct {
	Term       string          `json:"term"`
	Definition string          `json:"definition"`
	Type       json.RawMessage `json:"type"`
	Options    []string        `json:"options"`
}

type cardsPayload struct {
	Cards []cardPayload `json:"cards"`
}

type choicesPayload struct {
	CorrectChoice string   `json:"correct_choice"`
	Options       []string `json:"options"`
}

// GenerateCards produces flashcards and MCQs from extracted input.
func (s *AIService) GenerateCards(ctx context.Context, input *ProcessedInput, numFlashcards, numMCQs int, focus ContentFocus) ([]models.Card, error) {
	if s.disabled() {
		return nil, ErrAIUnavailable
	}

	var userMessage openai.ChatCompletionMessage
	switch input.Kind {
	case InputImage:
		prompt := BuildImagePrompt(numFlashcards, numMCQs, focus)
		dataURI := fmt.Sprintf("data:%s;base64,%s", input.MIMEType, base64.StdEncoding.EncodeToString(input.Image))
		userMessage = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: prompt,
				},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: dataURI,
					},
				},
			},
		}
	default:
		userMessage = openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: BuildTextPrompt(input.Text, numFlashcards, numMCQs, focus),
		}
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert educator who designs flashcards and multiple choice questions for studying.",
			},
			userMessage,
		},
		Temperature: 0.3,
		MaxTokens:   4096,
	}

	content, err := s.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var payload cardsPayload
	jsonStr := extractJSON(content)
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		slog.Error("failed to unmarshal cards reply", "error", err, "extracted", jsonStr)
		return nil, wrapErr(ErrContentGeneration, "failed to parse AI response as JSON: %v", err)
	}

	return normalizeCards(payload.Cards), nil
}

// GenerateChoices produces a distractor set for a question or term.
func (s *AIService) GenerateChoices(ctx context.Context, input string) (*models.ChoiceSet, error) {
	if s.disabled() {
		return nil, ErrAIUnavailable
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert educator who writes plausible multiple choice distractors.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildChoicesPrompt(input),
			},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	}

	content, err := s.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var payload choicesPayload
	jsonStr := extractJSON(content)
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		slog.Error("failed to unmarshal choices reply", "error", err, "extracted", jsonStr)
		return nil, wrapErr(ErrContentGeneration, "failed to parse AI response as JSON: %v", err)
	}
	if payload.CorrectChoice == "" {
		return nil, wrapErr(ErrContentGeneration, "reply is missing correct_choice")
	}

	return &models.ChoiceSet{
		CorrectChoice: payload.CorrectChoice,
		Options:       trimOptions(payload.Options),
	}, nil
}

func (s *AIService) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapErr(ErrAIService, "chat completion request failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", wrapErr(ErrAIService, "provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// normalizeCards maps wire cards into the response model, dropping entries
// without a usable term/definition and enforcing the flashcard/MCQ option
// invariants.
func normalizeCards(raw []cardPayload) []models.Card {
	out := make([]models.Card, 0, len(raw))
	for _, c := range raw {
		term := strings.TrimSpace(c.Term)
		definition := strings.TrimSpace(c.Definition)
		if term == "" || definition == "" {
			continue
		}

		card := models.Card{
			Term:       term,
			Definition: definition,
			Type:       parseCardType(c.Type),
			Options:    trimOptions(c.Options),
		}
		if card.Type == models.CardTypeFlashcard {
			card.Options = []string{}
		} else if len(card.Options) == 0 {
			// An MCQ without distractors is only usable as a flashcard.
			card.Type = models.CardTypeFlashcard
		}
		out = append(out, card)
	}
	return out
}

// parseCardType accepts the type field as a JSON number or string. Anything
// other than 2 is treated as a flashcard.
func parseCardType(raw json.RawMessage) models.CardType {
	if len(raw) == 0 {
		return models.CardTypeFlashcard
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if int(asNumber) == int(models.CardTypeMCQ) {
			return models.CardTypeMCQ
		}
		return models.CardTypeFlashcard
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		asString = strings.TrimSpace(strings.ToLower(asString))
		if asString == "2" || asString == "mcq" {
			return models.CardTypeMCQ
		}
	}
	return models.CardTypeFlashcard
}

func trimOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
