package models

// CardType distinguishes the two kinds of generated study cards.
type CardType int

const (
	CardTypeFlashcard CardType = 1
	CardTypeMCQ       CardType = 2
)

// Card is a single generated study item. For flashcards Term holds the
// question or vocabulary term and Definition the answer; Options is empty.
// For multiple-choice items Definition is the correct answer and Options
// holds the three distractors (never the correct answer).
type Card struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Type       CardType `json:"type"`
	Options    []string `json:"options"`
}

// GeneratedContent is the payload of a successful generation call.
type GeneratedContent struct {
	Cards []Card `json:"cards"`
}

// ChoiceSet is a distractor set generated for a single question or term.
type ChoiceSet struct {
	CorrectChoice string   `json:"correct_choice"`
	Options       []string `json:"options"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	OriginalFilename      string  `json:"original_filename"`
	AIModel               string  `json:"ai_model"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// GenerateContentResponse is the envelope returned by the generate endpoint.
type GenerateContentResponse struct {
	Status   string           `json:"status"`
	Metadata ResponseMetadata `json:"metadata"`
	Data     GeneratedContent `json:"data"`
}

// GenerateChoicesResponse is the envelope returned by the choices endpoint.
type GenerateChoicesResponse struct {
	Status   string           `json:"status"`
	Metadata ResponseMetadata `json:"metadata"`
	Data     ChoiceSet        `json:"data"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Status    string         `json:"status"`
	ErrorType string         `json:"error_type"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds an ErrorResponse with the error status set.
func NewErrorResponse(errorType, message string, details map[string]any) ErrorResponse {
	return ErrorResponse{
		Status:    "error",
		ErrorType: errorType,
		Message:   message,
		Details:   details,
	}
}
