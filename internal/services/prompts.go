package services

import (
	"fmt"
	"strings"
)

// ContentFocus selects between vocabulary-centric and knowledge-centric
// generation prompts.
type ContentFocus string

const (
	FocusVocab     ContentFocus = "vocab"
	FocusKnowledge ContentFocus = "knowledge"
)

// ParseContentFocus normalizes the form value, defaulting to knowledge.
func ParseContentFocus(raw string) ContentFocus {
	if strings.EqualFold(strings.TrimSpace(raw), string(FocusVocab)) {
		return FocusVocab
	}
	return FocusKnowledge
}

const cardsJSONFormat = `{
"cards": [
    {
        "term": "Question or term",
        "definition": "Answer or definition",
        "type": 1,
        "options": [
            "Option A text",
            "Option B text",
            "Option C text"
        ]
    }
]
}`

const cardsFormatInstructions = `RESPONSE FORMAT INSTRUCTIONS:
- Return response as valid JSON with the exact structure shown above
- "type": Use 1 for flashcards, 2 for multiple choice questions
- For flashcards (type=1): Set "options" to empty array []
- For MCQs (type=2): Include 3 incorrect options in "options" array (do not include the correct answer)
- "term": Contains the question text or vocabulary term
- "definition": Contains the answer or definition
- Ensure JSON is properly formatted and valid`

func cardsFormatTemplate() string {
	return fmt.Sprintf("Return your response as a JSON object with this exact structure:\n%s\n\n%s", cardsJSONFormat, cardsFormatInstructions)
}

const vocabTextFocus = `FOCUS: Generate vocabulary-focused learning materials that emphasize key terms and their meanings.
- Flashcards should focus on important vocabulary words and their definitions
- MCQs should test understanding of vocabulary meanings and usage
- Prioritize prominent words, technical terms, and key concepts that learners should know`

const knowledgeTextFocus = `FOCUS: Generate comprehensive learning materials covering key concepts, facts, and important information.
- Flashcards should focus on key terms, concepts, definitions, and important facts
- MCQs should test understanding and comprehension of the subject matter
- Cover the main ideas and learning objectives from the content`

const vocabImageFocus = `FOCUS: Generate vocabulary-focused learning materials from the image content.
- Focus on important vocabulary words, technical terms, and key concepts visible in the image
- Flashcards should emphasize word-meaning relationships
- MCQs should test vocabulary understanding and definitions`

const knowledgeImageFocus = `FOCUS: Generate comprehensive learning materials covering all key information in the image.
- Focus on key concepts, facts, processes, and important information shown
- Cover diagrams, charts, visual information, and any text content
- Test overall understanding and comprehension of the subject matter`

const sharedRequirements = `REQUIREMENTS:
1. Content should be educational and suitable for learning/studying
2. Each MCQ should have one correct answer with 3 other wrong options
3. Focus on the most important and relevant information for learners`

// BuildTextPrompt renders the content-generation prompt for text input.
func BuildTextPrompt(content string, numFlashcards, numMCQs int, focus ContentFocus) string {
	focusBlock := knowledgeTextFocus
	if focus == FocusVocab {
		focusBlock = vocabTextFocus
	}

	return fmt.Sprintf(`Analyze the following text content and generate educational materials.

TEXT CONTENT:
%s

%s

Please generate exactly %d flashcards and %d multiple choice questions based on the content.

%s

%s`, content, focusBlock, numFlashcards, numMCQs, sharedRequirements, cardsFormatTemplate())
}

// BuildImagePrompt renders the content-generation prompt sent alongside an image.
func BuildImagePrompt(numFlashcards, numMCQs int, focus ContentFocus) string {
	focusBlock := knowledgeImageFocus
	if focus == FocusVocab {
		focusBlock = vocabImageFocus
	}

	return fmt.Sprintf(`Analyze the content shown in this image and generate educational materials based on what you can see and read.

%s

Please generate exactly %d flashcards and %d multiple choice questions based on:
- Any text visible in the image
- Diagrams, charts, or visual information
- Key concepts or information presented
- Important facts or data shown

%s

%s`, focusBlock, numFlashcards, numMCQs, sharedRequirements, cardsFormatTemplate())
}

var questionWords = []string{"what", "how", "why", "when", "where", "who", "which", "?"}

// IsQuestion reports whether the input reads like a question rather than a
// bare term, selecting which choices template applies.
func IsQuestion(input string) bool {
	lowered := strings.ToLower(input)
	for _, word := range questionWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// BuildChoicesPrompt renders the distractor-generation prompt for a question
// or a term.
func BuildChoicesPrompt(input string) string {
	if IsQuestion(input) {
		return fmt.Sprintf(`Analyze the following QUESTION and generate answer choices. Automatically determine whether this is vocabulary-focused or knowledge-focused based on the question context.

QUESTION: %s

INSTRUCTIONS:
- Automatically determine if this is vocabulary-focused (about word meanings, definitions, terminology) or knowledge-focused (about concepts, facts, processes)
- Generate 1 correct answer and 3 incorrect but plausible options
- For vocabulary questions: Focus on word meanings, definitions, and terminology
- For knowledge questions: Focus on factual information, concepts, and explanations
- All options should be relevant to the question topic
- Incorrect options should be believable but definitely wrong
- Keep answers concise and clear

Respond with ONLY a JSON object in this exact format:
{
    "correct_choice": "The correct answer here",
    "options": [
        "First incorrect but plausible option",
        "Second incorrect but plausible option",
        "Third incorrect but plausible option"
    ]
}`, input)
	}

	return fmt.Sprintf(`Analyze the following TERM and generate definition choices. Automatically determine whether this is vocabulary-focused or knowledge-focused based on the term context.

TERM: %s

INSTRUCTIONS:
- Automatically determine if this is vocabulary-focused (language/word learning) or knowledge-focused (academic/technical concepts)
- Generate 1 correct definition and 3 incorrect but plausible definitions
- For vocabulary terms: Focus on word meanings and linguistic definitions
- For knowledge terms: Focus on technical, scientific, or academic explanations
- All definitions should be relevant to the term's subject area
- Incorrect definitions should be believable but definitely wrong for this specific term
- Keep definitions concise and clear

Respond with ONLY a JSON object in this exact format:
{
    "correct_choice": "The correct definition of the term here",
    "options": [
        "First incorrect but plausible definition",
        "Second incorrect but plausible definition",
        "Third incorrect but plausible definition"
    ]
}`, input)
}
