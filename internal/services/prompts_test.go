package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContentFocus(t *testing.T) {
	assert.Equal(t, FocusVocab, ParseContentFocus("vocab"))
	assert.Equal(t, FocusVocab, ParseContentFocus(" Vocab "))
	assert.Equal(t, FocusKnowledge, ParseContentFocus("knowledge"))
	assert.Equal(t, FocusKnowledge, ParseContentFocus(""))
	assert.Equal(t, FocusKnowledge, ParseContentFocus("anything else"))
}

func TestBuildTextPrompt(t *testing.T) {
	prompt := BuildTextPrompt("Cells divide by mitosis.", 4, 6, FocusKnowledge)

	assert.Contains(t, prompt, "TEXT CONTENT:\nCells divide by mitosis.")
	assert.Contains(t, prompt, "exactly 4 flashcards and 6 multiple choice questions")
	assert.Contains(t, prompt, "comprehensive learning materials")
	assert.Contains(t, prompt, `"type": 1`)
	assert.Contains(t, prompt, "RESPONSE FORMAT INSTRUCTIONS")
}

func TestBuildTextPromptVocabFocus(t *testing.T) {
	prompt := BuildTextPrompt("content", 5, 5, FocusVocab)
	assert.Contains(t, prompt, "vocabulary-focused")
	assert.NotContains(t, prompt, "comprehensive learning materials covering key concepts")
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := BuildImagePrompt(2, 3, FocusKnowledge)

	assert.Contains(t, prompt, "shown in this image")
	assert.Contains(t, prompt, "exactly 2 flashcards and 3 multiple choice questions")
	assert.Contains(t, prompt, "Diagrams, charts, or visual information")
	assert.NotContains(t, prompt, "TEXT CONTENT")
}

func TestIsQuestion(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"What is osmosis?", true},
		{"Explain why the sky is blue", true},
		{"Who discovered penicillin", true},
		{"osmosis", false},
		{"mitochondria", false},
		{"The French Revolution", false},
		{"Is this a question?", true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsQuestion(tc.input))
		})
	}
}

func TestBuildChoicesPromptSelection(t *testing.T) {
	questionPrompt := BuildChoicesPrompt("What is the capital of France?")
	assert.Contains(t, questionPrompt, "QUESTION: What is the capital of France?")
	assert.Contains(t, questionPrompt, "correct_choice")

	termPrompt := BuildChoicesPrompt("photosynthesis")
	assert.Contains(t, termPrompt, "TERM: photosynthesis")
	assert.Contains(t, termPrompt, "correct_choice")
}
