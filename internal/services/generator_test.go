package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardforge/internal/models"
)

func newTestContentService(fake *fakeChatClient) *ContentService {
	files := NewFileService(1<<20, NewPDFService())
	return NewContentService(files, newFakeAIService(fake))
}

func TestGenerateFromText(t *testing.T) {
	fake := &fakeChatClient{content: `{"cards":[{"term":"RAM","definition":"Random Access Memory","type":1,"options":[]}]}`}
	svc := newTestContentService(fake)

	resp, err := svc.GenerateFromText(context.Background(), "RAM is volatile memory.", 1, 0, FocusKnowledge)
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "text_input", resp.Metadata.OriginalFilename)
	assert.Equal(t, "test-model", resp.Metadata.AIModel)
	assert.GreaterOrEqual(t, resp.Metadata.ProcessingTimeSeconds, 0.0)
	require.Len(t, resp.Data.Cards, 1)
	assert.Equal(t, models.CardTypeFlashcard, resp.Data.Cards[0].Type)
}

func TestGenerateFromFile(t *testing.T) {
	fake := &fakeChatClient{content: `{"cards":[{"term":"Q","definition":"A","type":2,"options":["x","y","z"]}]}`}
	svc := newTestContentService(fake)

	resp, err := svc.GenerateFromFile(context.Background(), []byte("Study notes."), "notes.txt", 0, 1, FocusKnowledge)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", resp.Metadata.OriginalFilename)
	require.Len(t, resp.Data.Cards, 1)
	assert.Equal(t, models.CardTypeMCQ, resp.Data.Cards[0].Type)
}

func TestGenerateFromFileExtractionError(t *testing.T) {
	fake := &fakeChatClient{content: `{"cards":[]}`}
	svc := newTestContentService(fake)

	_, err := svc.GenerateFromFile(context.Background(), []byte("junk"), "bad.tiff", 5, 5, FocusKnowledge)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestGenerateChoicesEnvelope(t *testing.T) {
	fake := &fakeChatClient{content: `{"correct_choice":"42","options":["41","43","44"]}`}
	svc := newTestContentService(fake)

	resp, err := svc.GenerateChoices(context.Background(), "the answer to everything")
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "42", resp.Data.CorrectChoice)
	assert.Len(t, resp.Data.Options, 3)
}
