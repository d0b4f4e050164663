package services

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDetectImageMIMEType(t *testing.T) {
	cases := []struct {
		name    string
		content []byte
		want    string
	}{
		{"png", encodePNG(t), "image/png"},
		{"jpeg", encodeJPEG(t), "image/jpeg"},
		{"gif87", []byte("GIF87a..."), "image/gif"},
		{"gif89", []byte("GIF89a..."), "image/gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"unknown", []byte("??"), "image/jpeg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectImageMIMEType(tc.content))
		})
	}
}

func TestProcessImageFile(t *testing.T) {
	content := encodePNG(t)

	input, err := processImageFile(content, "diagram.png")
	require.NoError(t, err)

	assert.Equal(t, InputImage, input.Kind)
	assert.Equal(t, "image/png", input.MIMEType)
	assert.Equal(t, content, input.Image)
	assert.Empty(t, input.Text)
}

func TestProcessImageFileInvalid(t *testing.T) {
	_, err := processImageFile([]byte("not an image at all"), "broken.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileProcessing)
}
