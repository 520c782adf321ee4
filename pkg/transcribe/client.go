package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-journal-be/internal/apperrors"
)

const defaultWhisperURL = "https://api.openai.com/v1/audio/transcriptions"

// Transcriber converts an audio blob into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// WhisperClient relays audio to the OpenAI transcription endpoint using the
// whisper-1 model. A missing API key is a configuration error; an upstream
// failure keeps its original status code.
type WhisperClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{
		apiKey:   apiKey,
		endpoint: defaultWhisperURL,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// NewWhisperClientWithEndpoint is used by tests to point at a stub server.
func NewWhisperClientWithEndpoint(apiKey, endpoint string) *WhisperClient {
	c := NewWhisperClient(apiKey)
	c.endpoint = endpoint
	return c
}

func (w *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", apperrors.NewInputError("No audio file provided")
	}

	if w.apiKey == "" {
		return "", apperrors.NewConfigurationError("Transcription service not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if filename == "" {
		filename = "audio.webm"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}
	if err := writer.WriteField("model", "whisper-1"); err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}
	if err := writer.Close(); err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := w.client.Do(req)
	if err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperrors.NewGatewayError("transcription", err)
	}

	if res.StatusCode != http.StatusOK {
		// Passthrough: the relay reports the upstream status verbatim.
		return "", &apperrors.UpstreamError{
			StatusCode: res.StatusCode,
			Message:    "Transcription failed",
		}
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", apperrors.NewGatewayError("transcription", fmt.Errorf(
			"malformed transcription response: %w", err,
		))
	}

	return parsed.Text, nil
}
