package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
)

var httpClient = &http.Client{Timeout: 10 * time.Minute}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Client submits local audio files to the OpenAI speech-to-text
// endpoint with a fixed model. Every remote failure — auth, quota,
// malformed audio, transport — is logged with its detail and
// re-signaled uniformly; callers only learn that transcription failed.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	log     *logger.Logger
	http    *http.Client
}

func NewClient(baseURL, apiKey, model string, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		log:     log,
		http:    httpClient,
	}
}

// Transcribe streams audioPath to the remote capability and returns
// plain text. Single attempt, no retry.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	log := c.log.WithComponent("transcription").WithField("audio_path", audioPath)

	f, err := os.Open(audioPath)
	if err != nil {
		log.WithField("error", err.Error()).Error("cannot open audio artifact")
		return "", failed(err)
	}
	defer f.Close()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	_ = w.WriteField("model", c.model)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", failed(err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", failed(err)
	}
	_ = w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &b)
	if err != nil {
		return "", failed(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithField("error", err.Error()).Error("transcription request failed")
		return "", failed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.WithField("status", resp.StatusCode).WithField("body", string(body)).
			Error("transcription service rejected request")
		return "", failed(fmt.Errorf("remote status %d", resp.StatusCode))
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		log.WithField("error", err.Error()).Error("transcription response decode failed")
		return "", failed(err)
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("transcription complete")
	return tr.Text, nil
}

func failed(err error) error {
	return pipeline.Errf(pipeline.KindTranscriptionFailed, err, "Failed to transcribe audio")
}
