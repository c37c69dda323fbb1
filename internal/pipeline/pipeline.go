package pipeline

import (
	"context"
	"strings"
	"time"

	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/workspace"
)

// Resolved is a local audio artifact produced by a source resolver,
// plus whatever metadata the platform exposed.
type Resolved struct {
	Path  string
	Title string
}

// SourceResolver turns a platform URL into a local audio artifact.
type SourceResolver interface {
	Resolve(ctx context.Context, rawURL string) (Resolved, error)
}

// Downloader fetches a generic URL into a local audio artifact.
type Downloader interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Transcoder strips the video stream out of a container and re-encodes
// the audio. It always returns the output path it wrote (or attempted
// to write) so the caller can clean up partial output on failure.
type Transcoder interface {
	Extract(ctx context.Context, inputPath string) (string, error)
}

// Transcriber sends a local audio file to the remote speech-to-text
// capability.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Result is what a completed run hands back to the caller.
type Result struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"transcription"`
}

// Orchestrator sequences resolve -> (extract) -> transcribe -> clean
// for each entry mode. Collaborators are injected once at startup so
// the whole pipeline runs against substitutes in tests.
type Orchestrator struct {
	Workspace   *workspace.Workspace
	YouTube     SourceResolver
	Downloader  Downloader
	Transcoder  Transcoder
	Transcriber Transcriber
	Log         *logger.Logger
}

// FromYouTube resolves a YouTube URL to its audio-only stream and
// transcribes it. The downloaded artifact is removed whether or not
// transcription succeeds.
func (o *Orchestrator) FromYouTube(ctx context.Context, rawURL string) (Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Result{}, Errf(KindMissingInput, nil, "URL is required")
	}
	log := o.Log.WithComponent("pipeline").WithField("mode", "youtube")

	start := time.Now()
	res, err := o.YouTube.Resolve(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}
	defer o.Workspace.Remove(res.Path)
	log.WithField("artifact", res.Path).
		WithField("resolve_ms", time.Since(start).Milliseconds()).
		Info("source resolved")

	text, err := o.Transcriber.Transcribe(ctx, res.Path)
	if err != nil {
		return Result{}, err
	}
	return Result{Title: res.Title, Text: text}, nil
}

// FromURL downloads a generic URL and transcribes it.
func (o *Orchestrator) FromURL(ctx context.Context, rawURL string) (Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Result{}, Errf(KindMissingInput, nil, "URL is required")
	}
	log := o.Log.WithComponent("pipeline").WithField("mode", "url")

	path, err := o.Downloader.Fetch(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}
	defer o.Workspace.Remove(path)
	log.WithField("artifact", path).Info("download complete")

	text, err := o.Transcriber.Transcribe(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text}, nil
}

// FromUpload transcribes a file the upload handler already deposited
// in the workspace. Video containers go through the transcoder first;
// both the upload and any derived artifact are removed at run end,
// each exactly once.
func (o *Orchestrator) FromUpload(ctx context.Context, path, mimeType string) (Result, error) {
	if path == "" {
		return Result{}, Errf(KindMissingInput, nil, "no file uploaded")
	}
	log := o.Log.WithComponent("pipeline").WithField("mode", "file").WithField("mime", mimeType)

	artifacts := []string{path}
	defer func() { o.Workspace.Remove(artifacts...) }()

	audioPath := path
	if strings.HasPrefix(mimeType, "video/") {
		out, err := o.Transcoder.Extract(ctx, path)
		if out != "" {
			artifacts = append(artifacts, out)
		}
		if err != nil {
			return Result{}, err
		}
		audioPath = out
		log.WithField("artifact", out).Info("audio extracted")
	}

	text, err := o.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text}, nil
}
