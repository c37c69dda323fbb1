package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kkdai/youtube/v2"
	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/workspace"
)

// YouTubeResolver resolves a YouTube watch URL to a local audio-only
// artifact named after the video ID.
type YouTubeResolver struct {
	ws     *workspace.Workspace
	log    *logger.Logger
	client youtube.Client
}

func NewYouTubeResolver(ws *workspace.Workspace, log *logger.Logger) *YouTubeResolver {
	return &YouTubeResolver{ws: ws, log: log}
}

func (r *YouTubeResolver) Resolve(ctx context.Context, rawURL string) (pipeline.Resolved, error) {
	log := r.log.WithComponent("youtube")

	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return pipeline.Resolved{}, pipeline.Errf(pipeline.KindInvalidSource, err, "Invalid YouTube URL")
	}

	video, err := r.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		log.WithField("video_id", videoID).WithField("error", err.Error()).Warn("metadata lookup failed")
		return pipeline.Resolved{}, pipeline.Errf(pipeline.KindSourceUnavailable, err, "Failed to process YouTube video")
	}

	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		return pipeline.Resolved{}, pipeline.Errf(pipeline.KindSourceUnavailable, nil,
			"Failed to process YouTube video")
	}

	// First audio-only candidate; no quality negotiation.
	stream, size, err := r.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return pipeline.Resolved{}, pipeline.Errf(pipeline.KindSourceUnavailable, err, "Failed to process YouTube video")
	}
	defer stream.Close()

	audioPath := r.ws.Path(video.ID + ".mp3")
	if err := writeStream(audioPath, stream); err != nil {
		return pipeline.Resolved{}, pipeline.Errf(pipeline.KindSourceUnavailable, err, "Failed to process YouTube video")
	}

	log.WithField("video_id", video.ID).WithField("bytes", size).Info("audio stream saved")
	return pipeline.Resolved{Path: audioPath, Title: video.Title}, nil
}

// writeStream copies the stream to path; the artifact is complete only
// when the copy reaches EOF, otherwise the partial file is removed.
func writeStream(path string, stream io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("stream copy: %w", err)
	}
	return f.Close()
}
