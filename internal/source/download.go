package source

import (
	"context"
	"net/http"
	"time"

	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/workspace"
)

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// URLDownloader streams a generic URL into a uniquely-named workspace
// file. Non-2xx responses are rejected outright rather than written to
// disk, so an error page never masquerades as audio.
type URLDownloader struct {
	ws     *workspace.Workspace
	log    *logger.Logger
	client *http.Client
}

func NewURLDownloader(ws *workspace.Workspace, log *logger.Logger) *URLDownloader {
	return &URLDownloader{ws: ws, log: log, client: httpClient}
}

func (d *URLDownloader) Fetch(ctx context.Context, rawURL string) (string, error) {
	log := d.log.WithComponent("downloader")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", pipeline.Errf(pipeline.KindInvalidSource, err, "Invalid URL")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.WithField("url", rawURL).WithField("error", err.Error()).Warn("download failed")
		return "", pipeline.Errf(pipeline.KindSourceUnavailable, err, "Failed to process audio from URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("url", rawURL).WithField("status", resp.StatusCode).Warn("remote host returned non-success")
		return "", pipeline.Errf(pipeline.KindSourceUnavailable, nil, "Failed to process audio from URL")
	}

	path := d.ws.UniquePath("url", ".mp3")
	if err := writeStream(path, resp.Body); err != nil {
		return "", pipeline.Errf(pipeline.KindSourceUnavailable, err, "Failed to process audio from URL")
	}

	log.WithField("url", rawURL).WithField("artifact", path).Info("download finished")
	return path, nil
}
