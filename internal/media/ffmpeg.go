package media

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/workspace"
)

// runResult is one external process outcome.
type runResult struct {
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (runResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (runResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := runResult{Stderr: stderr.String()}
	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
	}
	return res, err
}

// FFmpeg strips the video stream and re-encodes audio to 128 kbps
// 44.1 kHz MP3. Output lands next to nothing else: a single
// deterministic path in the workspace derived from the input's base
// name.
type FFmpeg struct {
	ws     *workspace.Workspace
	log    *logger.Logger
	binary string
	runner commandRunner
}

func NewFFmpeg(ws *workspace.Workspace, log *logger.Logger, binary string) *FFmpeg {
	return &FFmpeg{ws: ws, log: log, binary: binary, runner: execRunner{}}
}

func (f *FFmpeg) Extract(ctx context.Context, inputPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := f.ws.Path(base + ".mp3")
	log := f.log.WithComponent("ffmpeg").WithField("input", inputPath)

	res, err := f.runner.Run(ctx, f.binary,
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-ab", "128k",
		"-ar", "44100",
		outPath,
	)
	// ffmpeg narrates everything on stderr; forward it for diagnosis
	// but never parse it for control decisions.
	for _, line := range strings.Split(strings.TrimRight(res.Stderr, "\n"), "\n") {
		if line != "" {
			log.Debug("ffmpeg: " + line)
		}
	}
	if err != nil {
		log.WithField("exit_code", res.ExitCode).WithField("error", err.Error()).Error("extraction failed")
		return outPath, pipeline.Errf(pipeline.KindExtractionFailed, err,
			"Failed to process audio file")
	}
	return outPath, nil
}
