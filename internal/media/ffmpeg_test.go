package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/workspace"
)

type fakeRunner struct {
	name string
	args []string
	res  runResult
	err  error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (runResult, error) {
	f.name = name
	f.args = append([]string{}, args...)
	return f.res, f.err
}

func newTestFFmpeg(t *testing.T, runner commandRunner) (*FFmpeg, *workspace.Workspace) {
	t.Helper()
	log := logger.New()
	ws, err := workspace.New(t.TempDir(), log)
	require.NoError(t, err)
	f := NewFFmpeg(ws, log, "ffmpeg")
	f.runner = runner
	return f, ws
}

func TestExtractInvokesFixedArgumentSet(t *testing.T) {
	runner := &fakeRunner{res: runResult{Stderr: "size= 1024kB"}}
	f, ws := newTestFFmpeg(t, runner)

	out, err := f.Extract(context.Background(), "/incoming/upload_abc.mp4")
	require.NoError(t, err)

	assert.Equal(t, ws.Path("upload_abc.mp3"), out, "output derives from the input's base name")
	assert.Equal(t, "ffmpeg", runner.name)
	assert.Equal(t, []string{
		"-i", "/incoming/upload_abc.mp4",
		"-vn",
		"-acodec", "libmp3lame",
		"-ab", "128k",
		"-ar", "44100",
		out,
	}, runner.args)
}

func TestExtractNonzeroExit(t *testing.T) {
	runner := &fakeRunner{
		res: runResult{Stderr: "Invalid data found when processing input", ExitCode: 1},
		err: errors.New("exit status 1"),
	}
	f, ws := newTestFFmpeg(t, runner)

	out, err := f.Extract(context.Background(), "/incoming/upload_bad.mov")
	require.Error(t, err)
	assert.Equal(t, pipeline.KindExtractionFailed, pipeline.KindOf(err))
	assert.Equal(t, ws.Path("upload_bad.mp3"), out,
		"the attempted output path is reported so the run can clean it up")
}

func TestExtractCustomBinary(t *testing.T) {
	runner := &fakeRunner{}
	log := logger.New()
	ws, err := workspace.New(t.TempDir(), log)
	require.NoError(t, err)
	f := NewFFmpeg(ws, log, "/opt/ffmpeg/bin/ffmpeg")
	f.runner = runner

	_, err = f.Extract(context.Background(), "in.webm")
	require.NoError(t, err)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", runner.name)
}
