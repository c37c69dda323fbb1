package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrfWrapsCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Errf(KindExtractionFailed, cause, "Failed to process audio file")

	assert.Equal(t, KindExtractionFailed, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestKindOfUntypedError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestKindOfWrappedPipelineError(t *testing.T) {
	inner := Errf(KindSourceUnavailable, nil, "Failed to process audio from URL")
	wrapped := fmt.Errorf("stage: %w", inner)
	assert.Equal(t, KindSourceUnavailable, KindOf(wrapped))
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	cause := errors.New("401 unauthorized: bad api key")
	err := Errf(KindTranscriptionFailed, cause, "Failed to transcribe audio")

	assert.Equal(t, "Failed to transcribe audio", PublicMessage(err))
	assert.Equal(t, "internal error", PublicMessage(errors.New("boom")))
}
