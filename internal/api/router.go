package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/workspace"
)

// Service is the pipeline surface the HTTP layer drives; satisfied by
// *pipeline.Orchestrator and by fakes in tests.
type Service interface {
	FromYouTube(ctx context.Context, rawURL string) (pipeline.Result, error)
	FromURL(ctx context.Context, rawURL string) (pipeline.Result, error)
	FromUpload(ctx context.Context, path, mimeType string) (pipeline.Result, error)
}

type API struct {
	svc Service
	ws  *workspace.Workspace
	log *logger.Logger
}

func New(svc Service, ws *workspace.Workspace, log *logger.Logger) *API {
	return &API{svc: svc, ws: ws, log: log}
}

// Router builds the gin engine with CORS, request logging, and the
// transcription routes mounted under /api/transcribe.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS for the browser frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.Use(func(c *gin.Context) {
		reqLog := a.log.WithRequest(c.Request)
		start := time.Now()
		c.Next()
		reqLog.WithField("status", c.Writer.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
	})

	r.GET("/healthz", func(c *gin.Context) {
		fmt.Fprint(c.Writer, "ok")
	})

	t := r.Group("/api/transcribe")
	{
		t.POST("/youtube", a.transcribeYouTube)
		t.POST("/spotify", a.notImplemented("Spotify transcription is not yet implemented. This would require Spotify API integration."))
		t.POST("/soundcloud", a.notImplemented("SoundCloud transcription is not yet implemented. This would require SoundCloud API integration."))
		t.POST("/url", a.transcribeURL)
		t.POST("/file", a.transcribeFile)
	}

	return r
}

// statusFor maps the failure taxonomy onto HTTP statuses: input-shape
// problems are the caller's fault, declared-unsupported modes are 501,
// everything else is a processing error.
func statusFor(kind pipeline.Kind) int {
	switch kind {
	case pipeline.KindMissingInput, pipeline.KindInvalidSource:
		return http.StatusBadRequest
	case pipeline.KindNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) fail(c *gin.Context, err error) {
	a.log.WithComponent("api").WithField("error", err.Error()).Warn("pipeline run failed")
	c.JSON(statusFor(pipeline.KindOf(err)), gin.H{"error": pipeline.PublicMessage(err)})
}
