package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

type urlRequest struct {
	URL string `json:"url"`
}

func (a *API) transcribeYouTube(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	res, err := a.svc.FromYouTube(c.Request.Context(), req.URL)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) transcribeURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	res, err := a.svc.FromURL(c.Request.Context(), req.URL)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) transcribeFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Deposit the upload into the workspace before the pipeline starts;
	// the original extension is kept so ffmpeg can sniff the container.
	dst := a.ws.UniquePath("upload", filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, dst); err != nil {
		a.log.WithComponent("api").WithField("error", err.Error()).Error("upload save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process audio file"})
		return
	}

	res, err := a.svc.FromUpload(c.Request.Context(), dst, header.Header.Get("Content-Type"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// notImplemented validates input presence only; these modes never
// touch the workspace.
func (a *API) notImplemented(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req urlRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
			return
		}
		c.JSON(http.StatusNotImplemented, gin.H{"error": msg})
	}
}
