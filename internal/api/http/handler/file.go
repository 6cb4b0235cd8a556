package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
)

// FileService defines upload and download operations.
type FileService interface {
	Upload(ctx context.Context, filename string, reader io.Reader) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// File handles HTTP endpoints for uploaded blobs.
type File struct {
	service FileService
	logger  *logger.Logger
}

// NewFile creates a new File handler.
func NewFile(service FileService, logger *logger.Logger) *File {
	return &File{
		service: service,
		logger:  logger,
	}
}

// Upload handles POST /tasks/upload. The response carries the storage key
// the client then sets as a task's filename.
func (h *File) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	defer file.Close()

	key, err := h.service.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"filename": key,
	})
}

// Download handles GET /tasks/files/:name.
func (h *File) Download(c *gin.Context) {
	rc, err := h.service.Download(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Error("File handler: failed to stream blob",
			"name", c.Param("name"),
			"error", err.Error())
	}
}
