package api

import (
	"bulletin/internal/entity"
	"bulletin/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// multipartOverhead allows for boundaries and form fields around the file.
const multipartOverhead = 1 << 20

// Upload accepts a multipart image and stores it under the requested
// category. Rejected uploads never reach storage.
func (h *HTTPHandler) Upload(c *gin.Context) {
	maxBytes := h.images.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			UploadRejected(c, fileTooLargeMessage(maxBytes))
			return
		}
		ValidationFailed(c, fieldErrors("file", "file is required"))
		return
	}
	category := strings.ToLower(strings.TrimSpace(c.PostForm("category")))

	if fileHeader.Size > maxBytes {
		UploadRejected(c, fileTooLargeMessage(maxBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read upload")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	stored, err := h.images.Store(ctx, service.Upload{
		Data:     data,
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Category: category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			ValidationFailed(c, fieldErrors("category", "category must be one of: "+strings.Join(service.UploadCategories, ", ")))
		case errors.Is(err, service.ErrFileTooLarge):
			UploadRejected(c, fileTooLargeMessage(maxBytes))
		case errors.Is(err, service.ErrInvalidFileType), errors.Is(err, service.ErrEmptyFile):
			UploadRejected(c, err.Error())
		default:
			logrus.WithError(err).WithField("category", category).Error("failed to store upload")
			InternalError(c, "failed to store upload")
		}
		return
	}

	logrus.WithFields(logrus.Fields{"category": category, "url": stored.URL, "size": len(data)}).Info("image uploaded")
	c.JSON(http.StatusOK, entity.UploadResponse{Success: true, URL: stored.URL, Filename: stored.Filename})
}

func fileTooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("file too large: maximum size is %d MB", maxBytes>>20)
}
