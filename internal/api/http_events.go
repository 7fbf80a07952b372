package api

import (
	"bulletin/internal/entity"
	"bulletin/internal/entity/converter"
	"bulletin/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) ListEvents(c *gin.Context) {
	h.listEvents(c, true)
}

func (h *HTTPHandler) ListAllEvents(c *gin.Context) {
	h.listEvents(c, false)
}

func (h *HTTPHandler) listEvents(c *gin.Context, activeOnly bool) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.repo.ListEvents(ctx, activeOnly)
	if err != nil {
		storeFailure(c, err, "event", nil)
		return
	}
	c.JSON(http.StatusOK, converter.EventsToDTOs(items))
}

func (h *HTTPHandler) GetEvent(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	item, err := h.repo.GetEvent(ctx, id)
	if err != nil {
		storeFailure(c, err, "event", logrus.Fields{"id": id})
		return
	}
	c.JSON(http.StatusOK, converter.EventToDTO(item))
}

func (h *HTTPHandler) CreateEvent(c *gin.Context) {
	var req entity.EventCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL != "" && !h.images.Owns(imageURL, service.EventImageDirs...) {
		ValidationFailed(c, fieldErrors("imageUrl", "imageUrl must reference an uploaded event image"))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if imageURL != "" && !h.imageAvailable(ctx, c, imageURL, "") {
		return
	}

	item := &entity.DbEvent{
		ID:          entity.NewContentID(entity.KindEvent),
		Title:       strings.TrimSpace(req.Title),
		Date:        req.Date,
		Time:        strings.TrimSpace(req.Time),
		Description: req.Description,
		ImageURL:    imageURL,
		IsActive:    boolOrDefault(req.IsActive, true),
	}

	if err := h.repo.CreateEvent(ctx, item); err != nil {
		storeFailure(c, err, "event", logrus.Fields{"kind": entity.KindEvent})
		return
	}
	c.JSON(http.StatusCreated, converter.EventToDTO(item))
}

// UpdateEvent writes the new imageUrl first and then removes the replaced
// file.
func (h *HTTPHandler) UpdateEvent(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req entity.EventUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	current, err := h.repo.GetEvent(ctx, id)
	if err != nil {
		storeFailure(c, err, "event", logrus.Fields{"id": id})
		return
	}

	if req.ImageURL != nil {
		trimmed := strings.TrimSpace(*req.ImageURL)
		req.ImageURL = &trimmed
		if trimmed != "" && trimmed != current.ImageURL {
			if !h.images.Owns(trimmed, service.EventImageDirs...) {
				ValidationFailed(c, fieldErrors("imageUrl", "imageUrl must reference an uploaded event image"))
				return
			}
			if !h.imageAvailable(ctx, c, trimmed, id) {
				return
			}
		}
	}

	patch := entity.EventPatch{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}
	updated, err := h.repo.UpdateEvent(ctx, id, patch)
	if err != nil {
		storeFailure(c, err, "event", logrus.Fields{"id": id})
		return
	}

	if req.ImageURL != nil {
		h.releaseImage(ctx, id, current.ImageURL, updated.ImageURL, logrus.Fields{"id": id, "kind": entity.KindEvent})
	}
	c.JSON(http.StatusOK, converter.EventToDTO(updated))
}

// DeleteEvent removes the row and then its image.
func (h *HTTPHandler) DeleteEvent(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	current, err := h.repo.GetEvent(ctx, id)
	if err != nil {
		storeFailure(c, err, "event", logrus.Fields{"id": id})
		return
	}

	deleted, err := h.repo.DeleteEvent(ctx, id)
	if err != nil {
		storeFailure(c, err, "event", logrus.Fields{"id": id})
		return
	}
	if !deleted {
		NotFound(c, "event not found")
		return
	}

	h.releaseImage(ctx, id, current.ImageURL, "", logrus.Fields{"id": id, "kind": entity.KindEvent})
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true, Message: "event deleted"})
}
