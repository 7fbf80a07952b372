package api

import (
	"bulletin/internal/entity"
	"bulletin/internal/entity/converter"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ListAnnouncements is the public listing of active announcements.
func (h *HTTPHandler) ListAnnouncements(c *gin.Context) {
	h.listAnnouncements(c, true)
}

// ListAllAnnouncements includes inactive announcements.
func (h *HTTPHandler) ListAllAnnouncements(c *gin.Context) {
	h.listAnnouncements(c, false)
}

func (h *HTTPHandler) listAnnouncements(c *gin.Context, activeOnly bool) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.repo.ListAnnouncements(ctx, activeOnly)
	if err != nil {
		storeFailure(c, err, "announcement", nil)
		return
	}
	c.JSON(http.StatusOK, converter.AnnouncementsToDTOs(items))
}

func (h *HTTPHandler) GetAnnouncement(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	item, err := h.repo.GetAnnouncement(ctx, id)
	if err != nil {
		storeFailure(c, err, "announcement", logrus.Fields{"id": id})
		return
	}
	c.JSON(http.StatusOK, converter.AnnouncementToDTO(item))
}

func (h *HTTPHandler) CreateAnnouncement(c *gin.Context) {
	var req entity.AnnouncementCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	item := &entity.DbAnnouncement{
		ID:           entity.NewContentID(entity.KindAnnouncement),
		Title:        strings.TrimSpace(req.Title),
		Date:         req.Date,
		Description:  req.Description,
		Icon:         strings.TrimSpace(req.Icon),
		Badge:        strings.TrimSpace(req.Badge),
		BadgeVariant: req.BadgeVariant,
		IsActive:     boolOrDefault(req.IsActive, true),
	}
	if item.BadgeVariant == "" {
		item.BadgeVariant = entity.BadgeVariantDefault
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.repo.CreateAnnouncement(ctx, item); err != nil {
		storeFailure(c, err, "announcement", logrus.Fields{"kind": entity.KindAnnouncement})
		return
	}
	c.JSON(http.StatusCreated, converter.AnnouncementToDTO(item))
}

func (h *HTTPHandler) UpdateAnnouncement(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req entity.AnnouncementUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := entity.AnnouncementPatch{
		Title:        req.Title,
		Date:         req.Date,
		Description:  req.Description,
		Icon:         req.Icon,
		Badge:        req.Badge,
		BadgeVariant: req.BadgeVariant,
		IsActive:     req.IsActive,
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	updated, err := h.repo.UpdateAnnouncement(ctx, id, patch)
	if err != nil {
		storeFailure(c, err, "announcement", logrus.Fields{"id": id})
		return
	}
	c.JSON(http.StatusOK, converter.AnnouncementToDTO(updated))
}

func (h *HTTPHandler) DeleteAnnouncement(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	deleted, err := h.repo.DeleteAnnouncement(ctx, id)
	if err != nil {
		storeFailure(c, err, "announcement", logrus.Fields{"id": id})
		return
	}
	if !deleted {
		NotFound(c, "announcement not found")
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true, Message: "announcement deleted"})
}
