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

func (h *HTTPHandler) ListPosters(c *gin.Context) {
	h.listPosters(c, true)
}

func (h *HTTPHandler) ListAllPosters(c *gin.Context) {
	h.listPosters(c, false)
}

func (h *HTTPHandler) listPosters(c *gin.Context, activeOnly bool) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.repo.ListPosters(ctx, activeOnly)
	if err != nil {
		storeFailure(c, err, "poster", nil)
		return
	}
	c.JSON(http.StatusOK, converter.PostersToDTOs(items))
}

// ListPostersByCategory lists active posters of one category.
func (h *HTTPHandler) ListPostersByCategory(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Param("category")))
	if !validPosterCategory(category) {
		ValidationFailed(c, fieldErrors("category", "category must be one of: service, event, theme"))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.repo.ListPostersByCategory(ctx, category, true)
	if err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"category": category})
		return
	}
	c.JSON(http.StatusOK, converter.PostersToDTOs(items))
}

// LatestThemePoster returns the newest active theme poster.
func (h *HTTPHandler) LatestThemePoster(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	item, err := h.repo.LatestPosterByCategory(ctx, entity.PosterCategoryTheme)
	if err != nil {
		storeFailure(c, err, "theme poster", nil)
		return
	}
	c.JSON(http.StatusOK, converter.PosterToDTO(item))
}

func (h *HTTPHandler) GetPoster(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	item, err := h.repo.GetPoster(ctx, id)
	if err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"id": id})
		return
	}
	c.JSON(http.StatusOK, converter.PosterToDTO(item))
}

func (h *HTTPHandler) CreatePoster(c *gin.Context) {
	var req entity.PosterCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if !h.images.Owns(imageURL, service.PosterImageDirs...) {
		ValidationFailed(c, fieldErrors("imageUrl", "imageUrl must reference an uploaded poster image"))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if !h.imageAvailable(ctx, c, imageURL, "") {
		return
	}

	item := &entity.DbPoster{
		ID:          entity.NewContentID(entity.KindPoster),
		Title:       strings.TrimSpace(req.Title),
		Category:    req.Category,
		ImageURL:    imageURL,
		Description: req.Description,
		IsActive:    boolOrDefault(req.IsActive, true),
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := h.repo.CreatePoster(ctx, item); err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"kind": entity.KindPoster})
		return
	}
	c.JSON(http.StatusCreated, converter.PosterToDTO(item))
}

// UpdatePoster writes the new imageUrl first and then removes the replaced
// file.
func (h *HTTPHandler) UpdatePoster(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req entity.PosterUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	current, err := h.repo.GetPoster(ctx, id)
	if err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"id": id})
		return
	}

	if req.ImageURL != nil {
		trimmed := strings.TrimSpace(*req.ImageURL)
		req.ImageURL = &trimmed
		if trimmed != current.ImageURL {
			if !h.images.Owns(trimmed, service.PosterImageDirs...) {
				ValidationFailed(c, fieldErrors("imageUrl", "imageUrl must reference an uploaded poster image"))
				return
			}
			if !h.imageAvailable(ctx, c, trimmed, id) {
				return
			}
		}
	}

	patch := entity.PosterPatch{
		Title:        req.Title,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
	updated, err := h.repo.UpdatePoster(ctx, id, patch)
	if err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"id": id})
		return
	}

	if req.ImageURL != nil {
		h.releaseImage(ctx, id, current.ImageURL, updated.ImageURL, logrus.Fields{"id": id, "kind": entity.KindPoster})
	}
	c.JSON(http.StatusOK, converter.PosterToDTO(updated))
}

func (h *HTTPHandler) DeletePoster(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	current, err := h.repo.GetPoster(ctx, id)
	if err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"id": id})
		return
	}

	deleted, err := h.repo.DeletePoster(ctx, id)
	if err != nil {
		storeFailure(c, err, "poster", logrus.Fields{"id": id})
		return
	}
	if !deleted {
		NotFound(c, "poster not found")
		return
	}

	h.releaseImage(ctx, id, current.ImageURL, "", logrus.Fields{"id": id, "kind": entity.KindPoster})
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true, Message: "poster deleted"})
}

func validPosterCategory(category string) bool {
	switch category {
	case entity.PosterCategoryService, entity.PosterCategoryEvent, entity.PosterCategoryTheme:
		return true
	default:
		return false
	}
}
