package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/services"
)

type ComponentHandler struct {
	Catalog *services.CatalogService
}

// List answers GET /components. The unpaged match count is returned in
// X-Total-Count.
func (h *ComponentHandler) List(c *gin.Context) {
	filter := models.ComponentFilter{
		Brand:  c.Query("brand"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}
	if raw := c.Query("category"); raw != "" {
		cat, ok := models.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		filter.Category = cat
	}
	var ok bool
	if filter.Skip, ok = queryInt(c, "skip"); !ok {
		return
	}
	if filter.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}

	items, total, err := h.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Component not found")
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(total))
	c.JSON(http.StatusOK, items)
}

func (h *ComponentHandler) Grouped(c *gin.Context) {
	grouped, err := h.Catalog.Grouped(c.Request.Context())
	if err != nil {
		respondError(c, err, "Component not found")
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (h *ComponentHandler) Get(c *gin.Context) {
	cat, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component id"})
		return
	}

	item, err := h.Catalog.Get(c.Request.Context(), cat, id)
	if err != nil {
		respondError(c, err, "Component not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ComponentHandler) Create(c *gin.Context) {
	var comp models.Component
	if err := c.ShouldBindJSON(&comp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Catalog.Create(c.Request.Context(), &comp)
	if err != nil {
		respondError(c, err, "Component not found")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ComponentHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}

func (h *ComponentHandler) Stats(c *gin.Context) {
	stats, err := h.Catalog.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Component not found")
		return
	}
	c.JSON(http.StatusOK, stats)
}
