package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/services"
)

// AdvisorHandler serves the recommender, presets and builder checks.
type AdvisorHandler struct {
	Catalog *services.CatalogService
}

func (h *AdvisorHandler) Recommend(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget must be a number greater than 0"})
		return
	}

	resp, err := h.Catalog.Recommend(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Catalog not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdvisorHandler) Presets(c *gin.Context) {
	catalog, err := h.Catalog.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err, "Catalog not found")
		return
	}
	c.JSON(http.StatusOK, catalog.SummarizePresets())
}

func (h *AdvisorHandler) ApplyPreset(c *gin.Context) {
	preset, ok := services.FindPreset(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}
	catalog, err := h.Catalog.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err, "Catalog not found")
		return
	}
	c.JSON(http.StatusOK, catalog.ApplyPreset(preset).Response())
}

func bindBuild(c *gin.Context) (models.Build, bool) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	build, err := models.DecodeBuild(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidItems.Error()})
		return nil, false
	}
	return build, true
}

func (h *AdvisorHandler) CheckBuild(c *gin.Context) {
	build, ok := bindBuild(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.CheckBuild(build))
}

func (h *AdvisorHandler) ExportBuild(c *gin.Context) {
	build, ok := bindBuild(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, services.ExportBuildText(build))
}
